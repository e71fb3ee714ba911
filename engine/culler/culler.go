package culler

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/Carmen-Shannon/oxy-camera/engine/camera"
	"github.com/Carmen-Shannon/oxy-camera/engine/game_object"
	"github.com/Carmen-Shannon/oxy-camera/engine/profiler"
)

// DefaultChunkSize is the number of boxes classified by one pool task.
const DefaultChunkSize = 256

// Culler classifies batches of world-space boxes against a camera's visible
// volume on a reusable worker pool. The camera must be refreshed before Cull;
// its cull state is read once per batch.
type Culler interface {
	// Cull classifies every box against cam. Results are returned in input order.
	//
	// Parameters:
	//   - cam: a refreshed camera
	//   - boxes: world-space boxes to classify
	//
	// Returns:
	//   - []common.CullResult: one result per box, same order as boxes
	Cull(cam camera.Camera, boxes []common.Box) []common.CullResult

	// Visible returns the indices of boxes that are not fully outside.
	//
	// Parameters:
	//   - cam: a refreshed camera
	//   - boxes: world-space boxes to classify
	//
	// Returns:
	//   - []int: ascending indices of visible boxes
	Visible(cam camera.Camera, boxes []common.Box) []int

	// CullObjects returns the enabled objects whose world bounds are not fully
	// outside, preserving input order.
	//
	// Parameters:
	//   - cam: a refreshed camera
	//   - objects: candidate objects
	//
	// Returns:
	//   - []game_object.GameObject: the visible objects
	CullObjects(cam camera.Camera, objects []game_object.GameObject) []game_object.GameObject

	// Profiler returns the profiler fed by this culler, or nil if profiling is off.
	Profiler() *profiler.CullProfiler
}

type cullerImpl struct {
	mu *sync.Mutex

	pool      worker.DynamicWorkerPool
	workers   int
	queueSize int
	chunkSize int

	profiler *profiler.CullProfiler
}

var _ Culler = &cullerImpl{}

// NewCuller creates a new Culler. The worker count defaults to one less than
// the number of CPUs.
//
// Parameters:
//   - options: functional options to configure the culler
//
// Returns:
//   - Culler: the newly created culler
func NewCuller(options ...CullerOption) Culler {
	c := &cullerImpl{
		mu:        &sync.Mutex{},
		workers:   max(runtime.NumCPU()-1, 1),
		queueSize: 256,
		chunkSize: DefaultChunkSize,
	}
	for _, option := range options {
		option(c)
	}
	if c.chunkSize <= 0 {
		c.chunkSize = DefaultChunkSize
	}

	// Workers idle-exit after a second and respawn on demand.
	c.pool = worker.NewDynamicWorkerPool(c.workers, c.queueSize, 1*time.Second)
	return c
}

func (c *cullerImpl) Profiler() *profiler.CullProfiler {
	return c.profiler
}

func (c *cullerImpl) Cull(cam camera.Camera, boxes []common.Box) []common.CullResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	results := make([]common.CullResult, len(boxes))
	if len(boxes) == 0 {
		return results
	}
	vol := cam.CullVolume()

	// small batches are not worth the pool round trip
	if len(boxes) <= c.chunkSize {
		for i, b := range boxes {
			results[i] = vol.Classify(b)
		}
		c.record(results)
		return results
	}

	// each task writes a disjoint slice of results; the WaitGroup is the
	// per-call barrier since pool.Wait() blocks until workers idle-exit
	var wg sync.WaitGroup
	taskID := 0
	for start := 0; start < len(boxes); start += c.chunkSize {
		end := min(start+c.chunkSize, len(boxes))
		lo, hi := start, end
		id := taskID
		taskID++
		wg.Add(1)
		c.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				for i := lo; i < hi; i++ {
					results[i] = vol.Classify(boxes[i])
				}
				return nil, nil
			},
		})
	}
	wg.Wait()

	c.record(results)
	return results
}

func (c *cullerImpl) Visible(cam camera.Camera, boxes []common.Box) []int {
	results := c.Cull(cam, boxes)
	visible := make([]int, 0, len(results))
	for i, r := range results {
		if r != common.CullOutside {
			visible = append(visible, i)
		}
	}
	return visible
}

func (c *cullerImpl) CullObjects(cam camera.Camera, objects []game_object.GameObject) []game_object.GameObject {
	enabled := make([]game_object.GameObject, 0, len(objects))
	boxes := make([]common.Box, 0, len(objects))
	for _, obj := range objects {
		if !obj.Enabled() {
			continue
		}
		enabled = append(enabled, obj)
		boxes = append(boxes, obj.WorldBounds())
	}

	visible := make([]game_object.GameObject, 0, len(enabled))
	for _, i := range c.Visible(cam, boxes) {
		visible = append(visible, enabled[i])
	}
	return visible
}

// record feeds the profiler.
// Caller must hold the mutex.
func (c *cullerImpl) record(results []common.CullResult) {
	if c.profiler == nil {
		return
	}
	var outside, intersects, inside int
	for _, r := range results {
		switch r {
		case common.CullOutside:
			outside++
		case common.CullIntersects:
			intersects++
		case common.CullInside:
			inside++
		}
	}
	c.profiler.Record(outside, intersects, inside)
}
