package culler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/Carmen-Shannon/oxy-camera/engine/camera"
	"github.com/Carmen-Shannon/oxy-camera/engine/game_object"
	"github.com/Carmen-Shannon/oxy-camera/engine/profiler"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refreshedCamera() camera.Camera {
	cam := camera.NewCamera(
		camera.WithViewport(800, 600),
		camera.WithFov(0.8),
		camera.WithNear(1),
		camera.WithFar(1000),
		camera.WithLookAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, common.Up),
	)
	cam.Refresh(nil, true)
	return cam
}

// countingCamera counts how the culler reads the camera.
type countingCamera struct {
	camera.Camera
	boxes   atomic.Int32
	volumes atomic.Int32
}

func (c *countingCamera) CullBox(box common.Box) common.CullResult {
	c.boxes.Add(1)
	return c.Camera.CullBox(box)
}

func (c *countingCamera) CullVolume() camera.CullVolume {
	c.volumes.Add(1)
	return c.Camera.CullVolume()
}

// gridBoxes lays unit boxes along X; every other box is moved behind the camera.
func gridBoxes(n int) []common.Box {
	boxes := make([]common.Box, n)
	for i := range boxes {
		z := float32(0)
		if i%2 == 1 {
			z = 50
		}
		x := float32(i%5) - 2
		boxes[i] = common.NewBox(mgl32.Vec3{x - 0.25, -0.25, z - 0.25}, mgl32.Vec3{x + 0.25, 0.25, z + 0.25})
	}
	return boxes
}

func TestCullMatchesCamera(t *testing.T) {
	cam := refreshedCamera()
	boxes := gridBoxes(1000)

	c := NewCuller(WithWorkers(4), WithChunkSize(64))
	results := c.Cull(cam, boxes)

	require.Len(t, results, len(boxes))
	for i, b := range boxes {
		assert.Equal(t, cam.CullBox(b), results[i], "box %d", i)
	}
}

func TestCullReadsCameraOncePerBatch(t *testing.T) {
	cam := &countingCamera{Camera: refreshedCamera()}
	c := NewCuller(WithWorkers(4), WithChunkSize(32))

	results := c.Cull(cam, gridBoxes(500))
	require.Len(t, results, 500)
	assert.Equal(t, int32(1), cam.volumes.Load())
	assert.Zero(t, cam.boxes.Load())

	c.Cull(cam, gridBoxes(8))
	assert.Equal(t, int32(2), cam.volumes.Load())
	assert.Zero(t, cam.boxes.Load())
}

func TestCullSmallBatchInline(t *testing.T) {
	cam := refreshedCamera()
	boxes := gridBoxes(10)

	results := NewCuller().Cull(cam, boxes)
	for i, b := range boxes {
		assert.Equal(t, cam.CullBox(b), results[i])
	}
	assert.Empty(t, NewCuller().Cull(cam, nil))
}

func TestVisible(t *testing.T) {
	cam := refreshedCamera()
	boxes := gridBoxes(600)

	visible := NewCuller(WithChunkSize(50)).Visible(cam, boxes)
	require.Len(t, visible, 300)
	for i, idx := range visible {
		assert.Equal(t, 2*i, idx)
	}
}

func TestCullObjects(t *testing.T) {
	cam := refreshedCamera()
	objects := []game_object.GameObject{
		game_object.NewGameObject(game_object.WithID(1)),
		game_object.NewGameObject(game_object.WithID(2), game_object.WithPosition(0, 0, 50)),
		game_object.NewGameObject(game_object.WithID(3), game_object.WithEnabled(false)),
		game_object.NewGameObject(game_object.WithID(4), game_object.WithPosition(1, 1, -5)),
	}

	visible := NewCuller().CullObjects(cam, objects)
	require.Len(t, visible, 2)
	assert.Equal(t, uint64(1), visible[0].ID())
	assert.Equal(t, uint64(4), visible[1].ID())
}

func TestCullFeedsProfiler(t *testing.T) {
	cam := refreshedCamera()
	p := profiler.NewCullProfiler(time.Hour)
	c := NewCuller(WithProfiler(p), WithChunkSize(16))
	assert.Same(t, p, c.Profiler())

	c.Cull(cam, gridBoxes(100))
	stats := p.Current()
	assert.Equal(t, 1, stats.Batches)
	assert.Equal(t, 100, stats.Total())
	assert.Equal(t, 50, stats.Outside)
}
