package culler

import "github.com/Carmen-Shannon/oxy-camera/engine/profiler"

// CullerOption is a functional option for configuring a Culler.
type CullerOption func(*cullerImpl)

// WithWorkers sets the maximum number of pool workers.
//
// Parameters:
//   - n: worker count (values < 1 are raised to 1)
//
// Returns:
//   - CullerOption: functional option to set the worker count
func WithWorkers(n int) CullerOption {
	return func(c *cullerImpl) {
		c.workers = max(n, 1)
	}
}

// WithQueueSize sets the pool's task queue capacity.
//
// Parameters:
//   - size: queue capacity
//
// Returns:
//   - CullerOption: functional option to set the queue size
func WithQueueSize(size int) CullerOption {
	return func(c *cullerImpl) {
		c.queueSize = size
	}
}

// WithChunkSize sets how many boxes one pool task classifies. Batches no larger
// than one chunk are classified on the calling goroutine.
//
// Parameters:
//   - size: boxes per task
//
// Returns:
//   - CullerOption: functional option to set the chunk size
func WithChunkSize(size int) CullerOption {
	return func(c *cullerImpl) {
		c.chunkSize = size
	}
}

// WithProfiler attaches a profiler that receives the outcome of every Cull.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - CullerOption: functional option to set the profiler
func WithProfiler(p *profiler.CullProfiler) CullerOption {
	return func(c *cullerImpl) {
		c.profiler = p
	}
}
