package profiler

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProfilerTick(t *testing.T) {
	p := NewProfiler(time.Hour)
	assert.False(t, p.Tick())

	p = NewProfiler(time.Nanosecond)
	time.Sleep(time.Millisecond)
	assert.True(t, p.Tick())
	assert.Greater(t, p.Last().FPS, float64(0))
	assert.Greater(t, p.Last().SysMB, float64(0))
}

func TestCullProfilerAccumulates(t *testing.T) {
	p := NewCullProfiler(time.Hour)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Record(3, 2, 1)
		}()
	}
	wg.Wait()

	stats := p.Current()
	assert.Equal(t, 8, stats.Batches)
	assert.Equal(t, 24, stats.Outside)
	assert.Equal(t, 48, stats.Total())
	assert.InDelta(t, 0.5, stats.Rejected(), 1e-9)
}

func TestCullProfilerRollsOver(t *testing.T) {
	p := NewCullProfiler(time.Nanosecond)
	time.Sleep(time.Millisecond)

	assert.True(t, p.Record(1, 0, 3))
	assert.Equal(t, CullStats{}, p.Current())
	assert.Equal(t, CullStats{Batches: 1, Outside: 1, Inside: 3}, p.Last())
	assert.Equal(t, float64(0), CullStats{}.Rejected())
}
