package profiler

import (
	"log/slog"
	"sync"
	"time"
)

// CullStats accumulates culling outcomes over one reporting interval.
type CullStats struct {
	Batches    int
	Outside    int
	Intersects int
	Inside     int
}

// Total returns the number of boxes classified.
func (s CullStats) Total() int {
	return s.Outside + s.Intersects + s.Inside
}

// Rejected returns the fraction of boxes classified outside, or 0 if none were classified.
func (s CullStats) Rejected() float64 {
	if s.Total() == 0 {
		return 0
	}
	return float64(s.Outside) / float64(s.Total())
}

// CullProfiler counts culling outcomes and logs a summary at a fixed interval.
// It is safe for concurrent use.
type CullProfiler struct {
	mu             *sync.Mutex
	lastTime       time.Time
	updateInterval time.Duration
	current        CullStats
	last           CullStats
}

// NewCullProfiler creates a new CullProfiler.
//
// Parameters:
//   - interval: how often the summary is logged (defaults to 1 second if <= 0)
//
// Returns:
//   - *CullProfiler: the newly created profiler
func NewCullProfiler(interval time.Duration) *CullProfiler {
	if interval <= 0 {
		interval = time.Second
	}
	return &CullProfiler{
		mu:             &sync.Mutex{},
		lastTime:       time.Now(),
		updateInterval: interval,
	}
}

// Record adds the outcome of one culling batch.
//
// Parameters:
//   - outside, intersects, inside: number of boxes per classification
//
// Returns:
//   - bool: true if a summary was logged by this call
func (p *CullProfiler) Record(outside, intersects, inside int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current.Batches++
	p.current.Outside += outside
	p.current.Intersects += intersects
	p.current.Inside += inside

	now := time.Now()
	if now.Sub(p.lastTime) < p.updateInterval {
		return false
	}

	slog.Info("[Profiler] cull stats",
		"batches", p.current.Batches,
		"boxes", p.current.Total(),
		"outside", p.current.Outside,
		"intersects", p.current.Intersects,
		"inside", p.current.Inside,
		"rejected", p.current.Rejected(),
	)
	p.last = p.current
	p.current = CullStats{}
	p.lastTime = now
	return true
}

// Current returns the counts accumulated since the last summary.
func (p *CullProfiler) Current() CullStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Last returns the counts of the previous completed interval.
func (p *CullProfiler) Last() CullStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}
