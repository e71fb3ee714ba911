package camera

import "time"

// Clock is a monotonic millisecond source. The epoch is arbitrary; only
// differences between readings are meaningful.
type Clock interface {
	Milliseconds() int64
}

type systemClock struct {
	epoch time.Time
}

// NewSystemClock returns a Clock backed by the runtime's monotonic clock.
//
// Returns:
//   - Clock: milliseconds elapsed since the clock was created
func NewSystemClock() Clock {
	return &systemClock{epoch: time.Now()}
}

func (s *systemClock) Milliseconds() int64 {
	return time.Since(s.epoch).Milliseconds()
}
