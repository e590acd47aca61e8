package transition

import "sync/atomic"

// Clock is a monotonic logical clock.
//
// Every scheduled callback is stamped with a strictly increasing seq number
// from this clock, so that timers sharing a deadline fire in the order they
// were scheduled. Wall-clock time alone cannot provide that guarantee.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations),
// although under the engine's single-writer model only the host loop
// goroutine typically calls Next().
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next sequence number and increments the clock.
// Each call returns a unique, increasing value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
