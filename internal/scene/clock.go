package scene

import "sync/atomic"

// Clock is a monotonic counter used as the scene's mutation nonce and as the
// session's selection nonce.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations).
// The editing session is single-threaded, so in practice only one goroutine
// calls Next().
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a new clock starting at a specific value.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next increments the clock and returns the new value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current value without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
