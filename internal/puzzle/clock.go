package puzzle

import "sync/atomic"

// Clock is a monotonic logical clock used to stamp snapshots.
//
// Every published Snapshot carries a strictly increasing Seq, so an observer
// that polls and one that subscribes agree on ordering, and a subscriber can
// drop a snapshot older than one it has already rendered.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations).
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
