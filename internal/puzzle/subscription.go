package puzzle

import (
	"context"
	"errors"
	"sync"
)

// ErrSubscriptionClosed is returned by Next once the subscription is closed
// and drained.
var ErrSubscriptionClosed = errors.New("subscription closed")

// Subscription is a FIFO of snapshots published by a Session.
//
// The queue is unbounded so publishing never blocks the Session's event
// handling, however slow the reader.
//
// The queue uses a channel for signaling to enable context-aware waiting
// in Next.
type Subscription struct {
	mu     sync.Mutex
	items  []Snapshot
	closed bool
	signal chan struct{} // Signals availability (buffered, size 1)
	cancel func(*Subscription)
}

func newSubscription(cancel func(*Subscription)) *Subscription {
	return &Subscription{
		items:  make([]Snapshot, 0, 16),
		signal: make(chan struct{}, 1),
		cancel: cancel,
	}
}

// push appends a snapshot. Returns false if the subscription is closed.
func (q *Subscription) push(s Snapshot) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.items = append(q.items, s)

	// Non-blocking; a buffer of 1 coalesces multiple signals.
	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// TryNext removes and returns the oldest snapshot without blocking.
func (q *Subscription) TryNext() (Snapshot, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return Snapshot{}, false
	}
	s := q.items[0]
	q.items[0] = Snapshot{}
	if len(q.items) == 1 {
		q.items = q.items[:0]
	} else {
		q.items = q.items[1:]
	}
	return s, true
}

// Next blocks until a snapshot is available, ctx is done, or the
// subscription is closed and drained.
func (q *Subscription) Next(ctx context.Context) (Snapshot, error) {
	for {
		if s, ok := q.TryNext(); ok {
			return s, nil
		}

		q.mu.Lock()
		done := q.closed && len(q.items) == 0
		q.mu.Unlock()
		if done {
			return Snapshot{}, ErrSubscriptionClosed
		}

		select {
		case <-ctx.Done():
			return Snapshot{}, ctx.Err()
		case <-q.signal:
		}
	}
}

// Close detaches the subscription from its session and wakes any waiter.
// Queued snapshots remain readable.
func (q *Subscription) Close() {
	if q.cancel != nil {
		q.cancel(q)
	}
	q.close()
}

func (q *Subscription) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.signal)
}
