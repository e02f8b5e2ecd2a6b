package puzzle

import "time"

// Scheduler supplies wall-clock time and one-shot timers to a Session.
//
// AfterFunc must never call f synchronously; the returned function stops the
// timer and reports whether it was still pending.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

// SystemScheduler returns a Scheduler backed by the time package.
func SystemScheduler() Scheduler { return systemScheduler{} }

type systemScheduler struct{}

func (systemScheduler) Now() time.Time { return time.Now() }

func (systemScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}
