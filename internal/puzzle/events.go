package puzzle

import "time"

// Event is an input to Engine.Reduce.
type Event interface {
	eventName() string
}

// StartNewGame deals a fresh board at the current level. Seed drives the
// shuffle.
type StartNewGame struct{ Seed uint64 }

// NextLevel advances the level and deals a fresh board.
type NextLevel struct{ Seed uint64 }

// Pause freezes the clock. At stamps a completion caused by fast-forwarding
// a pending resolution.
type Pause struct{ At time.Time }

// Resume restarts the clock.
type Resume struct{}

// Reset discards the board and returns to ready.
type Reset struct{}

// Tap selects a cell.
type Tap struct{ CellID string }

// Tick advances elapsed time by one tick interval.
type Tick struct{}

// Resolve settles the pending resolution with the given id.
type Resolve struct {
	ID uint64
	At time.Time
}

func (StartNewGame) eventName() string { return "start_new_game" }
func (NextLevel) eventName() string    { return "next_level" }
func (Pause) eventName() string        { return "pause" }
func (Resume) eventName() string       { return "resume" }
func (Reset) eventName() string        { return "reset" }
func (Tap) eventName() string          { return "tap" }
func (Tick) eventName() string         { return "tick" }
func (Resolve) eventName() string      { return "resolve" }

// EventName returns a stable name for ev, used in logs and traces.
func EventName(ev Event) string { return ev.eventName() }

// Effect is an instruction returned by Engine.Reduce for the runtime to
// carry out.
type Effect interface {
	effectName() string
}

// StartTicker starts (or restarts) the elapsed-time ticker.
type StartTicker struct{}

// StopTicker stops the elapsed-time ticker.
type StopTicker struct{}

// ScheduleResolution asks for Resolve{ID} to be dispatched after Delay.
type ScheduleResolution struct {
	ID    uint64
	Delay time.Duration
}

// CancelResolution withdraws a scheduled resolution.
type CancelResolution struct{ ID uint64 }

// Completed signals that the board was cleared.
type Completed struct{ Summary Summary }

// Ignored reports an event that had no effect.
type Ignored struct{ Reason string }

func (StartTicker) effectName() string        { return "start_ticker" }
func (StopTicker) effectName() string         { return "stop_ticker" }
func (ScheduleResolution) effectName() string { return "schedule_resolution" }
func (CancelResolution) effectName() string   { return "cancel_resolution" }
func (Completed) effectName() string          { return "completed" }
func (Ignored) effectName() string            { return "ignored" }

// EffectName returns a stable name for ef, used in logs and traces.
func EffectName(ef Effect) string { return ef.effectName() }
