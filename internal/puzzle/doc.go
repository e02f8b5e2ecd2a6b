// Package puzzle implements the memory-matching session engine.
//
// ARCHITECTURE:
//
// Pure Reducer:
// All game rules live in Engine.Reduce, a pure function
// (Game, Event) -> (Game, []Effect). It never sleeps, never reads the wall
// clock and never touches shared state. Timestamps and random seeds arrive
// inside events, so a recorded event stream replays to the same games.
//
// Effects:
// Anything time-based is returned as an Effect for the caller to execute:
//   - StartTicker / StopTicker: the 1-second elapsed-time clock
//   - ScheduleResolution / CancelResolution: deferred match/mismatch settle
//   - Completed: the board was cleared (emitted exactly once per board)
//   - Ignored: an out-of-turn operation was dropped
//
// Session Runtime:
// Session owns one Game and serialises every event under a single lock,
// which plays the role of the UI thread. Timer callbacks re-enter through
// the same lock. Resolutions are keyed by id and ticks by epoch, so a
// callback that fires after a reset or pause is dropped instead of being
// applied to the wrong board.
//
// Observers receive Snapshots through Subscriptions: unbounded FIFO queues
// that never block the dispatcher.
package puzzle
