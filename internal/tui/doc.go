// Package tui renders a puzzle session as an interactive terminal board.
//
// The Model only reads session state from snapshots. Run forwards every
// snapshot the session publishes into the Bubble Tea program, so the board
// redraws on ticks and deferred resolutions as well as on key presses.
//
// Thread-safety: Model is used only from the Bubble Tea event loop.
package tui
