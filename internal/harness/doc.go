// Package harness replays scripted puzzle sessions and checks the outcome.
//
// A scenario deals one or more boards (scripted layouts or seeded shuffles),
// taps cells by grid position, advances a manual clock, and asserts on the
// resulting trace, the final game state and the recorded player statistics.
//
// # Scenario Format
//
//	name: easy_perfect_board
//	description: "Clear an easy board in the minimum number of moves"
//	difficulty: easy
//	rules:
//	  match_delay: 250ms
//	boards:
//	  - [A, B, C, A, B, C]
//	steps:
//	  - start: true
//	  - wait: 20s
//	  - tap: 0
//	  - tap: 3
//	    expect: { moves: 1 }
//	  - wait: 250ms
//	  - match: B
//	assertions:
//	  - type: final_state
//	    expect: { state: completed, score: 420 }
//	  - type: completions
//	    count: 1
//
// Each step names exactly one action:
//
//   - start: deal a new board and start the clock
//   - next_level: advance after a cleared board
//   - tap: tap the cell at a grid position
//   - match: tap both unmatched cells showing a symbol
//   - wait: advance the clock, firing ticks and resolutions
//   - pause, resume, reset
//
// # Assertion Types
//
//   - final_state: subset match against the final game view
//   - completions: number of boards cleared
//   - trace_count: number of steps with the given action
//   - trace_order: actions appear in the given order
//   - profile: subset match against the stored profile counters
//   - achievements: every listed achievement key is unlocked
//   - quest: subset match against today's quest of the given type
//
// # Deterministic Runs
//
// Every run uses a manual clock starting at Epoch, sequential ids and an
// in-memory store, so traces are identical across runs and can be compared
// against golden files with RunWithGolden.
package harness
