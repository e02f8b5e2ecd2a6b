package puzzle

import (
	"fmt"
	"time"

	"github.com/roach88/mindglyph/internal/model"
)

// State is the engine's lifecycle state.
type State int

const (
	StateReady State = iota
	StatePlaying
	StatePaused
	StateCompleted
	// StateFailed is reserved; no rule currently enters it.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// PausePolicy decides what happens to a pending resolution when the player
// pauses between the second tap and the settle.
type PausePolicy string

const (
	// PauseFastForward applies the pending resolution immediately.
	PauseFastForward PausePolicy = "fast_forward"
	// PauseCancel hides both pending cells without scoring. The move still
	// counts.
	PauseCancel PausePolicy = "cancel"
)

// Rules holds the pacing constants of a session.
type Rules struct {
	MatchDelay    time.Duration
	MismatchDelay time.Duration
	TickInterval  time.Duration
	PausePolicy   PausePolicy
}

// DefaultRules returns 0.5s/1.0s resolution delays, a 1s tick and
// fast-forward on pause.
func DefaultRules() Rules {
	return Rules{
		MatchDelay:    500 * time.Millisecond,
		MismatchDelay: time.Second,
		TickInterval:  time.Second,
		PausePolicy:   PauseFastForward,
	}
}

// Resolution is a scheduled match/mismatch settle for the two selected
// cells.
type Resolution struct {
	ID     uint64
	First  string
	Second string
	Match  bool
	Delay  time.Duration
}

// Summary is handed to the caller when a board is cleared.
type Summary struct {
	Level      int
	Score      int // running score across levels
	BoardScore int // points earned on this board
	Moves      int
	Elapsed    time.Duration
	Session    model.GameSession
}

// Game is the complete in-memory state of a puzzle session.
type Game struct {
	State      State
	Cells      []model.GlyphCell
	Selection  []string // ids of selected cells, at most two
	Score      int
	BoardScore int
	Level      int
	Moves      int
	Elapsed    time.Duration
	Difficulty model.DifficultyLevel
	PuzzleType model.PuzzleType
	Session    model.GameSession

	// Pending is the resolution awaiting its delay, if any.
	Pending          *Resolution
	LastResolutionID uint64

	// Completion is set when the board is cleared and cleared again when a
	// new board is dealt.
	Completion *Summary
}

// Cell returns the cell with the given id.
func (g Game) Cell(id string) (model.GlyphCell, bool) {
	if i := g.cellIndex(id); i >= 0 {
		return g.Cells[i], true
	}
	return model.GlyphCell{}, false
}

// Columns returns the grid width of the current difficulty.
func (g Game) Columns() int { return g.Difficulty.Columns() }

// Rows returns the grid height of the current difficulty.
func (g Game) Rows() int { return g.Difficulty.Rows() }

// MatchedCount returns the number of matched cells.
func (g Game) MatchedCount() int {
	n := 0
	for _, c := range g.Cells {
		if c.Matched {
			n++
		}
	}
	return n
}

// AllMatched reports whether a non-empty board is fully matched.
func (g Game) AllMatched() bool {
	return len(g.Cells) > 0 && g.MatchedCount() == len(g.Cells)
}

// SessionRecord returns the session with the live counters filled in, for
// recording a session that ends without completing.
func (g Game) SessionRecord() model.GameSession {
	s := g.Session
	if s.CompletedAt == nil {
		s.Score = g.BoardScore
		s.MovesCount = g.Moves
		s.TimeElapsed = g.Elapsed.Seconds()
		s.Level = g.Level
		s.Difficulty = g.Difficulty
	}
	return s
}

// Clone returns a deep copy that shares no slices or pointers with g.
func (g Game) Clone() Game {
	c := g
	c.Cells = append([]model.GlyphCell(nil), g.Cells...)
	c.Selection = append([]string(nil), g.Selection...)
	if g.Pending != nil {
		p := *g.Pending
		c.Pending = &p
	}
	if g.Completion != nil {
		s := *g.Completion
		c.Completion = &s
	}
	return c
}

func (g Game) cellIndex(id string) int {
	for i := range g.Cells {
		if g.Cells[i].ID == id {
			return i
		}
	}
	return -1
}

func (g Game) selected(id string) bool {
	for _, s := range g.Selection {
		if s == id {
			return true
		}
	}
	return false
}
