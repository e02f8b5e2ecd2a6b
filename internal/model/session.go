package model

import "time"

// GlyphCell is one slot of the puzzle grid.
type GlyphCell struct {
	ID       string `json:"id"`
	Symbol   string `json:"symbol"`
	Revealed bool   `json:"revealed"`
	Matched  bool   `json:"matched"`
	Position int    `json:"position"`
}

// GameSession records one played round.
type GameSession struct {
	ID          string          `json:"id"`
	Score       int             `json:"score"`
	Level       int             `json:"level"`
	MovesCount  int             `json:"movesCount"`
	TimeElapsed float64         `json:"timeElapsed"` // seconds
	PuzzleType  PuzzleType      `json:"puzzleType"`
	Difficulty  DifficultyLevel `json:"difficulty"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
}

// NewGameSession starts a level-1 session with zeroed counters.
func NewGameSession(ids IDGenerator, puzzleType PuzzleType, difficulty DifficultyLevel) GameSession {
	return GameSession{
		ID:         orDefault(ids).NewID(),
		Level:      1,
		PuzzleType: puzzleType,
		Difficulty: difficulty,
	}
}

// Completed reports whether the session reached the completed state.
func (s GameSession) Completed() bool { return s.CompletedAt != nil }

// Elapsed returns TimeElapsed as a duration.
func (s GameSession) Elapsed() time.Duration {
	return time.Duration(s.TimeElapsed * float64(time.Second))
}
