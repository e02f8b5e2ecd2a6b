package model

import (
	"fmt"
	"strings"
)

// DifficultyLevel is the ordered difficulty tier. Its integer value is the
// difficulty rank used in scoring.
type DifficultyLevel int

const (
	Easy   DifficultyLevel = 1
	Medium DifficultyLevel = 2
	Hard   DifficultyLevel = 3
	Expert DifficultyLevel = 4
)

// Difficulties lists every tier in ascending order.
var Difficulties = []DifficultyLevel{Easy, Medium, Hard, Expert}

// String returns the display name of the tier.
func (d DifficultyLevel) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	case Expert:
		return "Expert"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// Rank returns the integer ordinal (1-4).
func (d DifficultyLevel) Rank() int { return int(d) }

// Valid reports whether d is one of the defined tiers.
func (d DifficultyLevel) Valid() bool { return d >= Easy && d <= Expert }

// Columns returns the grid width for the tier.
func (d DifficultyLevel) Columns() int {
	switch d {
	case Medium, Hard:
		return 4
	case Expert:
		return 5
	default:
		return 3
	}
}

// Rows returns the grid height for the tier.
func (d DifficultyLevel) Rows() int {
	switch d {
	case Medium:
		return 3
	case Hard, Expert:
		return 4
	default:
		return 2
	}
}

// TotalCells is Columns*Rows.
func (d DifficultyLevel) TotalCells() int { return d.Columns() * d.Rows() }

// OptimalMoves is the minimum number of moves that can clear the board.
func (d DifficultyLevel) OptimalMoves() int { return d.TotalCells() / 2 }

// Harder returns the next tier, saturating at Expert.
func (d DifficultyLevel) Harder() DifficultyLevel {
	if d >= Expert {
		return Expert
	}
	if d < Easy {
		return Easy
	}
	return d + 1
}

// ParseDifficulty accepts a tier name (case-insensitive) or its rank.
func ParseDifficulty(s string) (DifficultyLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "1":
		return Easy, nil
	case "medium", "2":
		return Medium, nil
	case "hard", "3":
		return Hard, nil
	case "expert", "4":
		return Expert, nil
	}
	return 0, fmt.Errorf("unknown difficulty %q: must be one of easy, medium, hard, expert", s)
}

// PuzzleType tags the kind of puzzle a session was played on.
type PuzzleType string

const (
	PuzzleGlyph    PuzzleType = "Glyph"
	PuzzlePattern  PuzzleType = "Pattern"
	PuzzleSequence PuzzleType = "Sequence"
	PuzzleMemory   PuzzleType = "Memory"
)
