package puzzle

import (
	"time"

	"github.com/roach88/mindglyph/internal/model"
)

// Score components for a successful match.
const (
	basePointsPerRank = 10
	timeBonusCeiling  = 100
	optimalMoveBonus  = 50
)

// MatchScore returns the points for one matched pair:
//
//	10*rank + max(0, 100 - floor(elapsed seconds)) + (50 if moves <= optimal)
//
// where optimal is half the difficulty's cell count.
func MatchScore(d model.DifficultyLevel, elapsed time.Duration, moves int) int {
	score := basePointsPerRank * d.Rank()
	if bonus := timeBonusCeiling - int(elapsed/time.Second); bonus > 0 {
		score += bonus
	}
	if moves <= d.OptimalMoves() {
		score += optimalMoveBonus
	}
	return score
}
