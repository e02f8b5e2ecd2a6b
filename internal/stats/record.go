package stats

import (
	"time"

	"github.com/roach88/mindglyph/internal/model"
)

// ApplySession folds a finished session into the profile and statistics:
// profile counters, session history, quest progress and achievements. won
// is true when the board was cleared. It returns the achievements unlocked
// as a result.
func ApplySession(p *model.UserProfile, st *model.UserStatistics, s model.GameSession, won bool, now time.Time) []model.Achievement {
	p.TotalGamesPlayed++
	if won {
		p.TotalGamesWon++
	}
	p.TotalScore += s.Score
	if s.Level > p.HighestLevel {
		p.HighestLevel = s.Level
	}
	played := now
	p.LastPlayedAt = &played

	st.GameSessions = append(st.GameSessions, s)

	if won {
		ApplyQuestProgress(st, model.QuestCompletePuzzles, 1)
	}
	ApplyQuestProgress(st, model.QuestAchieveScore, s.Score)
	addPlayTime(st, s.TimeElapsed)
	if won && s.Difficulty.Valid() && s.MovesCount == s.Difficulty.OptimalMoves() {
		ApplyQuestProgress(st, model.QuestPerfectMoves, 1)
	}

	return UnlockAchievements(st, *p, now)
}
