package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/mindglyph/internal/model"
)

// Summary is the headline numbers shown on the profile screen.
type Summary struct {
	Username         string                `json:"username"`
	TotalPoints      int                   `json:"totalPoints"` // score plus unlocked achievement points
	TotalScore       int                   `json:"totalScore"`
	GamesPlayed      int                   `json:"gamesPlayed"`
	GamesWon         int                   `json:"gamesWon"`
	WinRate          float64               `json:"winRate"`
	HighestLevel     int                   `json:"highestLevel"`
	Difficulty       model.DifficultyLevel `json:"preferredDifficulty"`
	UnlockedCount    int                   `json:"unlockedAchievements"`
	AchievementCount int                   `json:"achievements"`
	CompletedQuests  int                   `json:"completedQuests"`
	QuestCount       int                   `json:"quests"`
	HealthBarLevel   float64               `json:"healthBarLevel"`
	GoalStreakDays   int                   `json:"goalStreakDays"`
}

// Summarize computes the profile screen numbers. Quests are counted for
// now's day only.
func Summarize(p model.UserProfile, st model.UserStatistics, now time.Time) Summary {
	questCount := 0
	for _, q := range st.DailyQuests {
		if model.SameDay(q.QuestDate, now) {
			questCount++
		}
	}
	return Summary{
		Username:         p.Username,
		TotalPoints:      p.TotalScore + AchievementPoints(st),
		TotalScore:       p.TotalScore,
		GamesPlayed:      p.TotalGamesPlayed,
		GamesWon:         p.TotalGamesWon,
		WinRate:          p.WinRate(),
		HighestLevel:     p.HighestLevel,
		Difficulty:       p.PreferredDifficulty,
		UnlockedCount:    len(st.UnlockedAchievements()),
		AchievementCount: len(st.Achievements),
		CompletedQuests:  CompletedQuests(st, now),
		QuestCount:       questCount,
		HealthBarLevel:   st.HealthStats.HealthBarLevel,
		GoalStreakDays:   st.HealthStats.GoalStreakDays,
	}
}

// Summary loads both aggregates and summarises them.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.store.LoadProfile(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("summary: %w", err)
	}
	st, err := s.store.LoadStatistics(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("summary: %w", err)
	}
	return Summarize(p, st, s.now()), nil
}
