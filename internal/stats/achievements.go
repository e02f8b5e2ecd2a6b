package stats

import (
	"time"

	"github.com/roach88/mindglyph/internal/model"
)

// HealthGuruStreak is the number of consecutive goal days that unlocks the
// Health Guru achievement.
const HealthGuruStreak = 7

type unlockRule struct {
	key string
	met func(p model.UserProfile, st *model.UserStatistics) bool
}

var unlockRules = []unlockRule{
	{model.AchievementFirstSteps, func(p model.UserProfile, _ *model.UserStatistics) bool { return p.TotalGamesPlayed >= 1 }},
	{model.AchievementNovice, func(p model.UserProfile, _ *model.UserStatistics) bool { return p.TotalGamesWon >= 10 }},
	{model.AchievementProfessional, func(p model.UserProfile, _ *model.UserStatistics) bool { return p.TotalGamesWon >= 50 }},
	{model.AchievementMaster, func(p model.UserProfile, _ *model.UserStatistics) bool { return p.TotalGamesWon >= 100 }},
	{model.AchievementHealthGuru, func(_ model.UserProfile, st *model.UserStatistics) bool {
		return st.HealthStats.GoalStreakDays >= HealthGuruStreak
	}},
	{model.AchievementPointCollector, func(p model.UserProfile, _ *model.UserStatistics) bool { return p.TotalScore >= 10000 }},
}

// UnlockAchievements unlocks every catalog entry whose threshold p (or the
// health streak in st) meets, and returns the entries unlocked by this call.
// Already unlocked entries are never touched.
func UnlockAchievements(st *model.UserStatistics, p model.UserProfile, now time.Time) []model.Achievement {
	var unlocked []model.Achievement
	for _, r := range unlockRules {
		a := st.Achievement(r.key)
		if a == nil || a.IsUnlocked || !r.met(p, st) {
			continue
		}
		if a.Unlock(now) {
			unlocked = append(unlocked, *a)
		}
	}
	return unlocked
}

// findAchievement looks an entry up by id, then by catalog key.
func findAchievement(st *model.UserStatistics, idOrKey string) *model.Achievement {
	for i := range st.Achievements {
		if st.Achievements[i].ID == idOrKey {
			return &st.Achievements[i]
		}
	}
	return st.Achievement(idOrKey)
}

// AchievementPoints sums the points of unlocked entries.
func AchievementPoints(st model.UserStatistics) int {
	total := 0
	for _, a := range st.Achievements {
		if a.IsUnlocked {
			total += a.Points
		}
	}
	return total
}
