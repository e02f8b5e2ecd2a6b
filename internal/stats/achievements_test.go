package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mindglyph/internal/model"
)

func TestUnlockAchievements_Thresholds(t *testing.T) {
	tests := []struct {
		name    string
		played  int
		won     int
		score   int
		streak  int
		wantNew []string
	}{
		{"nothing yet", 0, 0, 0, 0, nil},
		{"first game", 1, 0, 10, 0, []string{model.AchievementFirstSteps}},
		{"nine wins", 9, 9, 0, 0, []string{model.AchievementFirstSteps}},
		{"ten wins", 10, 10, 0, 0, []string{model.AchievementFirstSteps, model.AchievementNovice}},
		{"fifty wins", 60, 50, 0, 0, []string{model.AchievementFirstSteps, model.AchievementNovice, model.AchievementProfessional}},
		{"hundred wins", 100, 100, 0, 0, []string{
			model.AchievementFirstSteps, model.AchievementNovice,
			model.AchievementProfessional, model.AchievementMaster,
		}},
		{"score only", 0, 0, 10000, 0, []string{model.AchievementPointCollector}},
		{"streak", 0, 0, 0, 7, []string{model.AchievementHealthGuru}},
		{"short streak", 0, 0, 0, 6, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newStats()
			st.HealthStats.GoalStreakDays = tt.streak
			p := model.DefaultProfile(testNow)
			p.TotalGamesPlayed, p.TotalGamesWon, p.TotalScore = tt.played, tt.won, tt.score

			got := UnlockAchievements(&st, p, testNow)

			var keys []string
			for _, a := range got {
				keys = append(keys, a.Key)
				require.NotNil(t, a.UnlockedDate)
				assert.Equal(t, testNow, *a.UnlockedDate)
			}
			assert.Equal(t, tt.wantNew, keys)
			assert.Len(t, st.UnlockedAchievements(), len(tt.wantNew))
		})
	}
}

func TestUnlockAchievements_Monotonic(t *testing.T) {
	st := newStats()
	p := model.DefaultProfile(testNow)
	p.TotalGamesPlayed, p.TotalGamesWon = 10, 10
	UnlockAchievements(&st, p, testNow)
	firstDate := *st.Achievement(model.AchievementNovice).UnlockedDate

	// Lower stats never re-lock, and a second pass reports nothing new.
	later := testNow.Add(time.Hour)
	got := UnlockAchievements(&st, model.DefaultProfile(later), later)
	assert.Empty(t, got)
	novice := st.Achievement(model.AchievementNovice)
	assert.True(t, novice.IsUnlocked)
	assert.Equal(t, firstDate, *novice.UnlockedDate)
}

func TestAchievementPoints(t *testing.T) {
	st := newStats()
	st.Achievement(model.AchievementFirstSteps).Unlock(testNow)
	st.Achievement(model.AchievementMaster).Unlock(testNow)
	assert.Equal(t, 10+500, AchievementPoints(st))
}

func TestFindAchievement_ByIDOrKey(t *testing.T) {
	st := newStats()
	byKey := findAchievement(&st, model.AchievementHealthGuru)
	require.NotNil(t, byKey)

	byID := findAchievement(&st, byKey.ID)
	assert.Same(t, byKey, byID)
	assert.Nil(t, findAchievement(&st, "nope"))
}
