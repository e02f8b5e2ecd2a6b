package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mindglyph/internal/model"
)

func TestApplySteps_HealthBar(t *testing.T) {
	tests := []struct {
		name  string
		daily int
		goal  int
		want  float64
	}{
		{"half", 2500, 5000, 0.5},
		{"over goal clamps", 9000, 5000, 1},
		{"none", 0, 5000, 0},
		{"no goal", 3000, 0, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newStats()
			p := model.DefaultProfile(testNow)
			p.DailyGoalSteps = tt.goal
			ApplySteps(p, &st, tt.daily, 0, 0, testNow)
			assert.InDelta(t, tt.want, st.HealthStats.HealthBarLevel, 1e-9)
		})
	}
}

func TestApplySteps_RecordsCounts(t *testing.T) {
	st := newStats()
	ApplySteps(model.DefaultProfile(testNow), &st, 1200, 8000, 30000, testNow)

	h := st.HealthStats
	assert.Equal(t, 1200, h.DailySteps)
	assert.Equal(t, 8000, h.WeeklySteps)
	assert.Equal(t, 30000, h.MonthlySteps)
	assert.Equal(t, testNow, h.LastUpdated)
	assert.Equal(t, 0, h.GoalStreakDays)
}

func TestApplySteps_Streak(t *testing.T) {
	st := newStats()
	p := model.DefaultProfile(testNow)

	day := func(n int) time.Time { return testNow.AddDate(0, 0, n) }

	ApplySteps(p, &st, 6000, 0, 0, day(0))
	assert.Equal(t, 1, st.HealthStats.GoalStreakDays)

	// Same day counts once.
	ApplySteps(p, &st, 7000, 0, 0, day(0).Add(1))
	assert.Equal(t, 1, st.HealthStats.GoalStreakDays)

	ApplySteps(p, &st, 5000, 0, 0, day(1))
	assert.Equal(t, 2, st.HealthStats.GoalStreakDays)

	// A missed day restarts the streak.
	ApplySteps(p, &st, 5000, 0, 0, day(3))
	assert.Equal(t, 1, st.HealthStats.GoalStreakDays)

	// Below goal leaves it untouched.
	ApplySteps(p, &st, 100, 0, 0, day(4))
	assert.Equal(t, 1, st.HealthStats.GoalStreakDays)
}

func TestApplySteps_SevenDaysUnlocksHealthGuru(t *testing.T) {
	st := newStats()
	p := model.DefaultProfile(testNow)

	var unlocked []model.Achievement
	for i := 0; i < 7; i++ {
		unlocked = append(unlocked, ApplySteps(p, &st, 5000, 0, 0, testNow.AddDate(0, 0, i))...)
	}

	require.Len(t, unlocked, 1)
	assert.Equal(t, model.AchievementHealthGuru, unlocked[0].Key)
	assert.Equal(t, 7, st.HealthStats.GoalStreakDays)
}

func TestApplySteps_QuestTracksDailyCount(t *testing.T) {
	st := newStats()
	ids := model.NewSequenceGenerator("q")
	EnsureHealthQuest(&st, testNow, ids)
	p := model.DefaultProfile(testNow)

	ApplySteps(p, &st, 3000, 0, 0, testNow)
	assert.Equal(t, 3000, questOf(t, st, model.QuestHealthSteps).CurrentValue)

	// A lower reading later the same day does not roll progress back.
	ApplySteps(p, &st, 2000, 0, 0, testNow)
	assert.Equal(t, 3000, questOf(t, st, model.QuestHealthSteps).CurrentValue)

	ApplySteps(p, &st, 5200, 0, 0, testNow)
	q := questOf(t, st, model.QuestHealthSteps)
	assert.Equal(t, 5200, q.CurrentValue)
	assert.True(t, q.IsCompleted)
}
