package stats

import (
	"time"

	"github.com/roach88/mindglyph/internal/model"
)

// ApplySteps records a step-count reading against the profile's daily goal.
//
// The health bar becomes daily/goal clamped to 1 (0.5 with no goal). When
// the goal is met the streak extends if yesterday was also a goal day and
// restarts at 1 otherwise; repeated readings on the same day count once.
// The step quest tracks the daily count. Returns achievements unlocked by
// the reading.
func ApplySteps(p model.UserProfile, st *model.UserStatistics, daily, weekly, monthly int, now time.Time) []model.Achievement {
	h := &st.HealthStats
	h.DailySteps = daily
	h.WeeklySteps = weekly
	h.MonthlySteps = monthly
	h.LastUpdated = now
	h.UpdateHealthBar(daily, p.DailyGoalSteps)

	if p.DailyGoalSteps > 0 && daily >= p.DailyGoalSteps {
		today := model.StartOfDay(now)
		switch {
		case h.LastGoalDay != nil && model.SameDay(*h.LastGoalDay, now):
			// already counted
		case h.LastGoalDay != nil && model.SameDay(*h.LastGoalDay, today.AddDate(0, 0, -1)):
			h.GoalStreakDays++
			h.LastGoalDay = &today
		default:
			h.GoalStreakDays = 1
			h.LastGoalDay = &today
		}
	}

	raiseQuestProgress(st, model.QuestHealthSteps, daily)
	return UnlockAchievements(st, p, now)
}
