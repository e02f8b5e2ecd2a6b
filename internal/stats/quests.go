package stats

import (
	"time"

	"github.com/roach88/mindglyph/internal/model"
)

// dailyQuestTypes are generated every day, in this order.
var dailyQuestTypes = []model.QuestType{
	model.QuestCompletePuzzles,
	model.QuestAchieveScore,
	model.QuestPlayTime,
}

// GenerateDailyQuests returns today's three quests dated at the start of
// now's day.
func GenerateDailyQuests(now time.Time, ids model.IDGenerator) []model.DailyQuest {
	today := model.StartOfDay(now)
	quests := make([]model.DailyQuest, 0, len(dailyQuestTypes))
	for _, qt := range dailyQuestTypes {
		quests = append(quests, model.NewDailyQuest(ids, qt, today))
	}
	return quests
}

// RefreshDailyQuests drops quests not dated today and generates a new set if
// none remain. Calling it again on the same day changes nothing. It reports
// whether st changed.
func RefreshDailyQuests(st *model.UserStatistics, now time.Time, ids model.IDGenerator) bool {
	kept := st.DailyQuests[:0]
	for _, q := range st.DailyQuests {
		if model.SameDay(q.QuestDate, now) {
			kept = append(kept, q)
		}
	}
	changed := len(kept) != len(st.DailyQuests)
	st.DailyQuests = kept

	if len(st.DailyQuests) == 0 {
		st.DailyQuests = GenerateDailyQuests(now, ids)
		changed = true
	}
	return changed
}

// EnsureHealthQuest adds today's step quest if it is missing. It reports
// whether st changed.
func EnsureHealthQuest(st *model.UserStatistics, now time.Time, ids model.IDGenerator) bool {
	if findQuest(st, model.QuestHealthSteps) >= 0 {
		return false
	}
	st.DailyQuests = append(st.DailyQuests, model.NewDailyQuest(ids, model.QuestHealthSteps, model.StartOfDay(now)))
	return true
}

// ApplyQuestProgress adds value to the first quest of type qt and marks it
// completed once the target is reached. Non-positive values and missing
// quests are no-ops. It reports whether st changed.
func ApplyQuestProgress(st *model.UserStatistics, qt model.QuestType, value int) bool {
	if value <= 0 {
		return false
	}
	i := findQuest(st, qt)
	if i < 0 {
		return false
	}
	q := &st.DailyQuests[i]
	q.CurrentValue += value
	if q.CurrentValue >= q.TargetValue {
		q.IsCompleted = true
	}
	return true
}

// raiseQuestProgress sets the first quest of type qt to at least value. Used
// for quests that track an absolute reading rather than an increment.
func raiseQuestProgress(st *model.UserStatistics, qt model.QuestType, value int) bool {
	i := findQuest(st, qt)
	if i < 0 || value <= st.DailyQuests[i].CurrentValue {
		return false
	}
	return ApplyQuestProgress(st, qt, value-st.DailyQuests[i].CurrentValue)
}

// addPlayTime adds seconds to the play_time quest. Progress counts whole
// minutes of the running total.
func addPlayTime(st *model.UserStatistics, seconds float64) bool {
	i := findQuest(st, model.QuestPlayTime)
	if i < 0 || seconds <= 0 {
		return false
	}
	st.DailyQuests[i].ProgressSeconds += seconds
	raiseQuestProgress(st, model.QuestPlayTime, int(st.DailyQuests[i].ProgressSeconds/60))
	return true
}

// CompletedQuests counts today's completed quests.
func CompletedQuests(st model.UserStatistics, now time.Time) int {
	n := 0
	for _, q := range st.DailyQuests {
		if q.IsCompleted && model.SameDay(q.QuestDate, now) {
			n++
		}
	}
	return n
}

func findQuest(st *model.UserStatistics, qt model.QuestType) int {
	for i := range st.DailyQuests {
		if st.DailyQuests[i].QuestType == qt {
			return i
		}
	}
	return -1
}
