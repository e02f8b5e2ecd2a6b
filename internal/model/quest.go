package model

import "time"

// QuestType tags what a daily quest measures.
type QuestType string

const (
	QuestCompletePuzzles QuestType = "complete_puzzles"
	QuestAchieveScore    QuestType = "achieve_score"
	QuestPlayTime        QuestType = "play_time"
	QuestPerfectMoves    QuestType = "perfect_moves"
	QuestHealthSteps     QuestType = "health_steps"
)

// DailyQuest is a progress objective scoped to one calendar day.
type DailyQuest struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	TargetValue  int       `json:"targetValue"`
	CurrentValue int       `json:"currentValue"`
	IsCompleted  bool      `json:"isCompleted"`
	QuestDate    time.Time `json:"questDate"`
	RewardPoints int       `json:"rewardPoints"`
	QuestType    QuestType `json:"questType"`
	// ProgressSeconds accumulates play time for play_time quests so partial
	// minutes carry over between sessions.
	ProgressSeconds float64 `json:"progressSeconds,omitempty"`
}

type questDefaults struct {
	title, description string
	target, reward     int
}

var questCatalog = map[QuestType]questDefaults{
	QuestCompletePuzzles: {"Puzzle Master", "Complete 5 puzzles", 5, 100},
	QuestAchieveScore:    {"Score Hunter", "Earn 1000 points", 1000, 150},
	QuestPlayTime:        {"Mind Marathon", "Play for 30 minutes", 30, 80},
	QuestPerfectMoves:    {"Perfect Game", "Complete puzzle with minimum moves", 1, 200},
	QuestHealthSteps:     {"Healthy Path", "Walk 5000 steps", 5000, 120},
}

// NewDailyQuest builds a quest of the given type with its fixed target and
// reward, dated date.
func NewDailyQuest(ids IDGenerator, qt QuestType, date time.Time) DailyQuest {
	d := questCatalog[qt]
	return DailyQuest{
		ID:           orDefault(ids).NewID(),
		Title:        d.title,
		Description:  d.description,
		TargetValue:  d.target,
		RewardPoints: d.reward,
		QuestType:    qt,
		QuestDate:    date,
	}
}

// Progress is CurrentValue/TargetValue clamped to [0, 1].
func (q DailyQuest) Progress() float64 {
	if q.TargetValue <= 0 {
		return 0
	}
	p := float64(q.CurrentValue) / float64(q.TargetValue)
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

// ReportedValue is CurrentValue saturated at TargetValue.
func (q DailyQuest) ReportedValue() int {
	if q.CurrentValue > q.TargetValue {
		return q.TargetValue
	}
	return q.CurrentValue
}

// StartOfDay truncates t to local midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day in b's
// location.
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
