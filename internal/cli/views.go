package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/roach88/mindglyph/internal/model"
	"github.com/roach88/mindglyph/internal/stats"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B4A7F5"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8A8F98")).Width(18)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8A8F98"))
	tableBorder  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4C4F69"))
)

const dateLayout = "2006-01-02"

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorder).
		Headers(headers...)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// profileView renders the profile screen.
type profileView struct {
	stats.Summary
}

func (v profileView) String() string {
	rows := [][2]string{
		{"Name", v.Username},
		{"Total points", fmt.Sprint(v.TotalPoints)},
		{"Score", fmt.Sprint(v.TotalScore)},
		{"Games played", fmt.Sprint(v.GamesPlayed)},
		{"Games won", fmt.Sprint(v.GamesWon)},
		{"Win rate", fmt.Sprintf("%.0f%%", v.WinRate*100)},
		{"Highest level", fmt.Sprint(v.HighestLevel)},
		{"Difficulty", v.Difficulty.String()},
		{"Achievements", fmt.Sprintf("%d/%d", v.UnlockedCount, v.AchievementCount)},
		{"Quests today", fmt.Sprintf("%d/%d", v.CompletedQuests, v.QuestCount)},
		{"Health bar", fmt.Sprintf("%.0f%%", v.HealthBarLevel*100)},
		{"Goal streak", fmt.Sprintf("%d days", v.GoalStreakDays)},
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render("Profile"))
	for _, r := range rows {
		b.WriteString("\n" + labelStyle.Render(r[0]) + r[1])
	}
	return b.String()
}

// settingsView renders the stored preferences.
type settingsView struct {
	model.UserProfile
}

func (v settingsView) String() string {
	rows := [][2]string{
		{"Name", v.Username},
		{"Difficulty", v.PreferredDifficulty.String()},
		{"Sound", onOff(v.SoundEnabled)},
		{"Haptics", onOff(v.HapticsEnabled)},
		{"Step tracking", onOff(v.HealthEnabled)},
		{"Daily step goal", fmt.Sprint(v.DailyGoalSteps)},
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render("Settings"))
	for _, r := range rows {
		b.WriteString("\n" + labelStyle.Render(r[0]) + r[1])
	}
	return b.String()
}

// questsView renders today's quests.
type questsView []model.DailyQuest

func (v questsView) String() string {
	if len(v) == 0 {
		return mutedStyle.Render("No quests today.")
	}
	t := newTable("", "Quest", "Progress", "Reward")
	for _, q := range v {
		mark := "·"
		if q.IsCompleted {
			mark = "✓"
		}
		t.Row(mark,
			q.Title+"\n"+mutedStyle.Render(q.Description),
			fmt.Sprintf("%d/%d", q.ReportedValue(), q.TargetValue),
			fmt.Sprintf("%d pts", q.RewardPoints))
	}
	return headingStyle.Render("Daily quests") + "\n" + t.String()
}

// achievementsView renders the achievement catalog.
type achievementsView []model.Achievement

func (v achievementsView) String() string {
	if len(v) == 0 {
		return mutedStyle.Render("No achievements unlocked yet.")
	}
	t := newTable("Achievement", "Goal", "Points", "Unlocked")
	for _, a := range v {
		unlocked := "locked"
		if a.IsUnlocked && a.UnlockedDate != nil {
			unlocked = a.UnlockedDate.Format(dateLayout)
		}
		t.Row(a.Title, a.Description, fmt.Sprint(a.Points), unlocked)
	}
	return headingStyle.Render("Achievements") + "\n" + t.String()
}

// sessionsView renders recent game sessions.
type sessionsView []model.GameSession

func (v sessionsView) String() string {
	if len(v) == 0 {
		return mutedStyle.Render("No sessions recorded yet.")
	}
	t := newTable("Finished", "Level", "Difficulty", "Score", "Moves", "Time")
	for _, s := range v {
		finished := "abandoned"
		if s.CompletedAt != nil {
			finished = s.CompletedAt.Format(dateLayout)
		}
		t.Row(finished,
			fmt.Sprint(s.Level),
			s.Difficulty.String(),
			fmt.Sprint(s.Score),
			fmt.Sprint(s.MovesCount),
			s.Elapsed().Round(time.Second).String())
	}
	return headingStyle.Render("Recent sessions") + "\n" + t.String()
}

// stepsView renders a step reading and what it unlocked.
type stepsView struct {
	Health   model.HealthStats   `json:"healthStats"`
	Goal     int                 `json:"dailyGoalSteps"`
	Unlocked []model.Achievement `json:"unlocked"`
}

func (v stepsView) String() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Steps"))
	b.WriteString("\n" + labelStyle.Render("Today") + fmt.Sprintf("%d / %d", v.Health.DailySteps, v.Goal))
	b.WriteString("\n" + labelStyle.Render("This week") + fmt.Sprint(v.Health.WeeklySteps))
	b.WriteString("\n" + labelStyle.Render("This month") + fmt.Sprint(v.Health.MonthlySteps))
	b.WriteString("\n" + labelStyle.Render("Health bar") + fmt.Sprintf("%.0f%%", v.Health.HealthBarLevel*100))
	b.WriteString("\n" + labelStyle.Render("Goal streak") + fmt.Sprintf("%d days", v.Health.GoalStreakDays))
	if line := unlockedLine(v.Unlocked); line != "" {
		b.WriteString("\n" + line)
	}
	return b.String()
}

// unlockedLine lists newly unlocked achievements, or returns "".
func unlockedLine(unlocked []model.Achievement) string {
	if len(unlocked) == 0 {
		return ""
	}
	titles := make([]string, len(unlocked))
	for i, a := range unlocked {
		titles[i] = a.Title
	}
	return "Unlocked: " + strings.Join(titles, ", ")
}
