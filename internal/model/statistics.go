package model

import "time"

// HealthStats tracks step counts fed in from the device and the derived
// health bar.
type HealthStats struct {
	DailySteps     int        `json:"dailySteps"`
	WeeklySteps    int        `json:"weeklySteps"`
	MonthlySteps   int        `json:"monthlySteps"`
	LastUpdated    time.Time  `json:"lastUpdated"`
	HealthBarLevel float64    `json:"healthBarLevel"` // 0.0 to 1.0
	GoalStreakDays int        `json:"goalStreakDays"`
	LastGoalDay    *time.Time `json:"lastGoalDay,omitempty"`
}

// DefaultHealthStats returns zero steps with a half-full health bar.
func DefaultHealthStats(now time.Time) HealthStats {
	return HealthStats{LastUpdated: now, HealthBarLevel: 0.5}
}

// UpdateHealthBar sets the bar to steps/goal, clamped to 1. A non-positive
// goal resets the bar to 0.5.
func (h *HealthStats) UpdateHealthBar(steps, goal int) {
	if goal <= 0 {
		h.HealthBarLevel = 0.5
		return
	}
	level := float64(steps) / float64(goal)
	if level > 1 {
		level = 1
	}
	if level < 0 {
		level = 0
	}
	h.HealthBarLevel = level
}

// UserStatistics bundles session history with the meta-game state.
type UserStatistics struct {
	GameSessions []GameSession `json:"gameSessions"`
	Achievements []Achievement `json:"achievements"`
	DailyQuests  []DailyQuest  `json:"dailyQuests"`
	HealthStats  HealthStats   `json:"healthStats"`
}

// DefaultStatistics returns empty history with the locked achievement
// catalog.
func DefaultStatistics(ids IDGenerator, now time.Time) UserStatistics {
	return UserStatistics{
		GameSessions: []GameSession{},
		Achievements: DefaultAchievements(ids),
		DailyQuests:  []DailyQuest{},
		HealthStats:  DefaultHealthStats(now),
	}
}

// Achievement returns the catalog entry with the given key, or nil.
func (s *UserStatistics) Achievement(key string) *Achievement {
	for i := range s.Achievements {
		if s.Achievements[i].Key == key {
			return &s.Achievements[i]
		}
	}
	return nil
}

// EnsureCatalog appends any catalog entries missing from s, matching by key,
// or by title for records written before keys existed. It reports whether s
// changed.
func (s *UserStatistics) EnsureCatalog(ids IDGenerator) bool {
	ids = orDefault(ids)
	changed := false
	for _, def := range achievementCatalog {
		found := false
		for i := range s.Achievements {
			a := &s.Achievements[i]
			if a.Key == def.Key {
				found = true
				break
			}
			if a.Key == "" && a.Title == def.Title {
				a.Key = def.Key
				found = true
				changed = true
				break
			}
		}
		if !found {
			def.ID = ids.NewID()
			s.Achievements = append(s.Achievements, def)
			changed = true
		}
	}
	return changed
}

// UnlockedAchievements returns the unlocked entries in catalog order.
func (s UserStatistics) UnlockedAchievements() []Achievement {
	var out []Achievement
	for _, a := range s.Achievements {
		if a.IsUnlocked {
			out = append(out, a)
		}
	}
	return out
}

// RecentSessions returns up to limit of the most recent sessions, oldest
// first.
func (s UserStatistics) RecentSessions(limit int) []GameSession {
	if limit <= 0 || limit >= len(s.GameSessions) {
		return append([]GameSession(nil), s.GameSessions...)
	}
	return append([]GameSession(nil), s.GameSessions[len(s.GameSessions)-limit:]...)
}

// Normalize fills fields left empty by a partial or older record: nil lists
// become empty, missing catalog entries are added and an unset health record
// gets its defaults. It reports whether s changed.
func (s *UserStatistics) Normalize(ids IDGenerator, now time.Time) bool {
	changed := false
	if s.GameSessions == nil {
		s.GameSessions = []GameSession{}
	}
	if s.DailyQuests == nil {
		s.DailyQuests = []DailyQuest{}
	}
	if s.HealthStats.LastUpdated.IsZero() && s.HealthStats.HealthBarLevel == 0 && s.HealthStats.DailySteps == 0 {
		s.HealthStats = DefaultHealthStats(now)
		changed = true
	}
	if s.EnsureCatalog(ids) {
		changed = true
	}
	return changed
}
