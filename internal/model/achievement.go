package model

import "time"

// Achievement keys. Keys are stable across installs; IDs are not.
const (
	AchievementFirstSteps     = "first_steps"
	AchievementNovice         = "novice"
	AchievementProfessional   = "professional"
	AchievementMaster         = "master"
	AchievementHealthGuru     = "health_guru"
	AchievementPointCollector = "point_collector"
)

// Achievement is a permanent unlockable milestone. IsUnlocked only ever goes
// from false to true.
type Achievement struct {
	ID           string     `json:"id"`
	Key          string     `json:"key"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Icon         string     `json:"icon"`
	IsUnlocked   bool       `json:"isUnlocked"`
	UnlockedDate *time.Time `json:"unlockedDate,omitempty"`
	Points       int        `json:"points"`
}

var achievementCatalog = []Achievement{
	{Key: AchievementFirstSteps, Title: "First Steps", Description: "Complete your first game", Icon: "star.fill", Points: 10},
	{Key: AchievementNovice, Title: "Novice", Description: "Win 10 games", Icon: "flame.fill", Points: 50},
	{Key: AchievementProfessional, Title: "Professional", Description: "Win 50 games", Icon: "crown.fill", Points: 200},
	{Key: AchievementMaster, Title: "Master", Description: "Win 100 games", Icon: "trophy.fill", Points: 500},
	{Key: AchievementHealthGuru, Title: "Health Guru", Description: "Reach step goal for 7 days straight", Icon: "heart.fill", Points: 300},
	{Key: AchievementPointCollector, Title: "Point Collector", Description: "Earn 10000 points", Icon: "sparkles", Points: 400},
}

// DefaultAchievements returns the full catalog, all locked, with fresh ids.
func DefaultAchievements(ids IDGenerator) []Achievement {
	ids = orDefault(ids)
	out := make([]Achievement, len(achievementCatalog))
	for i, a := range achievementCatalog {
		a.ID = ids.NewID()
		out[i] = a
	}
	return out
}

// Unlock marks a unlocked at now. Returns false if it was already unlocked.
func (a *Achievement) Unlock(now time.Time) bool {
	if a.IsUnlocked {
		return false
	}
	a.IsUnlocked = true
	a.UnlockedDate = &now
	return true
}
