package model

import "time"

// DefaultUsername is used until the player picks a name.
const DefaultUsername = "Player"

// DefaultDailyGoalSteps is the step goal for new profiles.
const DefaultDailyGoalSteps = 5000

// UserProfile holds identity, preferences and cross-session counters.
//
// Invariant: TotalGamesWon <= TotalGamesPlayed.
type UserProfile struct {
	Username            string          `json:"username"`
	TotalScore          int             `json:"totalScore"`
	TotalGamesPlayed    int             `json:"totalGamesPlayed"`
	TotalGamesWon       int             `json:"totalGamesWon"`
	HighestLevel        int             `json:"highestLevel"`
	CreatedAt           time.Time       `json:"createdAt"`
	LastPlayedAt        *time.Time      `json:"lastPlayedAt,omitempty"`
	PreferredDifficulty DifficultyLevel `json:"preferredDifficulty"`
	HealthEnabled       bool            `json:"healthKitEnabled"`
	DailyGoalSteps      int             `json:"dailyGoalSteps"`
	SoundEnabled        bool            `json:"soundEnabled"`
	HapticsEnabled      bool            `json:"hapticsEnabled"`
}

// DefaultProfile returns a fresh profile created at now.
func DefaultProfile(now time.Time) UserProfile {
	return UserProfile{
		Username:            DefaultUsername,
		HighestLevel:        1,
		CreatedAt:           now,
		PreferredDifficulty: Easy,
		DailyGoalSteps:      DefaultDailyGoalSteps,
		SoundEnabled:        true,
		HapticsEnabled:      true,
	}
}

// WinRate is TotalGamesWon/TotalGamesPlayed, or 0 before the first game.
func (p UserProfile) WinRate() float64 {
	if p.TotalGamesPlayed <= 0 {
		return 0
	}
	return float64(p.TotalGamesWon) / float64(p.TotalGamesPlayed)
}
