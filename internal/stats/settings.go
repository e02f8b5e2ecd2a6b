package stats

import (
	"context"
	"fmt"

	"github.com/roach88/mindglyph/internal/model"
)

// UpdateUsername stores a normalised display name. A name that is empty
// after normalisation leaves the profile unchanged.
func (s *Service) UpdateUsername(ctx context.Context, name string) (model.UserProfile, error) {
	return s.updateProfile(ctx, "update username", func(p *model.UserProfile) error {
		if n, ok := NormalizeUsername(name); ok {
			p.Username = n
		}
		return nil
	})
}

// UpdatePreferredDifficulty stores the difficulty new games start at.
func (s *Service) UpdatePreferredDifficulty(ctx context.Context, d model.DifficultyLevel) (model.UserProfile, error) {
	if !d.Valid() {
		return model.UserProfile{}, &InputError{Code: ErrCodeInvalidDifficulty, Field: "difficulty", Message: fmt.Sprintf("unknown difficulty %d", int(d))}
	}
	return s.updateProfile(ctx, "update difficulty", func(p *model.UserProfile) error {
		p.PreferredDifficulty = d
		return nil
	})
}

// ToggleSound flips the sound flag and returns the new value.
func (s *Service) ToggleSound(ctx context.Context) (bool, error) {
	p, err := s.updateProfile(ctx, "toggle sound", func(p *model.UserProfile) error {
		p.SoundEnabled = !p.SoundEnabled
		return nil
	})
	return p.SoundEnabled, err
}

// ToggleHaptics flips the haptics flag and returns the new value.
func (s *Service) ToggleHaptics(ctx context.Context) (bool, error) {
	p, err := s.updateProfile(ctx, "toggle haptics", func(p *model.UserProfile) error {
		p.HapticsEnabled = !p.HapticsEnabled
		return nil
	})
	return p.HapticsEnabled, err
}

// SetDailyGoalSteps stores the daily step goal. The goal must be positive.
func (s *Service) SetDailyGoalSteps(ctx context.Context, steps int) (model.UserProfile, error) {
	if steps <= 0 {
		return model.UserProfile{}, &InputError{Code: ErrCodeInvalidGoal, Field: "dailyGoalSteps", Message: fmt.Sprintf("goal must be positive, got %d", steps)}
	}
	return s.updateProfile(ctx, "set step goal", func(p *model.UserProfile) error {
		p.DailyGoalSteps = steps
		return nil
	})
}

// SetHealthEnabled turns step tracking on or off.
func (s *Service) SetHealthEnabled(ctx context.Context, on bool) (model.UserProfile, error) {
	return s.updateProfile(ctx, "set health", func(p *model.UserProfile) error {
		p.HealthEnabled = on
		return nil
	})
}

// CompleteOnboarding stores the chosen name, if any, and sets the
// onboarding flag.
func (s *Service) CompleteOnboarding(ctx context.Context, username string) error {
	if _, err := s.UpdateUsername(ctx, username); err != nil {
		return fmt.Errorf("complete onboarding: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.SetOnboardingComplete(ctx, true); err != nil {
		return fmt.Errorf("complete onboarding: %w", err)
	}
	return nil
}

// OnboardingComplete reports whether onboarding has finished.
func (s *Service) OnboardingComplete(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.OnboardingComplete(ctx)
}

// RecordSteps stores a step-count reading and returns achievements it
// unlocked.
func (s *Service) RecordSteps(ctx context.Context, daily, weekly, monthly int) ([]model.Achievement, error) {
	if daily < 0 || weekly < 0 || monthly < 0 {
		return nil, &InputError{Code: ErrCodeInvalidSteps, Field: "steps", Message: "step counts must not be negative"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.store.LoadProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("record steps: %w", err)
	}
	st, err := s.store.LoadStatistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("record steps: %w", err)
	}
	s.refreshQuests(p, &st)
	unlocked := ApplySteps(p, &st, daily, weekly, monthly, s.now())
	if err := s.store.SaveStatistics(ctx, st); err != nil {
		return nil, fmt.Errorf("record steps: %w", err)
	}
	s.logger.Debug("steps recorded", "daily", daily, "streak", st.HealthStats.GoalStreakDays)
	s.logAchievements(unlocked)
	return unlocked, nil
}
