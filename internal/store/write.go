package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/roach88/mindglyph/internal/model"
)

// Fixed row keys.
const (
	KeyProfile    = "userProfile"
	KeyStatistics = "userStatistics"
	KeyOnboarding = "hasCompletedOnboarding"
)

// Put stores value under key, replacing any existing row.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`,
		key,
		value,
		s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Delete removes the given keys. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return nil
}

// SaveProfile writes the full profile.
func (s *Store) SaveProfile(ctx context.Context, p model.UserProfile) error {
	data, err := marshalAggregate(p)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	if err := s.Put(ctx, KeyProfile, data); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// SaveStatistics writes the full statistics record.
func (s *Store) SaveStatistics(ctx context.Context, st model.UserStatistics) error {
	data, err := marshalAggregate(st)
	if err != nil {
		return fmt.Errorf("save statistics: %w", err)
	}
	if err := s.Put(ctx, KeyStatistics, data); err != nil {
		return fmt.Errorf("save statistics: %w", err)
	}
	return nil
}

// SetOnboardingComplete records whether onboarding has finished.
func (s *Store) SetOnboardingComplete(ctx context.Context, done bool) error {
	data, _ := json.Marshal(done)
	if err := s.Put(ctx, KeyOnboarding, data); err != nil {
		return fmt.Errorf("set onboarding: %w", err)
	}
	return nil
}

// ResetAllData deletes the profile and statistics so the next loads return
// defaults. The onboarding flag is kept.
func (s *Store) ResetAllData(ctx context.Context) error {
	if err := s.Delete(ctx, KeyProfile, KeyStatistics); err != nil {
		return fmt.Errorf("reset data: %w", err)
	}
	return nil
}
