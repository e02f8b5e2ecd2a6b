package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/mindglyph/internal/model"
)

// Get returns the value stored under key. ok is false when no row exists.
func (s *Store) Get(ctx context.Context, key string) (value []byte, ok bool, err error) {
	err = s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// LoadProfile returns the stored profile, or a default profile when none is
// stored or the row cannot be decoded.
func (s *Store) LoadProfile(ctx context.Context) (model.UserProfile, error) {
	data, ok, err := s.Get(ctx, KeyProfile)
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("load profile: %w", err)
	}
	if !ok {
		return model.DefaultProfile(s.now()), nil
	}
	p, err := unmarshalProfile(data, s.now())
	if err != nil {
		s.logger.Warn("stored profile unreadable, using defaults", "error", err)
		return model.DefaultProfile(s.now()), nil
	}
	return p, nil
}

// LoadStatistics returns the stored statistics, or defaults when none are
// stored or the row cannot be decoded. Defaults for a missing row are saved
// so achievement ids stay the same across loads.
func (s *Store) LoadStatistics(ctx context.Context) (model.UserStatistics, error) {
	data, ok, err := s.Get(ctx, KeyStatistics)
	if err != nil {
		return model.UserStatistics{}, fmt.Errorf("load statistics: %w", err)
	}
	if !ok {
		st := model.DefaultStatistics(s.ids, s.now())
		if err := s.SaveStatistics(ctx, st); err != nil {
			return model.UserStatistics{}, fmt.Errorf("load statistics: %w", err)
		}
		return st, nil
	}
	st, err := unmarshalStatistics(data, s.ids, s.now())
	if err != nil {
		s.logger.Warn("stored statistics unreadable, using defaults", "error", err)
		return model.DefaultStatistics(s.ids, s.now()), nil
	}
	return st, nil
}

// OnboardingComplete reports whether the onboarding flag is set. An
// unreadable flag counts as not set.
func (s *Store) OnboardingComplete(ctx context.Context) (bool, error) {
	data, ok, err := s.Get(ctx, KeyOnboarding)
	if err != nil {
		return false, fmt.Errorf("load onboarding: %w", err)
	}
	if !ok {
		return false, nil
	}
	var done bool
	if err := json.Unmarshal(data, &done); err != nil {
		s.logger.Warn("stored onboarding flag unreadable", "error", err)
		return false, nil
	}
	return done, nil
}
