package stats

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/roach88/mindglyph/internal/model"
)

// DefaultRecentLimit is the number of sessions RecentSessions returns when
// no limit is given.
const DefaultRecentLimit = 10

// Store is the persistence the Service needs. *store.Store satisfies it.
type Store interface {
	LoadProfile(ctx context.Context) (model.UserProfile, error)
	SaveProfile(ctx context.Context, p model.UserProfile) error
	LoadStatistics(ctx context.Context) (model.UserStatistics, error)
	SaveStatistics(ctx context.Context, st model.UserStatistics) error
	ResetAllData(ctx context.Context) error
	OnboardingComplete(ctx context.Context) (bool, error)
	SetOnboardingComplete(ctx context.Context, done bool) error
}

// Service applies meta-game changes to the stored aggregates. Every method
// loads the latest copy, mutates it and writes the full aggregate back.
//
// Thread-safety: methods are serialised by an internal mutex, so concurrent
// read-modify-write cycles from one process do not lose updates.
type Service struct {
	mu     sync.Mutex
	store  Store
	now    func() time.Time
	ids    model.IDGenerator
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the service's time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDs sets the generator for quest ids.
func WithIDs(ids model.IDGenerator) Option {
	return func(s *Service) { s.ids = ids }
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a Service over st.
func NewService(st Store, opts ...Option) *Service {
	s := &Service{
		store:  st,
		now:    time.Now,
		ids:    model.UUIDGenerator{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadProfile returns the stored profile.
func (s *Service) LoadProfile(ctx context.Context) (model.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.LoadProfile(ctx)
}

// SaveProfile overwrites the stored profile.
func (s *Service) SaveProfile(ctx context.Context, p model.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.SaveProfile(ctx, p)
}

// LoadStatistics returns the stored statistics.
func (s *Service) LoadStatistics(ctx context.Context) (model.UserStatistics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.LoadStatistics(ctx)
}

// SaveStatistics overwrites the stored statistics.
func (s *Service) SaveStatistics(ctx context.Context, st model.UserStatistics) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.SaveStatistics(ctx, st)
}

// UpdateDailyQuests rolls the quest list over to today and returns it. The
// step quest is included while health tracking is enabled.
func (s *Service) UpdateDailyQuests(ctx context.Context) ([]model.DailyQuest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.store.LoadProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("update daily quests: %w", err)
	}
	st, err := s.store.LoadStatistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("update daily quests: %w", err)
	}
	if s.refreshQuests(p, &st) {
		s.logger.Debug("daily quests refreshed", "count", len(st.DailyQuests))
	}
	// Saved unconditionally: the loaded copy may be a default or normalised
	// aggregate that has never been written.
	if err := s.store.SaveStatistics(ctx, st); err != nil {
		return nil, fmt.Errorf("update daily quests: %w", err)
	}
	return st.DailyQuests, nil
}

// UpdateQuestProgress adds value to today's quest of type qt.
func (s *Service) UpdateQuestProgress(ctx context.Context, qt model.QuestType, value int) error {
	return s.updateStatistics(ctx, "update quest progress", func(st *model.UserStatistics) {
		ApplyQuestProgress(st, qt, value)
	})
}

// AddGameSession appends a session to the history without touching the
// profile.
func (s *Service) AddGameSession(ctx context.Context, session model.GameSession) error {
	return s.updateStatistics(ctx, "add game session", func(st *model.UserStatistics) {
		st.GameSessions = append(st.GameSessions, session)
	})
}

// CheckAndUnlockAchievements evaluates the catalog against the stored
// profile and returns newly unlocked entries.
func (s *Service) CheckAndUnlockAchievements(ctx context.Context) ([]model.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.store.LoadProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("check achievements: %w", err)
	}
	st, err := s.store.LoadStatistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("check achievements: %w", err)
	}
	unlocked := UnlockAchievements(&st, p, s.now())
	if len(unlocked) == 0 {
		return nil, nil
	}
	if err := s.store.SaveStatistics(ctx, st); err != nil {
		return nil, fmt.Errorf("check achievements: %w", err)
	}
	s.logAchievements(unlocked)
	return unlocked, nil
}

// RecordSession folds a finished session into both aggregates and returns
// any achievements it unlocked. won is true when the board was cleared.
func (s *Service) RecordSession(ctx context.Context, session model.GameSession, won bool) ([]model.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.store.LoadProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("record session: %w", err)
	}
	st, err := s.store.LoadStatistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("record session: %w", err)
	}

	now := s.now()
	s.refreshQuests(p, &st)
	unlocked := ApplySession(&p, &st, session, won, now)

	if err := s.store.SaveProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("record session: %w", err)
	}
	if err := s.store.SaveStatistics(ctx, st); err != nil {
		return nil, fmt.Errorf("record session: %w", err)
	}

	s.logger.Info("session recorded",
		"session", session.ID,
		"score", session.Score,
		"level", session.Level,
		"won", won)
	s.logAchievements(unlocked)
	return unlocked, nil
}

// RecentSessions returns up to limit of the latest sessions, oldest first.
// A non-positive limit means DefaultRecentLimit.
func (s *Service) RecentSessions(ctx context.Context, limit int) ([]model.GameSession, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	st, err := s.LoadStatistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("recent sessions: %w", err)
	}
	return st.RecentSessions(limit), nil
}

// UnlockAchievement unlocks the entry with the given id or catalog key. It
// reports false if the entry was already unlocked.
func (s *Service) UnlockAchievement(ctx context.Context, idOrKey string) (bool, error) {
	var (
		found   bool
		changed bool
	)
	err := s.updateStatistics(ctx, "unlock achievement", func(st *model.UserStatistics) {
		a := findAchievement(st, idOrKey)
		if a == nil {
			return
		}
		found = true
		changed = a.Unlock(s.now())
	})
	if err != nil {
		return false, err
	}
	if !found {
		return false, &InputError{Code: ErrCodeUnknownAchievement, Field: "achievement", Message: fmt.Sprintf("no achievement %q", idOrKey)}
	}
	return changed, nil
}

// UnlockedAchievements returns the unlocked catalog entries.
func (s *Service) UnlockedAchievements(ctx context.Context) ([]model.Achievement, error) {
	st, err := s.LoadStatistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("unlocked achievements: %w", err)
	}
	return st.UnlockedAchievements(), nil
}

// ResetAllData deletes profile and statistics. The onboarding flag is kept.
func (s *Service) ResetAllData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.ResetAllData(ctx); err != nil {
		return err
	}
	s.logger.Info("player data reset")
	return nil
}

// DeleteAccount resets all data and clears the onboarding flag.
func (s *Service) DeleteAccount(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.ResetAllData(ctx); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if err := s.store.SetOnboardingComplete(ctx, false); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	s.logger.Info("account deleted")
	return nil
}

func (s *Service) updateStatistics(ctx context.Context, op string, fn func(*model.UserStatistics)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.store.LoadStatistics(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	fn(&st)
	if err := s.store.SaveStatistics(ctx, st); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Service) updateProfile(ctx context.Context, op string, fn func(*model.UserProfile) error) (model.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.store.LoadProfile(ctx)
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := fn(&p); err != nil {
		return model.UserProfile{}, err
	}
	if err := s.store.SaveProfile(ctx, p); err != nil {
		return model.UserProfile{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// refreshQuests rolls quests over and adds the step quest when enabled.
func (s *Service) refreshQuests(p model.UserProfile, st *model.UserStatistics) bool {
	now := s.now()
	changed := RefreshDailyQuests(st, now, s.ids)
	if p.HealthEnabled && EnsureHealthQuest(st, now, s.ids) {
		changed = true
	}
	return changed
}

func (s *Service) logAchievements(unlocked []model.Achievement) {
	for _, a := range unlocked {
		s.logger.Info("achievement unlocked", "key", a.Key, "title", a.Title, "points", a.Points)
	}
}
