package stats

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/roach88/mindglyph/internal/model"
	"github.com/roach88/mindglyph/internal/store"
)

var testNow = time.Date(2026, 5, 20, 15, 4, 5, 0, time.UTC)

// fakeNow is an adjustable time source.
type fakeNow struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeNow) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeNow) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = t
}

// createTestService returns a Service over a fresh SQLite store sharing one
// adjustable clock.
func createTestService(t *testing.T) (*Service, *store.Store, *fakeNow) {
	t.Helper()
	clock := &fakeNow{t: testNow}
	ids := model.NewSequenceGenerator("id")
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"),
		store.WithClock(clock.Now),
		store.WithIDs(ids))
	if err != nil {
		t.Fatalf("store.Open() failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewService(st, WithClock(clock.Now), WithIDs(ids)), st, clock
}

func newStats() model.UserStatistics {
	return model.DefaultStatistics(model.NewSequenceGenerator("a"), testNow)
}

func wonSession(d model.DifficultyLevel, score, moves int, secs float64) model.GameSession {
	done := testNow
	return model.GameSession{
		ID: "s", Score: score, Level: 1, MovesCount: moves, TimeElapsed: secs,
		PuzzleType: model.PuzzleGlyph, Difficulty: d, CompletedAt: &done,
	}
}

func questOf(t *testing.T, st model.UserStatistics, qt model.QuestType) model.DailyQuest {
	t.Helper()
	for _, q := range st.DailyQuests {
		if q.QuestType == qt {
			return q
		}
	}
	t.Fatalf("no %s quest", qt)
	return model.DailyQuest{}
}
