package store

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mindglyph/internal/model"
)

func TestGet_Missing(t *testing.T) {
	s := createTestStore(t)
	v, ok, err := s.Get(t.Context(), "nothing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestGet_ReturnsStoredValue(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()
	for _, k := range []string{KeyStatistics, KeyOnboarding, KeyProfile} {
		require.NoError(t, s.Put(ctx, k, []byte(`"`+k+`"`)))
	}

	for _, k := range []string{KeyStatistics, KeyOnboarding, KeyProfile} {
		v, ok, err := s.Get(ctx, k)
		require.NoError(t, err)
		require.True(t, ok, k)
		assert.Equal(t, `"`+k+`"`, string(v))
	}
}

func TestLoadProfile_MissingReturnsDefault(t *testing.T) {
	s := createTestStore(t)
	p, err := s.LoadProfile(t.Context())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultProfile(testNow), p)
}

func TestLoadProfile_CorruptRowReturnsDefault(t *testing.T) {
	var logs bytes.Buffer
	s := createTestStore(t, WithLogger(captureLogs(&logs)))
	ctx := t.Context()
	require.NoError(t, s.Put(ctx, KeyProfile, []byte("{not json")))

	p, err := s.LoadProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultProfile(testNow), p)
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "stored profile unreadable")
}

func TestLoadProfile_PartialRecordKeepsDefaults(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()
	require.NoError(t, s.Put(ctx, KeyProfile, []byte(`{"username":"Kim","totalScore":50}`)))

	p, err := s.LoadProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Kim", p.Username)
	assert.Equal(t, 50, p.TotalScore)
	assert.Equal(t, model.DefaultDailyGoalSteps, p.DailyGoalSteps)
	assert.True(t, p.SoundEnabled)
	assert.Equal(t, 1, p.HighestLevel)
	assert.Equal(t, model.Easy, p.PreferredDifficulty)
}

func TestLoadStatistics_MissingReturnsDefault(t *testing.T) {
	s := createTestStore(t)
	st, err := s.LoadStatistics(t.Context())
	require.NoError(t, err)

	assert.Empty(t, st.GameSessions)
	assert.Empty(t, st.DailyQuests)
	assert.Len(t, st.Achievements, 6)
	assert.Equal(t, 0.5, st.HealthStats.HealthBarLevel)
	for _, a := range st.Achievements {
		assert.False(t, a.IsUnlocked)
	}
}

func TestLoadStatistics_MissingDefaultsAreStable(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()

	first, err := s.LoadStatistics(ctx)
	require.NoError(t, err)
	_, ok, err := s.Get(ctx, KeyStatistics)
	require.NoError(t, err)
	assert.True(t, ok, "defaults are saved on first load")

	second, err := s.LoadStatistics(ctx)
	require.NoError(t, err)
	require.Len(t, second.Achievements, len(first.Achievements))
	for i := range first.Achievements {
		assert.Equal(t, first.Achievements[i].ID, second.Achievements[i].ID)
	}
}

func TestLoadStatistics_CorruptRowReturnsDefault(t *testing.T) {
	var logs bytes.Buffer
	s := createTestStore(t, WithLogger(captureLogs(&logs)))
	ctx := t.Context()
	require.NoError(t, s.Put(ctx, KeyStatistics, []byte(`{"gameSessions": 7}`)))

	st, err := s.LoadStatistics(ctx)
	require.NoError(t, err)
	assert.Empty(t, st.GameSessions)
	assert.Len(t, st.Achievements, 6)
	assert.Contains(t, logs.String(), "stored statistics unreadable")
}

func TestLoadStatistics_LegacyRecordGetsCatalog(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()
	legacy := `{"gameSessions":[],"achievements":[{"id":"old","title":"Novice","isUnlocked":true,"points":50}]}`
	require.NoError(t, s.Put(ctx, KeyStatistics, []byte(legacy)))

	st, err := s.LoadStatistics(ctx)
	require.NoError(t, err)

	assert.Len(t, st.Achievements, 6)
	novice := st.Achievement(model.AchievementNovice)
	require.NotNil(t, novice)
	assert.Equal(t, "old", novice.ID)
	assert.True(t, novice.IsUnlocked)
	assert.NotNil(t, st.DailyQuests)
}

func TestOnboardingComplete_CorruptFlag(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()
	require.NoError(t, s.Put(ctx, KeyOnboarding, []byte("maybe")))

	done, err := s.OnboardingComplete(ctx)
	require.NoError(t, err)
	assert.False(t, done)
}
