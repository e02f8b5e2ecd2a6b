package harness

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mindglyph/internal/model"
	"github.com/roach88/mindglyph/internal/stats"
	"github.com/roach88/mindglyph/internal/store"
)

func sampleTrace() []TraceEvent {
	view := &GameView{State: "playing", Level: 1, Difficulty: "easy", Elapsed: "0s"}
	return []TraceEvent{
		{Type: EventStep, Action: ActionStart, Seq: 1, View: view},
		{Type: EventStep, Action: ActionTap, Args: map[string]interface{}{"cell": 0}, Seq: 2, View: view},
		{Type: EventStep, Action: ActionTap, Args: map[string]interface{}{"cell": 1}, Seq: 3, View: view},
		{Type: EventStep, Action: ActionWait, Args: map[string]interface{}{"duration": "500ms"}, Seq: 4, View: view},
		{Type: EventCompletion, Seq: 4, Completion: &CompletionView{Level: 1, Score: 160}},
	}
}

func TestAssertTraceCount(t *testing.T) {
	trace := sampleTrace()

	require.NoError(t, assertTraceCount(trace, Assertion{Type: AssertTraceCount, Action: ActionTap, Count: 2}))

	err := assertTraceCount(trace, Assertion{Type: AssertTraceCount, Action: ActionTap, Count: 3})
	require.Error(t, err)
	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "3 occurrences of tap", ae.Expected)
	assert.Equal(t, "2 occurrences", ae.Actual)
	assert.Contains(t, err.Error(), "Full trace:")
	assert.Contains(t, err.Error(), "completed level 1")
}

func TestAssertTraceOrder(t *testing.T) {
	trace := sampleTrace()

	require.NoError(t, assertTraceOrder(trace, Assertion{Actions: []string{ActionStart, ActionTap, ActionWait}}))
	require.NoError(t, assertTraceOrder(trace, Assertion{Actions: []string{ActionTap, ActionTap}}))

	err := assertTraceOrder(trace, Assertion{Actions: []string{ActionWait, ActionStart}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no start after [wait]")
}

func TestAssertCompletions(t *testing.T) {
	trace := sampleTrace()

	require.NoError(t, assertCompletions(trace, Assertion{Count: 1}))
	require.Error(t, assertCompletions(trace, Assertion{Count: 0}))
}

func TestAssertFinalState(t *testing.T) {
	result := NewResult()
	result.Final = GameView{State: "completed", Score: 420, Moves: 3, Elapsed: "20s", Selected: nil}

	require.NoError(t, assertFinalState(result, Assertion{Expect: map[string]interface{}{
		"state": "completed", "score": 420, "elapsed": "20s", "selected": []interface{}{},
	}}))

	err := assertFinalState(result, Assertion{Expect: map[string]interface{}{"score": 400, "moves": 4}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "moves: expected 4, got 3; score: expected 400, got 420")
}

func TestDiffFields(t *testing.T) {
	actual := map[string]interface{}{"a": 1, "b": "x", "c": []int{1, 2}}

	assert.Empty(t, diffFields(actual, nil))
	assert.Empty(t, diffFields(actual, map[string]interface{}{"c": []interface{}{1, 2}}))
	assert.Equal(t,
		[]string{"a: expected 2, got 1", "z: no such field"},
		diffFields(actual, map[string]interface{}{"z": 0, "a": 2}))
}

func TestEvaluateAssertions_StatisticsNeedService(t *testing.T) {
	errs := EvaluateAssertions(NewResult(), []Assertion{
		{Type: AssertProfile, Expect: map[string]interface{}{"games_played": 0}},
		{Type: "bogus"},
	}, nil)

	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "profile requires a statistics service")
	assert.Contains(t, errs[1], `unknown assertion type "bogus"`)
}

func TestStatisticsAssertions(t *testing.T) {
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	ids := model.NewSequenceGenerator("t")
	svc := stats.NewService(st, stats.WithClock(func() time.Time { return Epoch }), stats.WithIDs(ids))
	actx := &AssertionContext{Service: svc, Ctx: ctx}

	session := model.NewGameSession(ids, model.PuzzleGlyph, model.Easy)
	session.Score = 300
	session.Level = 1
	_, err = svc.RecordSession(ctx, session, true)
	require.NoError(t, err)

	errs := EvaluateAssertions(NewResult(), []Assertion{
		{Type: AssertProfile, Expect: map[string]interface{}{"games_played": 1, "games_won": 1, "total_score": 300, "username": "Player"}},
		{Type: AssertAchievements, Keys: []string{model.AchievementFirstSteps}},
		{Type: AssertQuest, Quest: string(model.QuestAchieveScore), Expect: map[string]interface{}{"current": 300, "completed": false}},
	}, actx)
	assert.Empty(t, errs)

	errs = EvaluateAssertions(NewResult(), []Assertion{
		{Type: AssertProfile, Expect: map[string]interface{}{"games_won": 2}},
		{Type: AssertAchievements, Keys: []string{model.AchievementMaster}},
		{Type: AssertQuest, Quest: string(model.QuestHealthSteps), Expect: map[string]interface{}{"current": 1}},
	}, actx)
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0], "games_won: expected 2, got 1")
	assert.Contains(t, errs[1], "unlocked [master]")
	assert.Contains(t, errs[2], "no such quest today")
}
