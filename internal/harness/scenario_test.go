package harness

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mindglyph/internal/model"
	"github.com/roach88/mindglyph/internal/puzzle"
)

const minimalScenario = `
name: minimal
description: "Start a board"
steps:
  - start: true
assertions:
  - type: final_state
    expect: { state: playing }
`

func TestLoadScenario_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yaml")
	content := `
name: test_scenario
description: "Test scenario for validation"
difficulty: medium
seed: 9
rules:
  match_delay: 100ms
  mismatch_delay: 2s
  tick_interval: 500ms
  pause_policy: cancel
boards:
  - [A, A]
steps:
  - start: true
  - tap: 1
    expect: { selected: [1] }
  - wait: 1s
assertions:
  - type: completions
    count: 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, model.Medium, scenario.DifficultyLevel())
	assert.Equal(t, uint64(9), scenario.Seed)
	assert.Equal(t, [][]string{{"A", "A"}}, scenario.Boards)
	require.Len(t, scenario.Steps, 3)
	assert.Equal(t, ActionStart, scenario.Steps[0].Action())
	assert.Equal(t, ActionTap, scenario.Steps[1].Action())
	assert.Equal(t, 1, *scenario.Steps[1].Tap)
	assert.Equal(t, ActionWait, scenario.Steps[2].Action())

	rules, err := scenario.PuzzleRules()
	require.NoError(t, err)
	assert.Equal(t, puzzle.Rules{
		MatchDelay:    100 * time.Millisecond,
		MismatchDelay: 2 * time.Second,
		TickInterval:  500 * time.Millisecond,
		PausePolicy:   puzzle.PauseCancel,
	}, rules)
}

func TestLoadScenario_Defaults(t *testing.T) {
	scenario, err := ParseScenario([]byte(minimalScenario))
	require.NoError(t, err)

	assert.Equal(t, model.Easy, scenario.DifficultyLevel())
	rules, err := scenario.PuzzleRules()
	require.NoError(t, err)
	assert.Equal(t, puzzle.DefaultRules(), rules)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	_, err := ParseScenario([]byte(minimalScenario + "assertion: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing name",
			yaml:    "description: d\nsteps: [{start: true}]\nassertions: [{type: completions}]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			yaml:    "name: n\nsteps: [{start: true}]\nassertions: [{type: completions}]\n",
			wantErr: "description is required",
		},
		{
			name:    "bad difficulty",
			yaml:    "name: n\ndescription: d\ndifficulty: brutal\nsteps: [{start: true}]\nassertions: [{type: completions}]\n",
			wantErr: "difficulty",
		},
		{
			name:    "bad pause policy",
			yaml:    "name: n\ndescription: d\nrules: {pause_policy: rewind}\nsteps: [{start: true}]\nassertions: [{type: completions}]\n",
			wantErr: "rules.pause_policy",
		},
		{
			name:    "zero delay",
			yaml:    "name: n\ndescription: d\nrules: {match_delay: 0s}\nsteps: [{start: true}]\nassertions: [{type: completions}]\n",
			wantErr: "rules.match_delay",
		},
		{
			name:    "empty board",
			yaml:    "name: n\ndescription: d\nboards: [[]]\nsteps: [{start: true}]\nassertions: [{type: completions}]\n",
			wantErr: "boards[0]",
		},
		{
			name:    "no steps",
			yaml:    "name: n\ndescription: d\nassertions: [{type: completions}]\n",
			wantErr: "steps list is required",
		},
		{
			name:    "no assertions",
			yaml:    "name: n\ndescription: d\nsteps: [{start: true}]\n",
			wantErr: "assertions list is required",
		},
		{
			name:    "step without action",
			yaml:    "name: n\ndescription: d\nsteps: [{expect: {moves: 0}}]\nassertions: [{type: completions}]\n",
			wantErr: "steps[0]: an action is required",
		},
		{
			name:    "step with two actions",
			yaml:    "name: n\ndescription: d\nsteps: [{start: true, pause: true}]\nassertions: [{type: completions}]\n",
			wantErr: "exactly one action",
		},
		{
			name:    "negative tap",
			yaml:    "name: n\ndescription: d\nsteps: [{tap: -1}]\nassertions: [{type: completions}]\n",
			wantErr: "tap position",
		},
		{
			name:    "bad wait",
			yaml:    "name: n\ndescription: d\nsteps: [{wait: soon}]\nassertions: [{type: completions}]\n",
			wantErr: "steps[0]: wait",
		},
		{
			name:    "unknown expect field",
			yaml:    "name: n\ndescription: d\nsteps: [{start: true, expect: {lives: 3}}]\nassertions: [{type: completions}]\n",
			wantErr: `unknown field "lives"`,
		},
		{
			name:    "unknown assertion type",
			yaml:    "name: n\ndescription: d\nsteps: [{start: true}]\nassertions: [{type: vibes}]\n",
			wantErr: `unknown assertion type "vibes"`,
		},
		{
			name:    "final_state without expect",
			yaml:    "name: n\ndescription: d\nsteps: [{start: true}]\nassertions: [{type: final_state}]\n",
			wantErr: "final_state requires 'expect'",
		},
		{
			name:    "trace_count without action",
			yaml:    "name: n\ndescription: d\nsteps: [{start: true}]\nassertions: [{type: trace_count, count: 1}]\n",
			wantErr: "trace_count requires 'action'",
		},
		{
			name:    "trace_order with one action",
			yaml:    "name: n\ndescription: d\nsteps: [{start: true}]\nassertions: [{type: trace_order, actions: [start]}]\n",
			wantErr: "at least 2 actions",
		},
		{
			name:    "unknown profile field",
			yaml:    "name: n\ndescription: d\nsteps: [{start: true}]\nassertions: [{type: profile, expect: {coins: 1}}]\n",
			wantErr: `unknown profile field "coins"`,
		},
		{
			name:    "achievements without keys",
			yaml:    "name: n\ndescription: d\nsteps: [{start: true}]\nassertions: [{type: achievements}]\n",
			wantErr: "achievements requires 'keys'",
		},
		{
			name:    "quest without type",
			yaml:    "name: n\ndescription: d\nsteps: [{start: true}]\nassertions: [{type: quest, expect: {current: 1}}]\n",
			wantErr: "quest requires 'quest'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario_Testdata(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			_, err := LoadScenario(path)
			require.NoError(t, err)
		})
	}
}
