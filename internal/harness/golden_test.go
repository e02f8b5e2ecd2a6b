package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// First run with -update to create golden files:
//
//	go test ./internal/harness -run TestRunWithGolden -update
func TestRunWithGolden_EasyPerfectBoard(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/easy_perfect_board.yaml")
	require.NoError(t, err)

	result, err := RunWithGolden(t, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRunWithGolden_MismatchPauseCancel(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/mismatch_pause_cancel.yaml")
	require.NoError(t, err)

	result, err := RunWithGolden(t, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRunWithGolden_Deterministic(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/mismatch_pause_cancel.yaml")
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	a, err := MarshalTrace(scenario.Name, first.Trace)
	require.NoError(t, err)
	b, err := MarshalTrace(scenario.Name, second.Trace)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestMarshalTrace_Format(t *testing.T) {
	trace := []TraceEvent{
		{Type: EventStep, Action: ActionMatch, Args: map[string]interface{}{"symbol": "<A>", "cells": []int{0, 1}}, Seq: 2,
			View: &GameView{State: "playing", Level: 1, Difficulty: "easy", Elapsed: "0s", Selected: []int{0, 1}}},
		{Type: EventCompletion, Seq: 3, Completion: &CompletionView{Level: 1, Score: 160, BoardScore: 160, Moves: 1, Elapsed: "0s"}},
	}

	data, err := MarshalTrace("format", trace)
	require.NoError(t, err)

	want := `{"scenario_name":"format","events":2}
{"type":"step","action":"match","args":{"cells":[0,1],"symbol":"<A>"},"seq":2,"view":{"state":"playing","level":1,"difficulty":"easy","score":0,"board_score":0,"moves":0,"elapsed":"0s","matched":0,"selected":[0,1]}}
{"type":"completion","seq":3,"completion":{"level":1,"score":160,"board_score":160,"moves":1,"elapsed":"0s"}}
`
	assert.Equal(t, want, string(data))
}
