package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/mindglyph/internal/model"
	"github.com/roach88/mindglyph/internal/puzzle"
	"github.com/roach88/mindglyph/internal/stats"
	"github.com/roach88/mindglyph/internal/store"
	"github.com/roach88/mindglyph/internal/testutil"
)

// Epoch is the wall-clock time every run starts at.
var Epoch = time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)

// Harness drives one scenario against a live session.
type Harness struct {
	ctx     context.Context
	session *puzzle.Session
	clock   *testutil.ManualClock
	service *stats.Service

	// completions raised by the step being executed
	completions []TraceEvent
	recordErr   error
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory database, a manual clock
// starting at Epoch and sequential ids, so two runs produce identical traces.
// Cleared boards are recorded as won sessions in the player statistics.
//
// Execution flow:
// 1. Create fresh in-memory database and statistics service
// 2. Start a session with the scenario's rules and boards
// 3. Execute steps, checking per-step expectations
// 4. Evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	rules, err := scenario.PuzzleRules()
	if err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}

	clock := testutil.NewManualClock(Epoch)
	ids := model.NewSequenceGenerator("id")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests

	st, err := store.Open(":memory:",
		store.WithClock(clock.Now),
		store.WithIDs(ids),
		store.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		ctx:   context.Background(),
		clock: clock,
		service: stats.NewService(st,
			stats.WithClock(clock.Now),
			stats.WithIDs(ids),
			stats.WithLogger(logger)),
	}

	seed := scenario.Seed
	if seed == 0 {
		seed = 1
	}
	var dealer puzzle.Dealer
	if len(scenario.Boards) > 0 {
		dealer = puzzle.ScriptedDealer(scenario.Boards)
	}
	h.session = puzzle.NewSession(puzzle.Options{
		Difficulty: scenario.DifficultyLevel(),
		Rules:      rules,
		Scheduler:  clock,
		IDs:        ids,
		Seed:       seed,
		Dealer:     dealer,
		OnComplete: h.onComplete,
		Logger:     logger,
	})
	defer h.session.Close()

	result := NewResult()
	for i, step := range scenario.Steps {
		if err := h.executeStep(i, step, result); err != nil {
			return nil, fmt.Errorf("failed to execute steps[%d]: %w", i, err)
		}
	}
	result.Final = newGameView(h.session.Snapshot().Game)

	actx := &AssertionContext{
		Service: h.service,
		Ctx:     h.ctx,
	}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}

// onComplete runs outside the session lock, so reading a snapshot here is
// safe.
func (h *Harness) onComplete(sum puzzle.Summary) {
	h.completions = append(h.completions, TraceEvent{
		Type:       EventCompletion,
		Seq:        h.session.Snapshot().Seq,
		Completion: ptr(newCompletionView(sum)),
	})
	if _, err := h.service.RecordSession(h.ctx, sum.Session, true); err != nil && h.recordErr == nil {
		h.recordErr = err
	}
}

// executeStep performs one step, then traces the resulting view followed by
// any completions the step caused.
func (h *Harness) executeStep(index int, step Step, result *Result) error {
	action := step.Action()
	var args map[string]interface{}

	switch action {
	case ActionStart:
		h.session.StartNewGame()
	case ActionNextLevel:
		h.session.NextLevel()
	case ActionPause:
		h.session.PauseGame()
	case ActionResume:
		h.session.ResumeGame()
	case ActionReset:
		h.session.ResetGame()
	case ActionTap:
		pos := *step.Tap
		args = map[string]interface{}{"cell": pos}
		cell, ok := h.cellAt(pos)
		if !ok {
			result.AddError(fmt.Sprintf("steps[%d]: no cell at position %d", index, pos))
			break
		}
		h.session.CellTapped(cell.ID)
	case ActionMatch:
		args = map[string]interface{}{"symbol": step.Match}
		pair := h.unmatched(step.Match)
		if len(pair) < 2 {
			result.AddError(fmt.Sprintf("steps[%d]: fewer than two unmatched %q cells", index, step.Match))
			break
		}
		pair = pair[:2]
		args["cells"] = []int{pair[0].Position, pair[1].Position}
		h.session.CellTapped(pair[0].ID)
		h.session.CellTapped(pair[1].ID)
	case ActionWait:
		d, err := parsePositiveDuration(step.Wait)
		if err != nil {
			return fmt.Errorf("wait: %w", err)
		}
		args = map[string]interface{}{"duration": d.String()}
		h.clock.Advance(d)
	default:
		return fmt.Errorf("no action")
	}

	if h.recordErr != nil {
		return fmt.Errorf("record session: %w", h.recordErr)
	}

	snap := h.session.Snapshot()
	view := newGameView(snap.Game)
	result.AddStepTrace(action, args, snap.Seq, view)
	result.Trace = append(result.Trace, h.completions...)
	h.completions = nil

	if mismatches := diffFields(view.fields(), step.Expect); len(mismatches) > 0 {
		for _, m := range mismatches {
			result.AddError(fmt.Sprintf("steps[%d] (%s): %s", index, action, m))
		}
	}
	return nil
}

func (h *Harness) cellAt(pos int) (model.GlyphCell, bool) {
	for _, c := range h.session.Snapshot().Cells {
		if c.Position == pos {
			return c, true
		}
	}
	return model.GlyphCell{}, false
}

// unmatched returns the unmatched cells showing symbol, by position.
func (h *Harness) unmatched(symbol string) []model.GlyphCell {
	var cells []model.GlyphCell
	for _, c := range h.session.Snapshot().Cells {
		if c.Symbol == symbol && !c.Matched {
			cells = append(cells, c)
		}
	}
	return cells
}

func ptr[T any](v T) *T { return &v }
