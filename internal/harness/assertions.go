package harness

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/mindglyph/internal/model"
	"github.com/roach88/mindglyph/internal/stats"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for i, event := range e.Trace {
			switch event.Type {
			case EventStep:
				fmt.Fprintf(&buf, "  [%d] %s %v -> %s score=%d moves=%d\n",
					i+1, event.Action, event.Args, event.View.State, event.View.Score, event.View.Moves)
			case EventCompletion:
				fmt.Fprintf(&buf, "  [%d] completed level %d\n", i+1, event.Completion.Level)
			}
		}
	}

	return buf.String()
}

// AssertionContext provides access to recorded statistics.
type AssertionContext struct {
	Service *stats.Service
	Ctx     context.Context
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertFinalState:
			err = assertFinalState(result, assertion)
		case AssertCompletions:
			err = assertCompletions(result.Trace, assertion)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, assertion)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, assertion)
		case AssertProfile, AssertAchievements, AssertQuest:
			if actx == nil || actx.Service == nil {
				err = fmt.Errorf("assertion[%d]: %s requires a statistics service", i, assertion.Type)
				break
			}
			switch assertion.Type {
			case AssertProfile:
				err = assertProfile(actx.Ctx, actx.Service, assertion)
			case AssertAchievements:
				err = assertAchievements(actx.Ctx, actx.Service, assertion)
			default:
				err = assertQuest(actx.Ctx, actx.Service, assertion)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}

func assertFinalState(result *Result, assertion Assertion) error {
	mismatches := diffFields(result.Final.fields(), assertion.Expect)
	if len(mismatches) == 0 {
		return nil
	}
	return &AssertionError{
		Type:     AssertFinalState,
		Expected: formatFields(assertion.Expect),
		Actual:   strings.Join(mismatches, "; "),
		Trace:    result.Trace,
	}
}

// assertCompletions checks how many boards were cleared.
func assertCompletions(trace []TraceEvent, assertion Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Type == EventCompletion {
			count++
		}
	}
	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertCompletions,
			Expected: fmt.Sprintf("%d completions", assertion.Count),
			Actual:   fmt.Sprintf("%d completions", count),
			Trace:    trace,
		}
	}
	return nil
}

// assertTraceCount checks the action appears exactly the specified number of
// times.
func assertTraceCount(trace []TraceEvent, assertion Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Type == EventStep && event.Action == assertion.Action {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", assertion.Count, assertion.Action),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}
	return nil
}

// assertTraceOrder checks that actions appear in the specified order.
// Actions don't need to be consecutive.
func assertTraceOrder(trace []TraceEvent, assertion Assertion) error {
	next := 0
	for _, event := range trace {
		if next < len(assertion.Actions) && event.Type == EventStep && event.Action == assertion.Actions[next] {
			next++
		}
	}
	if next == len(assertion.Actions) {
		return nil
	}
	return &AssertionError{
		Type:     AssertTraceOrder,
		Expected: fmt.Sprintf("actions in order: %v", assertion.Actions),
		Actual:   fmt.Sprintf("no %s after %v", assertion.Actions[next], assertion.Actions[:next]),
		Trace:    trace,
	}
}

func assertProfile(ctx context.Context, svc *stats.Service, assertion Assertion) error {
	p, err := svc.LoadProfile(ctx)
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	if mismatches := diffFields(profileValues(p), assertion.Expect); len(mismatches) > 0 {
		return &AssertionError{
			Type:     AssertProfile,
			Expected: formatFields(assertion.Expect),
			Actual:   strings.Join(mismatches, "; "),
		}
	}
	return nil
}

func assertAchievements(ctx context.Context, svc *stats.Service, assertion Assertion) error {
	unlocked, err := svc.UnlockedAchievements(ctx)
	if err != nil {
		return fmt.Errorf("achievements: %w", err)
	}
	have := make(map[string]bool, len(unlocked))
	keys := make([]string, 0, len(unlocked))
	for _, a := range unlocked {
		have[a.Key] = true
		keys = append(keys, a.Key)
	}
	for _, key := range assertion.Keys {
		if !have[key] {
			return &AssertionError{
				Type:     AssertAchievements,
				Expected: fmt.Sprintf("unlocked %v", assertion.Keys),
				Actual:   fmt.Sprintf("unlocked %v", keys),
			}
		}
	}
	return nil
}

func assertQuest(ctx context.Context, svc *stats.Service, assertion Assertion) error {
	st, err := svc.LoadStatistics(ctx)
	if err != nil {
		return fmt.Errorf("quest: %w", err)
	}
	for _, q := range st.DailyQuests {
		if q.QuestType != model.QuestType(assertion.Quest) {
			continue
		}
		if mismatches := diffFields(questValues(q), assertion.Expect); len(mismatches) > 0 {
			return &AssertionError{
				Type:     AssertQuest,
				Expected: fmt.Sprintf("%s %s", assertion.Quest, formatFields(assertion.Expect)),
				Actual:   strings.Join(mismatches, "; "),
			}
		}
		return nil
	}
	return &AssertionError{
		Type:     AssertQuest,
		Expected: fmt.Sprintf("quest %s", assertion.Quest),
		Actual:   "no such quest today",
	}
}

// diffFields compares expected against actual (subset semantics) and
// returns one message per mismatching key, in key order.
func diffFields(actual, expected map[string]interface{}) []string {
	var mismatches []string
	for _, key := range sortedKeys(expected) {
		got, ok := actual[key]
		if !ok {
			mismatches = append(mismatches, fmt.Sprintf("%s: no such field", key))
			continue
		}
		if !valuesEqual(got, expected[key]) {
			mismatches = append(mismatches, fmt.Sprintf("%s: expected %v, got %v", key, expected[key], got))
		}
	}
	return mismatches
}

// valuesEqual compares by printed form, so YAML's []interface{} and int
// decode results match the view's typed values.
func valuesEqual(actual, expected interface{}) bool {
	return fmt.Sprint(actual) == fmt.Sprint(expected)
}

func formatFields(m map[string]interface{}) string {
	parts := make([]string, 0, len(m))
	for _, key := range sortedKeys(m) {
		parts = append(parts, fmt.Sprintf("%s=%v", key, m[key]))
	}
	return strings.Join(parts, ", ")
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
