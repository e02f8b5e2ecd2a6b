package puzzle

import (
	"testing"
	"time"

	"github.com/roach88/mindglyph/internal/model"
)

var testTime = time.Date(2026, 1, 4, 12, 0, 0, 0, time.UTC)

// newTestEngine creates an engine with default rules and predictable ids.
func newTestEngine() *Engine {
	return NewEngine(DefaultRules(), model.NewSequenceGenerator("id"))
}

// startedGame returns a game that has just dealt a board.
func startedGame(t *testing.T, e *Engine, d model.DifficultyLevel) Game {
	t.Helper()
	g, _ := e.Reduce(e.NewGame(model.PuzzleGlyph, d), StartNewGame{Seed: 42})
	if g.State != StatePlaying {
		t.Fatalf("state after StartNewGame = %v, want playing", g.State)
	}
	return g
}

// pairsOf groups unmatched cell ids by symbol.
func pairsOf(g Game) map[string][]string {
	out := map[string][]string{}
	for _, c := range g.Cells {
		if !c.Matched {
			out[c.Symbol] = append(out[c.Symbol], c.ID)
		}
	}
	return out
}

// matchingPair returns two unmatched cells sharing a symbol.
func matchingPair(t *testing.T, g Game) (string, string) {
	t.Helper()
	for _, ids := range pairsOf(g) {
		if len(ids) >= 2 {
			return ids[0], ids[1]
		}
	}
	t.Fatal("no matching pair left on board")
	return "", ""
}

// mismatchedPair returns two unmatched cells with different symbols.
func mismatchedPair(t *testing.T, g Game) (string, string) {
	t.Helper()
	var first model.GlyphCell
	found := false
	for _, c := range g.Cells {
		if c.Matched {
			continue
		}
		if !found {
			first, found = c, true
			continue
		}
		if c.Symbol != first.Symbol {
			return first.ID, c.ID
		}
	}
	t.Fatal("no mismatched pair left on board")
	return "", ""
}

// reduceAll applies events in order and collects every effect.
func reduceAll(e *Engine, g Game, events ...Event) (Game, []Effect) {
	var all []Effect
	for _, ev := range events {
		var effects []Effect
		g, effects = e.Reduce(g, ev)
		all = append(all, effects...)
	}
	return g, all
}

// tapPair taps two cells and settles the resulting resolution.
func tapPair(e *Engine, g Game, a, b string) (Game, []Effect) {
	g, effects := reduceAll(e, g, Tap{CellID: a}, Tap{CellID: b})
	if g.Pending == nil {
		return g, effects
	}
	var more []Effect
	g, more = e.Reduce(g, Resolve{ID: g.Pending.ID, At: testTime})
	return g, append(effects, more...)
}

func countEffects[T Effect](effects []Effect) int {
	n := 0
	for _, ef := range effects {
		if _, ok := ef.(T); ok {
			n++
		}
	}
	return n
}
