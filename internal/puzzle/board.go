package puzzle

import (
	"fmt"
	"math/rand/v2"
	"sync/atomic"

	"github.com/roach88/mindglyph/internal/model"
)

// Alphabet is the fixed symbol set boards are drawn from.
var Alphabet = []string{
	"🌟", "🔥", "💎", "🌙", "⚡️", "🌊", "🍃", "☀️", "🌈",
	"✨", "🎯", "🎨", "🎭", "🎪", "🎬", "🎸", "🎺", "🎹",
}

// GenerateBoard lays out columns*rows cells for a new puzzle.
//
// Pair i uses Alphabet[i mod len(Alphabet)]. When the cell count is odd one
// extra singleton is appended; that cell has no partner and can never be
// matched. The sequence is shuffled uniformly with rng and positions are
// assigned 0..n-1.
func GenerateBoard(columns, rows int, rng *rand.Rand, ids model.IDGenerator) []model.GlyphCell {
	total := columns * rows
	if total <= 0 {
		return nil
	}
	if ids == nil {
		ids = model.UUIDGenerator{}
	}

	pairs := total / 2
	symbols := make([]string, 0, total)
	for i := 0; i < pairs; i++ {
		sym := Alphabet[i%len(Alphabet)]
		symbols = append(symbols, sym, sym)
	}
	if total%2 != 0 {
		symbols = append(symbols, Alphabet[pairs%len(Alphabet)])
	}

	rng.Shuffle(len(symbols), func(i, j int) {
		symbols[i], symbols[j] = symbols[j], symbols[i]
	})

	cells := make([]model.GlyphCell, len(symbols))
	for i, sym := range symbols {
		cells[i] = model.GlyphCell{
			ID:       ids.NewID(),
			Symbol:   sym,
			Position: i,
		}
	}
	return cells
}

// newRand builds a deterministic generator from a single seed.
func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Dealer lays out the cells of a new board. seed is fresh for every deal.
type Dealer func(columns, rows int, seed uint64, ids model.IDGenerator) []model.GlyphCell

// ShuffledDealer is the standard dealer: GenerateBoard with a generator
// seeded from seed.
func ShuffledDealer(columns, rows int, seed uint64, ids model.IDGenerator) []model.GlyphCell {
	return GenerateBoard(columns, rows, newRand(seed), ids)
}

// ScriptedDealer deals the given symbol layouts in order, one per board,
// then falls back to ShuffledDealer. Cells get ids "c0", "c1", ... by
// position so scripts can address them. A layout is used as is, whatever
// the board shape.
func ScriptedDealer(boards [][]string) Dealer {
	var next atomic.Int64
	return func(columns, rows int, seed uint64, ids model.IDGenerator) []model.GlyphCell {
		i := int(next.Add(1) - 1)
		if i >= len(boards) {
			return ShuffledDealer(columns, rows, seed, ids)
		}
		cells := make([]model.GlyphCell, len(boards[i]))
		for pos, sym := range boards[i] {
			cells[pos] = model.GlyphCell{ID: fmt.Sprintf("c%d", pos), Symbol: sym, Position: pos}
		}
		return cells
	}
}
