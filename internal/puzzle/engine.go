package puzzle

import (
	"time"

	"github.com/roach88/mindglyph/internal/model"
)

// Ignore reasons reported through the Ignored effect.
const (
	ReasonNotPlaying      = "not playing"
	ReasonNotPaused       = "not paused"
	ReasonUnknownCell     = "unknown cell"
	ReasonAlreadyMatched  = "cell already matched"
	ReasonAlreadySelected = "cell already selected"
	ReasonSelectionFull   = "two cells already selected"
	ReasonStaleResolution = "stale resolution"
	ReasonLevelInProgress = "level in progress"
)

// Engine applies game rules. It is stateless apart from its configuration
// and safe to share.
type Engine struct {
	rules  Rules
	ids    model.IDGenerator
	dealer Dealer
}

// NewEngine creates an engine. A nil ids falls back to UUIDs; zero rule
// durations fall back to DefaultRules.
func NewEngine(rules Rules, ids model.IDGenerator) *Engine {
	def := DefaultRules()
	if rules.MatchDelay <= 0 {
		rules.MatchDelay = def.MatchDelay
	}
	if rules.MismatchDelay <= 0 {
		rules.MismatchDelay = def.MismatchDelay
	}
	if rules.TickInterval <= 0 {
		rules.TickInterval = def.TickInterval
	}
	if rules.PausePolicy == "" {
		rules.PausePolicy = def.PausePolicy
	}
	if ids == nil {
		ids = model.UUIDGenerator{}
	}
	return &Engine{rules: rules, ids: ids, dealer: ShuffledDealer}
}

// WithDealer returns a copy of e that lays out boards with d. A nil d
// restores ShuffledDealer.
func (e *Engine) WithDealer(d Dealer) *Engine {
	if d == nil {
		d = ShuffledDealer
	}
	c := *e
	c.dealer = d
	return &c
}

// Rules returns the engine's effective rules.
func (e *Engine) Rules() Rules { return e.rules }

// NewGame returns a game in the ready state at level 1.
func (e *Engine) NewGame(puzzleType model.PuzzleType, difficulty model.DifficultyLevel) Game {
	if !difficulty.Valid() {
		difficulty = model.Easy
	}
	if puzzleType == "" {
		puzzleType = model.PuzzleGlyph
	}
	return Game{
		State:      StateReady,
		Level:      1,
		Difficulty: difficulty,
		PuzzleType: puzzleType,
		Session:    model.NewGameSession(e.ids, puzzleType, difficulty),
	}
}

// Reduce applies ev to g and returns the new game and the effects the
// caller must carry out. g is not modified.
func (e *Engine) Reduce(g Game, ev Event) (Game, []Effect) {
	g = g.Clone()
	switch ev := ev.(type) {
	case StartNewGame:
		return e.startNewGame(g, ev.Seed)
	case NextLevel:
		return e.nextLevel(g, ev.Seed)
	case Pause:
		return e.pause(g, ev.At)
	case Resume:
		return e.resume(g)
	case Reset:
		return e.reset(g)
	case Tap:
		return e.tap(g, ev.CellID)
	case Tick:
		return e.tick(g)
	case Resolve:
		return e.resolve(g, ev.ID, ev.At)
	}
	return g, nil
}

func (e *Engine) startNewGame(g Game, seed uint64) (Game, []Effect) {
	var effects []Effect
	effects = cancelPending(&g, effects)

	g.Score = 0
	g.Moves = 0
	g.Elapsed = 0
	effects = e.deal(&g, seed, effects)
	return g, effects
}

func (e *Engine) nextLevel(g Game, seed uint64) (Game, []Effect) {
	if g.State != StateCompleted && g.State != StateReady {
		return g, []Effect{Ignored{Reason: ReasonLevelInProgress}}
	}
	var effects []Effect
	effects = cancelPending(&g, effects)

	g.Level++
	if g.Level%3 == 0 {
		g.Difficulty = g.Difficulty.Harder()
	}
	g.Moves = 0
	g.Elapsed = 0
	effects = e.deal(&g, seed, effects)
	return g, effects
}

// deal starts a fresh session at the game's level and difficulty and
// generates its board.
func (e *Engine) deal(g *Game, seed uint64, effects []Effect) []Effect {
	g.Session = model.NewGameSession(e.ids, g.PuzzleType, g.Difficulty)
	g.Session.Level = g.Level
	g.Cells = e.dealer(g.Difficulty.Columns(), g.Difficulty.Rows(), seed, e.ids)
	g.Selection = nil
	g.BoardScore = 0
	g.Completion = nil
	g.State = StatePlaying
	return append(effects, StartTicker{})
}

func (e *Engine) pause(g Game, at time.Time) (Game, []Effect) {
	if g.State != StatePlaying {
		return g, []Effect{Ignored{Reason: ReasonNotPlaying}}
	}

	var effects []Effect
	if p := g.Pending; p != nil {
		effects = append(effects, CancelResolution{ID: p.ID})
		switch e.rules.PausePolicy {
		case PauseCancel:
			g.Pending = nil
			for _, id := range []string{p.First, p.Second} {
				if i := g.cellIndex(id); i >= 0 && !g.Cells[i].Matched {
					g.Cells[i].Revealed = false
				}
			}
			g.Selection = nil
		default:
			effects = append(effects, e.apply(&g, at)...)
		}
	}

	// Fast-forwarding may have cleared the board.
	if g.State == StatePlaying {
		g.State = StatePaused
		effects = append(effects, StopTicker{})
	}
	return g, effects
}

func (e *Engine) resume(g Game) (Game, []Effect) {
	if g.State != StatePaused {
		return g, []Effect{Ignored{Reason: ReasonNotPaused}}
	}
	g.State = StatePlaying
	return g, []Effect{StartTicker{}}
}

func (e *Engine) reset(g Game) (Game, []Effect) {
	var effects []Effect
	effects = cancelPending(&g, effects)

	g.State = StateReady
	g.Session = model.NewGameSession(e.ids, g.PuzzleType, g.Difficulty)
	g.Cells = nil
	g.Selection = nil
	g.Score = 0
	g.BoardScore = 0
	g.Level = 1
	g.Moves = 0
	g.Elapsed = 0
	g.Completion = nil
	return g, append(effects, StopTicker{})
}

func (e *Engine) tap(g Game, id string) (Game, []Effect) {
	if g.State != StatePlaying {
		return g, []Effect{Ignored{Reason: ReasonNotPlaying}}
	}
	i := g.cellIndex(id)
	switch {
	case i < 0:
		return g, []Effect{Ignored{Reason: ReasonUnknownCell}}
	case g.Cells[i].Matched:
		return g, []Effect{Ignored{Reason: ReasonAlreadyMatched}}
	case len(g.Selection) >= 2:
		return g, []Effect{Ignored{Reason: ReasonSelectionFull}}
	case g.selected(id):
		return g, []Effect{Ignored{Reason: ReasonAlreadySelected}}
	}

	g.Cells[i].Revealed = true
	g.Selection = append(g.Selection, id)
	if len(g.Selection) < 2 {
		return g, nil
	}

	g.Moves++
	first, _ := g.Cell(g.Selection[0])
	second := g.Cells[i]
	g.LastResolutionID++
	res := Resolution{
		ID:     g.LastResolutionID,
		First:  first.ID,
		Second: second.ID,
		Match:  first.Symbol == second.Symbol,
		Delay:  e.rules.MismatchDelay,
	}
	if res.Match {
		res.Delay = e.rules.MatchDelay
	}
	g.Pending = &res
	return g, []Effect{ScheduleResolution{ID: res.ID, Delay: res.Delay}}
}

func (e *Engine) tick(g Game) (Game, []Effect) {
	if g.State != StatePlaying {
		return g, []Effect{Ignored{Reason: ReasonNotPlaying}}
	}
	g.Elapsed += e.rules.TickInterval
	return g, nil
}

func (e *Engine) resolve(g Game, id uint64, at time.Time) (Game, []Effect) {
	if g.Pending == nil || g.Pending.ID != id {
		return g, []Effect{Ignored{Reason: ReasonStaleResolution}}
	}
	return g, e.apply(&g, at)
}

// apply settles the pending resolution.
func (e *Engine) apply(g *Game, at time.Time) []Effect {
	p := g.Pending
	g.Pending = nil
	g.Selection = nil

	if !p.Match {
		for _, id := range []string{p.First, p.Second} {
			if i := g.cellIndex(id); i >= 0 {
				g.Cells[i].Revealed = false
			}
		}
		return nil
	}

	for _, id := range []string{p.First, p.Second} {
		if i := g.cellIndex(id); i >= 0 {
			g.Cells[i].Matched = true
		}
	}
	points := MatchScore(g.Difficulty, g.Elapsed, g.Moves)
	g.Score += points
	g.BoardScore += points
	return e.checkForCompletion(g, at)
}

// checkForCompletion moves a fully matched board to completed. Because it
// only fires from the playing state it runs at most once per board.
func (e *Engine) checkForCompletion(g *Game, at time.Time) []Effect {
	if g.State != StatePlaying || !g.AllMatched() {
		return nil
	}
	g.State = StateCompleted
	g.Session.Score = g.BoardScore
	g.Session.MovesCount = g.Moves
	g.Session.TimeElapsed = g.Elapsed.Seconds()
	g.Session.Level = g.Level
	g.Session.Difficulty = g.Difficulty
	completedAt := at
	g.Session.CompletedAt = &completedAt

	summary := Summary{
		Level:      g.Level,
		Score:      g.Score,
		BoardScore: g.BoardScore,
		Moves:      g.Moves,
		Elapsed:    g.Elapsed,
		Session:    g.Session,
	}
	g.Completion = &summary
	return []Effect{StopTicker{}, Completed{Summary: summary}}
}

func cancelPending(g *Game, effects []Effect) []Effect {
	if g.Pending == nil {
		return effects
	}
	effects = append(effects, CancelResolution{ID: g.Pending.ID})
	g.Pending = nil
	return effects
}
