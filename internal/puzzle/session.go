package puzzle

import (
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/roach88/mindglyph/internal/model"
)

// Snapshot is an immutable view of a Game, stamped with a sequence number.
type Snapshot struct {
	Seq int64
	Game
}

// Options configures a Session.
type Options struct {
	PuzzleType model.PuzzleType
	Difficulty model.DifficultyLevel
	Rules      Rules

	// Scheduler defaults to SystemScheduler.
	Scheduler Scheduler

	// IDs defaults to model.UUIDGenerator.
	IDs model.IDGenerator

	// Seed seeds board shuffles. Zero picks a random seed.
	Seed uint64

	// Dealer lays out boards. Defaults to ShuffledDealer.
	Dealer Dealer

	// OnComplete is called once per cleared board, outside the session lock.
	OnComplete func(Summary)

	Logger *slog.Logger
}

// Session runs one Game: it serialises events, carries out effects and
// publishes snapshots.
//
// Thread-safety: all methods are safe for concurrent use. Events are applied
// one at a time in arrival order.
type Session struct {
	mu     sync.Mutex
	engine *Engine
	game   Game
	sched  Scheduler
	rng    *rand.Rand
	clock  *Clock
	logger *slog.Logger

	onComplete func(Summary)

	tickEpoch   uint64
	stopTick    func() bool
	resolutions map[uint64]func() bool

	subs   []*Subscription
	closed bool
}

// NewSession creates a session in the ready state.
func NewSession(opts Options) *Session {
	sched := opts.Scheduler
	if sched == nil {
		sched = SystemScheduler()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	engine := NewEngine(opts.Rules, opts.IDs).WithDealer(opts.Dealer)
	return &Session{
		engine:      engine,
		game:        engine.NewGame(opts.PuzzleType, opts.Difficulty),
		sched:       sched,
		rng:         newRand(seed),
		clock:       NewClock(),
		logger:      logger,
		onComplete:  opts.OnComplete,
		resolutions: make(map[uint64]func() bool),
	}
}

// StartNewGame deals a new board and starts the clock.
func (s *Session) StartNewGame() {
	s.dispatchSeeded(func(seed uint64) Event { return StartNewGame{Seed: seed} })
}

// NextLevel advances to the next level after a completed board.
func (s *Session) NextLevel() {
	s.dispatchSeeded(func(seed uint64) Event { return NextLevel{Seed: seed} })
}

// PauseGame freezes the clock.
func (s *Session) PauseGame() { s.dispatch(Pause{At: s.sched.Now()}) }

// ResumeGame restarts the clock.
func (s *Session) ResumeGame() { s.dispatch(Resume{}) }

// ResetGame discards the board and returns to ready.
func (s *Session) ResetGame() { s.dispatch(Reset{}) }

// CellTapped selects a cell. Out-of-turn taps are ignored.
func (s *Session) CellTapped(cellID string) { s.dispatch(Tap{CellID: cellID}) }

// Settle applies the pending resolution now instead of waiting out its
// delay. A settled match may complete the board. Nothing happens when no
// resolution is pending.
func (s *Session) Settle() {
	at := s.sched.Now()
	s.mu.Lock()
	var completed []Summary
	if p := s.game.Pending; p != nil && !s.closed {
		if stop, ok := s.resolutions[p.ID]; ok {
			stop()
		}
		completed = s.applyLocked(Resolve{ID: p.ID, At: at})
	}
	s.mu.Unlock()
	s.notify(completed)
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Seq: s.clock.Current(), Game: s.game.Clone()}
}

// Rules returns the effective pacing rules.
func (s *Session) Rules() Rules { return s.engine.Rules() }

// Subscribe returns a queue that receives a snapshot after every event that
// was applied. The current state is queued immediately.
func (s *Session) Subscribe() *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := newSubscription(s.unsubscribe)
	if s.closed {
		sub.close()
		return sub
	}
	sub.push(Snapshot{Seq: s.clock.Current(), Game: s.game.Clone()})
	s.subs = append(s.subs, sub)
	return sub
}

// Close stops all timers and closes every subscription. Further events are
// ignored.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.stopTicker()
	for id, stop := range s.resolutions {
		stop()
		delete(s.resolutions, id)
	}
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
}

func (s *Session) unsubscribe(sub *Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, q := range s.subs {
		if q == sub {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

func (s *Session) dispatchSeeded(build func(seed uint64) Event) {
	s.mu.Lock()
	seed := s.rng.Uint64()
	s.mu.Unlock()
	s.dispatch(build(seed))
}

// dispatch applies one event and runs its effects. Completion callbacks run
// after the lock is released so they may call back into the session.
func (s *Session) dispatch(ev Event) {
	s.mu.Lock()
	completed := s.applyLocked(ev)
	s.mu.Unlock()
	s.notify(completed)
}

func (s *Session) notify(completed []Summary) {
	if s.onComplete == nil {
		return
	}
	for _, sum := range completed {
		s.onComplete(sum)
	}
}

func (s *Session) applyLocked(ev Event) []Summary {
	if s.closed {
		return nil
	}
	if r, ok := ev.(Resolve); ok {
		delete(s.resolutions, r.ID)
	}

	before := s.game.State
	next, effects := s.engine.Reduce(s.game, ev)
	s.game = next

	var completed []Summary
	changed := true
	for _, ef := range effects {
		switch ef := ef.(type) {
		case StartTicker:
			s.startTicker()
		case StopTicker:
			s.stopTicker()
		case ScheduleResolution:
			s.scheduleResolution(ef.ID, ef.Delay)
		case CancelResolution:
			if stop, ok := s.resolutions[ef.ID]; ok {
				stop()
				delete(s.resolutions, ef.ID)
			}
		case Completed:
			completed = append(completed, ef.Summary)
			s.logger.Info("board completed",
				"level", ef.Summary.Level,
				"score", ef.Summary.Score,
				"moves", ef.Summary.Moves,
				"elapsed", ef.Summary.Elapsed)
		case Ignored:
			changed = false
			s.logger.Debug("event ignored", "event", EventName(ev), "reason", ef.Reason)
		}
	}

	if before != s.game.State {
		s.logger.Debug("game state changed", "from", before, "to", s.game.State, "event", EventName(ev))
	}
	if changed {
		s.publishLocked()
	}
	return completed
}

func (s *Session) publishLocked() {
	snap := Snapshot{Seq: s.clock.Next(), Game: s.game.Clone()}
	for _, sub := range s.subs {
		sub.push(snap)
	}
}

func (s *Session) startTicker() {
	s.stopTicker()
	epoch := s.tickEpoch
	interval := s.engine.Rules().TickInterval
	s.stopTick = s.sched.AfterFunc(interval, func() { s.tick(epoch) })
}

func (s *Session) stopTicker() {
	s.tickEpoch++
	if s.stopTick != nil {
		s.stopTick()
		s.stopTick = nil
	}
}

// tick handles one ticker firing. Firings from a stopped ticker carry an old
// epoch and are dropped.
func (s *Session) tick(epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || epoch != s.tickEpoch {
		return
	}
	next, effects := s.engine.Reduce(s.game, Tick{})
	s.game = next
	if len(effects) == 0 {
		s.publishLocked()
	}

	interval := s.engine.Rules().TickInterval
	s.stopTick = s.sched.AfterFunc(interval, func() { s.tick(epoch) })
}

func (s *Session) scheduleResolution(id uint64, delay time.Duration) {
	s.resolutions[id] = s.sched.AfterFunc(delay, func() {
		s.dispatch(Resolve{ID: id, At: s.sched.Now()})
	})
}
