package harness

import (
	"strings"

	"github.com/roach88/mindglyph/internal/model"
	"github.com/roach88/mindglyph/internal/puzzle"
)

// Trace event types.
const (
	EventStep       = "step"
	EventCompletion = "completion"
)

// GameView is the part of a game snapshot a scenario can observe. Cells are
// addressed by grid position.
type GameView struct {
	State      string `json:"state"`
	Level      int    `json:"level"`
	Difficulty string `json:"difficulty"`
	Score      int    `json:"score"`
	BoardScore int    `json:"board_score"`
	Moves      int    `json:"moves"`
	Elapsed    string `json:"elapsed"`
	Matched    int    `json:"matched"`
	Selected   []int  `json:"selected,omitempty"`
}

// viewFields lists the keys accepted by step expectations and final_state.
var viewFields = map[string]bool{
	"state": true, "level": true, "difficulty": true, "score": true,
	"board_score": true, "moves": true, "elapsed": true, "matched": true,
	"selected": true,
}

func newGameView(g puzzle.Game) GameView {
	v := GameView{
		State:      g.State.String(),
		Level:      g.Level,
		Difficulty: strings.ToLower(g.Difficulty.String()),
		Score:      g.Score,
		BoardScore: g.BoardScore,
		Moves:      g.Moves,
		Elapsed:    g.Elapsed.String(),
		Matched:    g.MatchedCount(),
	}
	for _, id := range g.Selection {
		if c, ok := g.Cell(id); ok {
			v.Selected = append(v.Selected, c.Position)
		}
	}
	return v
}

func (v GameView) fields() map[string]interface{} {
	selected := v.Selected
	if selected == nil {
		selected = []int{}
	}
	return map[string]interface{}{
		"state":       v.State,
		"level":       v.Level,
		"difficulty":  v.Difficulty,
		"score":       v.Score,
		"board_score": v.BoardScore,
		"moves":       v.Moves,
		"elapsed":     v.Elapsed,
		"matched":     v.Matched,
		"selected":    selected,
	}
}

// CompletionView summarises a cleared board.
type CompletionView struct {
	Level      int    `json:"level"`
	Score      int    `json:"score"`
	BoardScore int    `json:"board_score"`
	Moves      int    `json:"moves"`
	Elapsed    string `json:"elapsed"`
}

func newCompletionView(s puzzle.Summary) CompletionView {
	return CompletionView{
		Level:      s.Level,
		Score:      s.Score,
		BoardScore: s.BoardScore,
		Moves:      s.Moves,
		Elapsed:    s.Elapsed.String(),
	}
}

// TraceEvent is one entry in a scenario trace: a step with the view after
// it, or a board completion the step caused.
type TraceEvent struct {
	Type       string                 `json:"type"`
	Action     string                 `json:"action,omitempty"`
	Args       map[string]interface{} `json:"args,omitempty"`
	Seq        int64                  `json:"seq"`
	View       *GameView              `json:"view,omitempty"`
	Completion *CompletionView        `json:"completion,omitempty"`
}

var profileFields = map[string]bool{
	"username": true, "games_played": true, "games_won": true,
	"total_score": true, "highest_level": true,
}

func profileValues(p model.UserProfile) map[string]interface{} {
	return map[string]interface{}{
		"username":      p.Username,
		"games_played":  p.TotalGamesPlayed,
		"games_won":     p.TotalGamesWon,
		"total_score":   p.TotalScore,
		"highest_level": p.HighestLevel,
	}
}

var questFields = map[string]bool{"current": true, "target": true, "completed": true}

func questValues(q model.DailyQuest) map[string]interface{} {
	return map[string]interface{}{
		"current":   q.CurrentValue,
		"target":    q.TargetValue,
		"completed": q.IsCompleted,
	}
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every step expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace contains every step and completion in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Final is the game view after the last step.
	Final GameView `json:"final"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddStepTrace adds a step and the view it left behind.
func (r *Result) AddStepTrace(action string, args map[string]interface{}, seq int64, view GameView) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:   EventStep,
		Action: action,
		Args:   args,
		Seq:    seq,
		View:   &view,
	})
}

// AddCompletionTrace adds a cleared board.
func (r *Result) AddCompletionTrace(c CompletionView, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:       EventCompletion,
		Seq:        seq,
		Completion: &c,
	})
}
