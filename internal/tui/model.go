package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/roach88/mindglyph/internal/model"
	"github.com/roach88/mindglyph/internal/puzzle"
)

// Recorder folds finished sessions into the player's statistics.
type Recorder interface {
	RecordSession(ctx context.Context, session model.GameSession, won bool) ([]model.Achievement, error)
}

// SnapshotMsg carries a snapshot published by the session.
type SnapshotMsg struct {
	Snapshot puzzle.Snapshot
}

type recordedMsg struct {
	won      bool
	score    int
	unlocked []model.Achievement
	err      error
}

// Model is the Bubble Tea model for one puzzle session. Key presses are
// turned into session calls; what is drawn comes from the latest snapshot.
type Model struct {
	ctx      context.Context
	session  *puzzle.Session
	recorder Recorder
	logger   *slog.Logger

	snap   puzzle.Snapshot
	cursor int

	// session ids already handed to the recorder
	recorded map[string]bool

	keys     keyMap
	help     help.Model
	status   string
	width    int
	quitting bool
}

// New builds a model showing the session's current state. recorder may be
// nil, in which case nothing is recorded.
func New(ctx context.Context, session *puzzle.Session, recorder Recorder, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	return Model{
		ctx:      ctx,
		session:  session,
		recorder: recorder,
		logger:   logger,
		snap:     session.Snapshot(),
		recorded: make(map[string]bool),
		keys:     defaultKeys(),
		help:     help.New(),
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case SnapshotMsg:
		return m.applySnapshot(msg.Snapshot)

	case recordedMsg:
		m.status = recordStatus(msg)
		if msg.err != nil {
			m.logger.Warn("session not recorded", "error", msg.err)
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) applySnapshot(snap puzzle.Snapshot) (tea.Model, tea.Cmd) {
	if snap.Seq < m.snap.Seq {
		return m, nil
	}
	m.snap = snap
	if n := len(snap.Cells); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}

	if snap.State == puzzle.StateCompleted && snap.Completion != nil {
		return m, m.record(snap.Completion.Session, true)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		if cmd := m.abandon(); cmd != nil {
			return m, tea.Sequence(cmd, tea.Quit)
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1, 0)

	case key.Matches(msg, m.keys.Select):
		m.status = ""
		switch m.snap.State {
		case puzzle.StateReady:
			m.session.StartNewGame()
		case puzzle.StatePlaying:
			if m.cursor < len(m.snap.Cells) {
				m.session.CellTapped(m.snap.Cells[m.cursor].ID)
			}
		case puzzle.StatePaused:
			m.session.ResumeGame()
		case puzzle.StateCompleted:
			m.session.NextLevel()
		}

	case key.Matches(msg, m.keys.Pause):
		switch m.snap.State {
		case puzzle.StatePlaying:
			m.session.PauseGame()
		case puzzle.StatePaused:
			m.session.ResumeGame()
		}

	case key.Matches(msg, m.keys.New):
		cmd := m.abandon()
		m.status = ""
		m.session.StartNewGame()
		return m, cmd

	case key.Matches(msg, m.keys.Reset):
		cmd := m.abandon()
		m.status = ""
		m.session.ResetGame()
		return m, cmd
	}
	return m, nil
}

// moveCursor moves within the grid, clamped at the edges.
func (m *Model) moveCursor(dx, dy int) {
	n := len(m.snap.Cells)
	cols := m.snap.Columns()
	if n == 0 || cols <= 0 {
		return
	}
	col, row := m.cursor%cols, m.cursor/cols
	col = min(max(col+dx, 0), cols-1)
	row = max(row+dy, 0)
	if next := row*cols + col; next < n {
		m.cursor = next
	}
}

// abandon records the live board as a lost session when the player leaves
// it after making at least one move. A pending resolution is settled first,
// so a board whose last pair was already found is recorded as won.
func (m Model) abandon() tea.Cmd {
	m.session.Settle()
	snap := m.session.Snapshot()
	if snap.State == puzzle.StateCompleted && snap.Completion != nil {
		return m.record(snap.Completion.Session, true)
	}
	if snap.State != puzzle.StatePlaying && snap.State != puzzle.StatePaused {
		return nil
	}
	if snap.Moves == 0 {
		return nil
	}
	return m.record(snap.SessionRecord(), false)
}

// record returns a command that hands s to the recorder, once per session.
func (m Model) record(s model.GameSession, won bool) tea.Cmd {
	if m.recorder == nil || m.recorded[s.ID] {
		return nil
	}
	m.recorded[s.ID] = true

	ctx, rec := m.ctx, m.recorder
	return func() tea.Msg {
		unlocked, err := rec.RecordSession(ctx, s, won)
		return recordedMsg{won: won, score: s.Score, unlocked: unlocked, err: err}
	}
}

func recordStatus(msg recordedMsg) string {
	if msg.err != nil {
		return "Could not save progress: " + msg.err.Error()
	}
	status := "Progress saved"
	if msg.won {
		status = fmt.Sprintf("Board cleared! +%d", msg.score)
	}
	if len(msg.unlocked) > 0 {
		titles := make([]string, len(msg.unlocked))
		for i, a := range msg.unlocked {
			titles[i] = a.Title
		}
		status += " · Unlocked: " + strings.Join(titles, ", ")
	}
	return status
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	g := m.snap.Game
	header := Title.Render("Mind Body Glyph") + "  " +
		Muted.Render(fmt.Sprintf("Level %d · %s", g.Level, g.Difficulty))
	counters := fmt.Sprintf("Score %d   Board %d   Moves %d   Time %s",
		g.Score, g.BoardScore, g.Moves, formatElapsed(g.Elapsed))

	parts := []string{header, counters, "", m.renderBoard(), "", m.banner()}
	if m.status != "" {
		parts = append(parts, Hot.Render(m.status))
	}
	parts = append(parts, "", m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) banner() string {
	switch m.snap.State {
	case puzzle.StateReady:
		return Muted.Render("Press enter to deal a board.")
	case puzzle.StatePaused:
		return Hot.Render("Paused. Press p to resume.")
	case puzzle.StateCompleted:
		return Title.Render("Level complete! Press enter for the next level.")
	default:
		return Muted.Render(fmt.Sprintf("%d of %d cells matched", m.snap.MatchedCount(), len(m.snap.Cells)))
	}
}

func (m Model) renderBoard() string {
	cells := m.snap.Cells
	cols := m.snap.Columns()
	if len(cells) == 0 || cols <= 0 {
		return Muted.Render("No board dealt.")
	}

	var rows []string
	for start := 0; start < len(cells); start += cols {
		end := min(start+cols, len(cells))
		rendered := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			rendered = append(rendered, m.renderCell(i))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCell(i int) string {
	c := m.snap.Cells[i]
	style, face := cellHidden, "?"
	switch {
	case c.Matched:
		style, face = cellMatched, c.Symbol
	case c.Revealed:
		style, face = cellRevealed, c.Symbol
	}
	if i == m.cursor && m.snap.State == puzzle.StatePlaying {
		style = style.BorderStyle(lipgloss.ThickBorder()).BorderForeground(Lavender)
	}
	return style.Render(face)
}

func formatElapsed(d time.Duration) string {
	s := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
