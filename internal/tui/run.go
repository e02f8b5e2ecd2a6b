package tui

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/roach88/mindglyph/internal/puzzle"
)

// Run plays session in the terminal until the player quits or ctx is done.
func Run(ctx context.Context, session *puzzle.Session, recorder Recorder, logger *slog.Logger, opts ...tea.ProgramOption) error {
	sub := session.Subscribe()
	defer sub.Close()

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(New(ctx, session, recorder, logger), opts...)
	go forward(ctx, sub, p)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run board: %w", err)
	}
	return nil
}

// forward delivers snapshots to the program until the subscription closes.
func forward(ctx context.Context, sub *puzzle.Subscription, p *tea.Program) {
	for {
		snap, err := sub.Next(ctx)
		if err != nil {
			return
		}
		p.Send(SnapshotMsg{Snapshot: snap})
	}
}
