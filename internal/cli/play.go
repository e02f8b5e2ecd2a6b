package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/roach88/mindglyph/internal/model"
	"github.com/roach88/mindglyph/internal/puzzle"
	"github.com/roach88/mindglyph/internal/tui"
)

// PlayOptions holds flags for the play command.
type PlayOptions struct {
	*RootOptions
	Difficulty string
	LogFile    string

	// ProgramOptions are appended to the Bubble Tea program options (for
	// testing without a terminal).
	ProgramOptions []tea.ProgramOption
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play on the interactive board",
		Long: `Open the interactive board.

Move with the arrow keys or hjkl, reveal a cell with enter or space, pause
with p and quit with q. Finished and abandoned boards are saved to the
player's statistics.

The board takes over the terminal, so logs are discarded unless
--log-file is given.

Examples:
  glyph play
  glyph play --difficulty hard
  glyph play --log-file glyph.log -v`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Difficulty, "difficulty", "", "starting difficulty (default from settings)")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "", "write logs to this file while playing")
	return cmd
}

func runPlay(opts *PlayOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	var difficulty model.DifficultyLevel
	if opts.Difficulty != "" {
		d, err := model.ParseDifficulty(opts.Difficulty)
		if err != nil {
			return usageError(f, err.Error())
		}
		difficulty = d
	}

	cfg, err := opts.config()
	if err != nil {
		return err
	}
	logger, closeLog, err := opts.boardLogger(cfg.SlogLevel())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open log file", err)
	}
	defer closeLog()

	b, err := opts.openBackendWithLogger(logger)
	if err != nil {
		return err
	}
	defer b.Close()

	// Signal handling mirrors the quit key: the board stops and any
	// unfinished board is left unrecorded.
	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	if done, err := b.service.OnboardingComplete(ctx); err == nil && !done {
		fmt.Fprintln(f.GetErrWriter(), "Tip: run 'glyph onboard --name <name>' to pick a display name.")
	}

	profile, err := b.service.LoadProfile(ctx)
	if err != nil {
		return fail(f, "failed to load profile", err)
	}
	if difficulty == 0 {
		difficulty = profile.PreferredDifficulty
	}
	// Roll quests over before the first board so today's progress lands on
	// today's list.
	if _, err := b.service.UpdateDailyQuests(ctx); err != nil {
		return fail(f, "failed to update quests", err)
	}

	session := puzzle.NewSession(puzzle.Options{
		PuzzleType: model.PuzzleGlyph,
		Difficulty: difficulty,
		Rules:      b.cfg.Rules(),
		Seed:       b.cfg.Seed,
		IDs:        opts.IDs,
		Logger:     logger,
	})
	defer session.Close()

	programOpts := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	}, opts.ProgramOptions...)

	logger.Info("board opening", "difficulty", difficulty, "db", opts.Database)
	err = tui.Run(ctx, session, b.service, logger, programOpts...)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, tea.ErrProgramKilled) {
		return WrapExitError(ExitFailure, "board error", err)
	}

	// ctx may already be cancelled by a signal; the summary still prints.
	sum, err := b.service.Summary(context.WithoutCancel(ctx))
	if err != nil {
		return fail(f, "failed to load profile", err)
	}
	return report(f, profileView{Summary: sum},
		fmt.Sprintf("Thanks for playing, %s. Total points: %d", sum.Username, sum.TotalPoints))
}

// boardLogger returns a logger for the duration of the board. Without
// --log-file it discards everything.
func (o *PlayOptions) boardLogger(level slog.Level) (*slog.Logger, func(), error) {
	if o.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	file, err := os.OpenFile(o.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	if o.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = file.Close() }, nil
}
