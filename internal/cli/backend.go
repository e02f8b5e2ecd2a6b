package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/mindglyph/internal/config"
	"github.com/roach88/mindglyph/internal/stats"
	"github.com/roach88/mindglyph/internal/store"
)

// backend is an open database and the statistics service over it.
type backend struct {
	cfg     config.Config
	store   *store.Store
	service *stats.Service
}

// openBackend opens the database named by --db or the config file.
func (o *RootOptions) openBackend() (*backend, error) {
	return o.openBackendWithLogger(slog.Default())
}

func (o *RootOptions) openBackendWithLogger(logger *slog.Logger) (*backend, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	path := o.Database
	if path == "" {
		path = cfg.Database
	}

	storeOpts := []store.Option{store.WithLogger(logger)}
	serviceOpts := []stats.Option{stats.WithLogger(logger)}
	if o.Now != nil {
		storeOpts = append(storeOpts, store.WithClock(o.Now))
		serviceOpts = append(serviceOpts, stats.WithClock(o.Now))
	}
	if o.IDs != nil {
		storeOpts = append(storeOpts, store.WithIDs(o.IDs))
		serviceOpts = append(serviceOpts, stats.WithIDs(o.IDs))
	}

	logger.Debug("opening database", "path", path)
	st, err := store.Open(path, storeOpts...)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return &backend{
		cfg:     cfg,
		store:   st,
		service: stats.NewService(st, serviceOpts...),
	}, nil
}

func (b *backend) Close() {
	if err := b.store.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

// formatter builds the command's output formatter.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// commandContext returns the command's context, or Background when the
// command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// fail wraps err with an exit code. Rejected input maps to
// ExitCommandError, everything else to ExitFailure. JSON output also gets an
// error envelope on stdout; text errors are printed by main.
func fail(f *OutputFormatter, message string, err error) error {
	code, exit := "FAILED", ExitFailure
	var ie *stats.InputError
	if errors.As(err, &ie) {
		code, exit = string(ie.Code), ExitCommandError
	}
	if f.Format == "json" {
		_ = f.Error(code, fmt.Sprintf("%s: %v", message, err), nil)
	}
	return WrapExitError(exit, message, err)
}

// usageError reports a bad argument.
func usageError(f *OutputFormatter, message string) error {
	if f.Format == "json" {
		_ = f.Error("USAGE", message, nil)
	}
	return NewExitError(ExitCommandError, message)
}
