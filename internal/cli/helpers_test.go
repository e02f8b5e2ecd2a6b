package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/mindglyph/internal/model"
	"github.com/roach88/mindglyph/internal/stats"
	"github.com/roach88/mindglyph/internal/store"
	"github.com/roach88/mindglyph/internal/testutil"
)

var testTime = time.Date(2026, time.March, 9, 8, 30, 0, 0, time.UTC)

// cliFixture runs commands against a database in a temp dir on a manual
// clock.
type cliFixture struct {
	opts  *RootOptions
	db    string
	clock *testutil.ManualClock
	ids   *model.SequenceGenerator
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()
	clock := testutil.NewManualClock(testTime)
	ids := model.NewSequenceGenerator("id")
	return &cliFixture{
		opts:  &RootOptions{Now: clock.Now, IDs: ids},
		db:    filepath.Join(t.TempDir(), "glyph.db"),
		clock: clock,
		ids:   ids,
	}
}

// run executes the root command with --db prepended and returns stdout.
func (fx *cliFixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(fx.opts)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--db", fx.db}, args...))
	err := cmd.Execute()
	return out.String(), err
}

// mustRun is run that fails the test on error.
func (fx *cliFixture) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := fx.run(t, args...)
	require.NoError(t, err, "glyph %v", args)
	return out
}

// runJSON executes a command with --format json and decodes the data field
// into dst.
func (fx *cliFixture) runJSON(t *testing.T, dst interface{}, args ...string) {
	t.Helper()
	out := fx.mustRun(t, append(args, "--format", "json")...)
	var resp struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	require.Equal(t, "ok", resp.Status)
	if dst != nil {
		require.NoError(t, json.Unmarshal(resp.Data, dst), string(resp.Data))
	}
}

// service opens the fixture database directly, outside any command.
func (fx *cliFixture) service(t *testing.T) *stats.Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := store.Open(fx.db,
		store.WithClock(fx.clock.Now),
		store.WithIDs(fx.ids),
		store.WithLogger(logger))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return stats.NewService(st,
		stats.WithClock(fx.clock.Now),
		stats.WithIDs(fx.ids),
		stats.WithLogger(logger))
}

// recordWin stores a cleared board as if the player had just finished it.
func (fx *cliFixture) recordWin(t *testing.T, score int) {
	t.Helper()
	session := model.NewGameSession(fx.ids, model.PuzzleGlyph, model.Easy)
	session.Score = score
	session.MovesCount = 3
	session.TimeElapsed = 42
	done := fx.clock.Now()
	session.CompletedAt = &done
	_, err := fx.service(t).RecordSession(context.Background(), session, true)
	require.NoError(t, err)
}
