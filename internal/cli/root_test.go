package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "glyph", cmd.Use)
	assert.Contains(t, cmd.Long, "memory-matching")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"play", "profile", "settings", "quests", "achievements", "sessions", "steps", "onboard", "reset", "scenario"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestSettingsSubcommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"set-name", "set-difficulty", "toggle-sound", "toggle-haptics", "set-goal", "health"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{"settings", name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	dbFlag := cmd.PersistentFlags().Lookup("db")
	require.NotNil(t, dbFlag)
	assert.Equal(t, "", dbFlag.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestSubcommandFlags(t *testing.T) {
	tests := []struct {
		path []string
		flag string
		def  string
	}{
		{[]string{"play"}, "difficulty", ""},
		{[]string{"play"}, "log-file", ""},
		{[]string{"sessions"}, "limit", "10"},
		{[]string{"achievements"}, "unlocked", "false"},
		{[]string{"onboard"}, "name", ""},
		{[]string{"reset"}, "account", "false"},
		{[]string{"reset"}, "yes", "false"},
		{[]string{"scenario"}, "trace", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			sub, _, err := NewRootCommand().Find(tt.path)
			require.NoError(t, err)
			f := sub.Flags().Lookup(tt.flag)
			require.NotNil(t, f)
			assert.Equal(t, tt.def, f.DefValue)
		})
	}
}

func TestInvalidFormat(t *testing.T) {
	fx := newCLIFixture(t)
	_, err := fx.run(t, "profile", "--format", "xml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestConfigFileSuppliesDatabase(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "from-config.db")
	cfgPath := filepath.Join(dir, "glyph.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("database: "+dbPath+"\nlog_level: warn\n"), 0o644))

	cmd := NewRootCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--config", cfgPath, "profile"})
	require.NoError(t, cmd.Execute())

	_, err := os.Stat(dbPath)
	assert.NoError(t, err, "database from config should be created")
}

func TestInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "glyph.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("pause_policy: rewind\n"), 0o644))

	fx := newCLIFixture(t)
	_, err := fx.run(t, "--config", cfgPath, "profile")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestMissingConfig(t *testing.T) {
	fx := newCLIFixture(t)
	_, err := fx.run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "profile")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestUnopenableDatabase(t *testing.T) {
	fx := newCLIFixture(t)
	fx.db = filepath.Join(t.TempDir(), "no", "such", "dir", "glyph.db")

	_, err := fx.run(t, "profile")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to open database")
}
