// Package config loads the YAML configuration file and validates it against
// an embedded CUE schema.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"

	"github.com/roach88/mindglyph/internal/puzzle"
)

//go:embed schema.cue
var schemaCUE string

// Config is the validated configuration.
type Config struct {
	Database      string
	LogLevel      string
	MatchDelay    time.Duration
	MismatchDelay time.Duration
	TickInterval  time.Duration
	PausePolicy   puzzle.PausePolicy
	Seed          uint64 // 0 means random
}

// file mirrors the on-disk layout after CUE has filled in defaults.
type file struct {
	Database      string `json:"database" yaml:"database"`
	LogLevel      string `json:"log_level" yaml:"log_level"`
	MatchDelay    string `json:"match_delay" yaml:"match_delay"`
	MismatchDelay string `json:"mismatch_delay" yaml:"mismatch_delay"`
	TickInterval  string `json:"tick_interval" yaml:"tick_interval"`
	PausePolicy   string `json:"pause_policy" yaml:"pause_policy"`
	Seed          uint64 `json:"seed" yaml:"seed"`
}

// Error reports an invalid configuration value.
type Error struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Default returns the configuration used when no file is given.
func Default() Config {
	cfg, err := Parse(nil)
	if err != nil {
		// The embedded schema's defaults always validate.
		panic(fmt.Sprintf("config: default configuration invalid: %v", err))
	}
	return cfg
}

// Load reads and validates the file at path. An empty path yields Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates YAML data against the schema and fills in defaults.
func Parse(data []byte) (Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue")).LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return Config{}, formatCUEError(err)
	}

	v := schema.Unify(ctx.Encode(raw))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return Config{}, formatCUEError(err)
	}

	var f file
	if err := v.Decode(&f); err != nil {
		return Config{}, formatCUEError(err)
	}
	return f.resolve()
}

func (f file) resolve() (Config, error) {
	cfg := Config{
		Database:    f.Database,
		LogLevel:    f.LogLevel,
		PausePolicy: puzzle.PausePolicy(f.PausePolicy),
		Seed:        f.Seed,
	}
	durations := []struct {
		field string
		raw   string
		dst   *time.Duration
	}{
		{"match_delay", f.MatchDelay, &cfg.MatchDelay},
		{"mismatch_delay", f.MismatchDelay, &cfg.MismatchDelay},
		{"tick_interval", f.TickInterval, &cfg.TickInterval},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return Config{}, &Error{Field: d.field, Message: err.Error()}
		}
		if v <= 0 {
			return Config{}, &Error{Field: d.field, Message: "must be positive"}
		}
		*d.dst = v
	}
	return cfg, nil
}

// Rules returns the engine pacing described by cfg.
func (c Config) Rules() puzzle.Rules {
	return puzzle.Rules{
		MatchDelay:    c.MatchDelay,
		MismatchDelay: c.MismatchDelay,
		TickInterval:  c.TickInterval,
		PausePolicy:   c.PausePolicy,
	}
}

// SlogLevel maps LogLevel to a slog level. Unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// formatCUEError extracts path and position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &Error{Message: err.Error()}
	}

	first := errs[0]
	out := &Error{
		Field:   strings.Join(first.Path(), "."),
		Message: first.Error(),
	}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		out.Pos = positions[0]
	}
	return out
}
