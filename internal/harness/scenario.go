package harness

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/mindglyph/internal/model"
	"github.com/roach88/mindglyph/internal/puzzle"
)

// Scenario is a scripted puzzle session with assertions on its outcome.
type Scenario struct {
	// Name uniquely identifies this scenario. It names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Difficulty of the first board. Defaults to easy.
	Difficulty string `yaml:"difficulty,omitempty"`

	// Seed seeds shuffled boards. Zero means 1.
	Seed uint64 `yaml:"seed,omitempty"`

	// Boards are symbol layouts dealt in order, one per new board. Boards
	// dealt after the list runs out are shuffled from Seed.
	Boards [][]string `yaml:"boards,omitempty"`

	// Rules overrides the pacing rules. Unset fields keep their defaults.
	Rules RuleOverrides `yaml:"rules,omitempty"`

	Steps      []Step      `yaml:"steps"`
	Assertions []Assertion `yaml:"assertions"`
}

// RuleOverrides holds pacing overrides as duration strings.
type RuleOverrides struct {
	MatchDelay    string `yaml:"match_delay,omitempty"`
	MismatchDelay string `yaml:"mismatch_delay,omitempty"`
	TickInterval  string `yaml:"tick_interval,omitempty"`
	PausePolicy   string `yaml:"pause_policy,omitempty"`
}

// Step is one player or clock action. Exactly one action field is set.
type Step struct {
	Start     bool   `yaml:"start,omitempty"`
	NextLevel bool   `yaml:"next_level,omitempty"`
	Pause     bool   `yaml:"pause,omitempty"`
	Resume    bool   `yaml:"resume,omitempty"`
	Reset     bool   `yaml:"reset,omitempty"`
	Tap       *int   `yaml:"tap,omitempty"`
	Match     string `yaml:"match,omitempty"`
	Wait      string `yaml:"wait,omitempty"`

	// Expect is matched against the game view after the step. Only the
	// listed fields are checked.
	Expect map[string]interface{} `yaml:"expect,omitempty"`
}

// Assertion validates the trace, final state or recorded statistics.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Action names a step action (trace_count).
	Action string `yaml:"action,omitempty"`

	// Actions is the expected action order (trace_order).
	Actions []string `yaml:"actions,omitempty"`

	// Count is the expected number of occurrences (trace_count, completions).
	Count int `yaml:"count,omitempty"`

	// Quest is the quest type (quest).
	Quest string `yaml:"quest,omitempty"`

	// Keys are achievement keys that must be unlocked (achievements).
	Keys []string `yaml:"keys,omitempty"`

	// Expect contains expected field values (final_state, profile, quest).
	// Subset match: only the listed fields are checked.
	Expect map[string]interface{} `yaml:"expect,omitempty"`
}

// Assertion type constants.
const (
	AssertFinalState   = "final_state"
	AssertCompletions  = "completions"
	AssertTraceCount   = "trace_count"
	AssertTraceOrder   = "trace_order"
	AssertProfile      = "profile"
	AssertAchievements = "achievements"
	AssertQuest        = "quest"
)

// Step action names, as they appear in traces.
const (
	ActionStart     = "start"
	ActionNextLevel = "next_level"
	ActionPause     = "pause"
	ActionResume    = "resume"
	ActionReset     = "reset"
	ActionTap       = "tap"
	ActionMatch     = "match"
	ActionWait      = "wait"
)

// Action returns the name of the step's action, or "" when none is set.
// With more than one action set the first in declaration order wins;
// validation rejects such steps.
func (s Step) Action() string {
	names := s.actions()
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

func (s Step) actions() []string {
	var names []string
	if s.Start {
		names = append(names, ActionStart)
	}
	if s.NextLevel {
		names = append(names, ActionNextLevel)
	}
	if s.Pause {
		names = append(names, ActionPause)
	}
	if s.Resume {
		names = append(names, ActionResume)
	}
	if s.Reset {
		names = append(names, ActionReset)
	}
	if s.Tap != nil {
		names = append(names, ActionTap)
	}
	if s.Match != "" {
		names = append(names, ActionMatch)
	}
	if s.Wait != "" {
		names = append(names, ActionWait)
	}
	return names
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // catches "assertion:" vs "assertions:"
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// DifficultyLevel returns the scenario's starting difficulty.
func (s *Scenario) DifficultyLevel() model.DifficultyLevel {
	if s.Difficulty == "" {
		return model.Easy
	}
	d, err := model.ParseDifficulty(s.Difficulty)
	if err != nil {
		return model.Easy
	}
	return d
}

// PuzzleRules returns the default rules with the scenario's overrides
// applied.
func (s *Scenario) PuzzleRules() (puzzle.Rules, error) {
	rules := puzzle.DefaultRules()
	for _, o := range []struct {
		field string
		value string
		dst   *time.Duration
	}{
		{"match_delay", s.Rules.MatchDelay, &rules.MatchDelay},
		{"mismatch_delay", s.Rules.MismatchDelay, &rules.MismatchDelay},
		{"tick_interval", s.Rules.TickInterval, &rules.TickInterval},
	} {
		if o.value == "" {
			continue
		}
		d, err := parsePositiveDuration(o.value)
		if err != nil {
			return puzzle.Rules{}, fmt.Errorf("rules.%s: %w", o.field, err)
		}
		*o.dst = d
	}

	switch p := puzzle.PausePolicy(s.Rules.PausePolicy); p {
	case "":
	case puzzle.PauseFastForward, puzzle.PauseCancel:
		rules.PausePolicy = p
	default:
		return puzzle.Rules{}, fmt.Errorf("rules.pause_policy: unknown policy %q", s.Rules.PausePolicy)
	}
	return rules, nil
}

func parsePositiveDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %s", s)
	}
	return d, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Difficulty != "" {
		if _, err := model.ParseDifficulty(s.Difficulty); err != nil {
			return fmt.Errorf("difficulty: %w", err)
		}
	}

	if _, err := s.PuzzleRules(); err != nil {
		return err
	}

	for i, b := range s.Boards {
		if len(b) == 0 {
			return fmt.Errorf("boards[%d]: layout must be non-empty", i)
		}
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateStep(index int, step Step) error {
	switch names := step.actions(); len(names) {
	case 0:
		return fmt.Errorf("steps[%d]: an action is required", index)
	case 1:
	default:
		return fmt.Errorf("steps[%d]: exactly one action allowed, got %v", index, names)
	}

	if step.Tap != nil && *step.Tap < 0 {
		return fmt.Errorf("steps[%d]: tap position must be non-negative", index)
	}
	if step.Wait != "" {
		if _, err := parsePositiveDuration(step.Wait); err != nil {
			return fmt.Errorf("steps[%d]: wait: %w", index, err)
		}
	}
	for key := range step.Expect {
		if !viewFields[key] {
			return fmt.Errorf("steps[%d].expect: unknown field %q", index, key)
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertFinalState:
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: final_state requires 'expect' field", index)
		}
		for key := range a.Expect {
			if !viewFields[key] {
				return fmt.Errorf("assertions[%d].expect: unknown field %q", index, key)
			}
		}

	case AssertCompletions:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: completions count must be non-negative", index)
		}

	case AssertTraceCount:
		if a.Action == "" {
			return fmt.Errorf("assertions[%d]: trace_count requires 'action' field", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: trace_count count must be non-negative", index)
		}

	case AssertTraceOrder:
		if len(a.Actions) < 2 {
			return fmt.Errorf("assertions[%d]: trace_order requires at least 2 actions", index)
		}

	case AssertProfile:
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: profile requires 'expect' field", index)
		}
		for key := range a.Expect {
			if !profileFields[key] {
				return fmt.Errorf("assertions[%d].expect: unknown profile field %q", index, key)
			}
		}

	case AssertAchievements:
		if len(a.Keys) == 0 {
			return fmt.Errorf("assertions[%d]: achievements requires 'keys' field", index)
		}

	case AssertQuest:
		if a.Quest == "" {
			return fmt.Errorf("assertions[%d]: quest requires 'quest' field", index)
		}
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: quest requires 'expect' field", index)
		}
		for key := range a.Expect {
			if !questFields[key] {
				return fmt.Errorf("assertions[%d].expect: unknown quest field %q", index, key)
			}
		}

	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
