package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/mindglyph/internal/harness"
)

// ScenarioOptions holds flags for the scenario command.
type ScenarioOptions struct {
	*RootOptions
	Trace bool // print the trace as JSON lines
}

// scenarioReport is the JSON payload of the scenario command.
type scenarioReport struct {
	Name   string               `json:"name"`
	Pass   bool                 `json:"pass"`
	Errors []string             `json:"errors,omitempty"`
	Final  harness.GameView     `json:"final"`
	Trace  []harness.TraceEvent `json:"trace,omitempty"`
}

// NewScenarioCommand creates the scenario command.
func NewScenarioCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScenarioOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "scenario <file.yaml>",
		Short: "Replay a scripted game",
		Long: `Replay a YAML tap script against a fresh in-memory profile on a
manual clock and check its assertions.

Exit codes:
  0 - All assertions passed
  1 - One or more assertions failed
  2 - Command error (unreadable or invalid scenario)

Examples:
  glyph scenario ./testdata/scenarios/easy_perfect_board.yaml
  glyph scenario board.yaml --trace`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "print the event trace")
	return cmd
}

func runScenario(opts *ScenarioOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	scenario, err := harness.LoadScenario(path)
	if err != nil {
		if f.Format == "json" {
			_ = f.Error("INVALID_SCENARIO", err.Error(), nil)
		}
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}
	f.VerboseLog("Loaded scenario %s (%d steps, %d assertions)", scenario.Name, len(scenario.Steps), len(scenario.Assertions))

	result, err := harness.Run(scenario)
	if err != nil {
		if f.Format == "json" {
			_ = f.Error("INVALID_SCENARIO", err.Error(), nil)
		}
		return WrapExitError(ExitCommandError, "failed to run scenario", err)
	}

	if f.Format == "json" {
		rep := scenarioReport{
			Name:   scenario.Name,
			Pass:   result.Pass,
			Errors: result.Errors,
			Final:  result.Final,
		}
		if opts.Trace {
			rep.Trace = result.Trace
		}
		if err := f.Success(rep); err != nil {
			return err
		}
	} else if err := printScenarioText(opts, f, scenario.Name, result); err != nil {
		return err
	}

	if !result.Pass {
		return NewExitError(ExitFailure, fmt.Sprintf("scenario %s failed with %d error(s)", scenario.Name, len(result.Errors)))
	}
	return nil
}

func printScenarioText(opts *ScenarioOptions, f *OutputFormatter, name string, result *harness.Result) error {
	w := f.Writer
	if opts.Trace {
		data, err := harness.MarshalTrace(name, result.Trace)
		if err != nil {
			return WrapExitError(ExitFailure, "failed to encode trace", err)
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}

	if result.Pass {
		fmt.Fprintf(w, "✓ %s\n", name)
	} else {
		fmt.Fprintf(w, "✗ %s\n", name)
		for _, e := range result.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}
	final := result.Final
	fmt.Fprintf(w, "  final: %s, level %d, score %d, %d moves, %s\n",
		final.State, final.Level, final.Score, final.Moves, final.Elapsed)
	return nil
}
