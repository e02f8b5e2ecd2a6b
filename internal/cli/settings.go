package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/mindglyph/internal/model"
	"github.com/roach88/mindglyph/internal/stats"
)

// NewSettingsCommand creates the settings command and its subcommands.
// Without a subcommand it shows the current settings.
func NewSettingsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change player settings",
		Long: `Show or change the player's name, difficulty, sound, haptics and
step tracking.

Examples:
  glyph settings
  glyph settings set-name "Ada"
  glyph settings set-difficulty hard
  glyph settings toggle-sound
  glyph settings set-goal 8000
  glyph settings health on`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(rootOpts, cmd, func(f *OutputFormatter, svc *stats.Service) error {
				p, err := svc.LoadProfile(commandContext(cmd))
				if err != nil {
					return fail(f, "failed to load settings", err)
				}
				return f.Success(settingsView{UserProfile: p})
			})
		},
	}

	cmd.AddCommand(
		newSetNameCommand(rootOpts),
		newSetDifficultyCommand(rootOpts),
		newToggleCommand(rootOpts, "toggle-sound", "Turn sound effects on or off", "soundEnabled", "Sound", (*stats.Service).ToggleSound),
		newToggleCommand(rootOpts, "toggle-haptics", "Turn haptic feedback on or off", "hapticsEnabled", "Haptics", (*stats.Service).ToggleHaptics),
		newSetGoalCommand(rootOpts),
		newHealthCommand(rootOpts),
	)
	return cmd
}

// withService opens the backend, runs fn and closes it again.
func withService(opts *RootOptions, cmd *cobra.Command, fn func(*OutputFormatter, *stats.Service) error) error {
	f := opts.formatter(cmd)
	b, err := opts.openBackend()
	if err != nil {
		return err
	}
	defer b.Close()
	return fn(f, b.service)
}

// report writes data as JSON or text as a plain line.
func report(f *OutputFormatter, data interface{}, text string) error {
	if f.Format == "json" {
		return f.Success(data)
	}
	return f.Success(text)
}

func newSetNameCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "set-name <name>",
		Short:         "Change the display name",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(rootOpts, cmd, func(f *OutputFormatter, svc *stats.Service) error {
				p, err := svc.UpdateUsername(commandContext(cmd), args[0])
				if err != nil {
					return fail(f, "failed to update name", err)
				}
				text := fmt.Sprintf("Name set to %s", p.Username)
				if _, ok := stats.NormalizeUsername(args[0]); !ok {
					text = fmt.Sprintf("Name unchanged: %s", p.Username)
				}
				return report(f, p, text)
			})
		},
	}
}

func newSetDifficultyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "set-difficulty <easy|medium|hard|expert>",
		Short:         "Change the difficulty new games start at",
		Args:          cobra.ExactArgs(1),
		ValidArgs:     []string{"easy", "medium", "hard", "expert"},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(rootOpts, cmd, func(f *OutputFormatter, svc *stats.Service) error {
				d, err := model.ParseDifficulty(args[0])
				if err != nil {
					return usageError(f, err.Error())
				}
				p, err := svc.UpdatePreferredDifficulty(commandContext(cmd), d)
				if err != nil {
					return fail(f, "failed to update difficulty", err)
				}
				return report(f, p, fmt.Sprintf("Difficulty set to %s", p.PreferredDifficulty))
			})
		},
	}
}

func newToggleCommand(rootOpts *RootOptions, use, short, key, label string, toggle func(*stats.Service, context.Context) (bool, error)) *cobra.Command {
	return &cobra.Command{
		Use:           use,
		Short:         short,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(rootOpts, cmd, func(f *OutputFormatter, svc *stats.Service) error {
				on, err := toggle(svc, commandContext(cmd))
				if err != nil {
					return fail(f, "failed to toggle "+label, err)
				}
				return report(f, map[string]bool{key: on}, fmt.Sprintf("%s %s", label, onOff(on)))
			})
		},
	}
}

func newSetGoalCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "set-goal <steps>",
		Short:         "Change the daily step goal",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(rootOpts, cmd, func(f *OutputFormatter, svc *stats.Service) error {
				steps, err := strconv.Atoi(args[0])
				if err != nil {
					return usageError(f, fmt.Sprintf("invalid step goal %q: must be a whole number", args[0]))
				}
				p, err := svc.SetDailyGoalSteps(commandContext(cmd), steps)
				if err != nil {
					return fail(f, "failed to set step goal", err)
				}
				return report(f, p, fmt.Sprintf("Daily step goal set to %d", p.DailyGoalSteps))
			})
		},
	}
}

func newHealthCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "health <on|off>",
		Short:         "Turn step tracking on or off",
		Args:          cobra.ExactArgs(1),
		ValidArgs:     []string{"on", "off"},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(rootOpts, cmd, func(f *OutputFormatter, svc *stats.Service) error {
				var on bool
				switch args[0] {
				case "on":
					on = true
				case "off":
				default:
					return usageError(f, fmt.Sprintf("invalid value %q: must be on or off", args[0]))
				}
				p, err := svc.SetHealthEnabled(commandContext(cmd), on)
				if err != nil {
					return fail(f, "failed to update step tracking", err)
				}
				return report(f, p, fmt.Sprintf("Step tracking %s", onOff(p.HealthEnabled)))
			})
		},
	}
}
