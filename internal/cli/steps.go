package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/mindglyph/internal/stats"
)

// NewStepsCommand creates the steps command.
func NewStepsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "steps <daily> [weekly] [monthly]",
		Short: "Record a step-count reading",
		Long: `Record today's step count, and optionally this week's and this
month's. Missing totals default to the daily count.

The reading updates the health bar, the goal streak and the step quest.
Step tracking must be on (glyph settings health on).

Examples:
  glyph steps 6200
  glyph steps 6200 31000 120000`,
		Args:          cobra.RangeArgs(1, 3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(rootOpts, cmd, func(f *OutputFormatter, svc *stats.Service) error {
				return runSteps(cmd, f, svc, args)
			})
		},
	}
}

func runSteps(cmd *cobra.Command, f *OutputFormatter, svc *stats.Service, args []string) error {
	counts := make([]int, 3)
	for i := range counts {
		raw := args[0]
		if i < len(args) {
			raw = args[i]
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return usageError(f, fmt.Sprintf("invalid step count %q: must be a whole number", raw))
		}
		counts[i] = n
	}

	ctx := commandContext(cmd)
	p, err := svc.LoadProfile(ctx)
	if err != nil {
		return fail(f, "failed to load profile", err)
	}
	if !p.HealthEnabled {
		return usageError(f, "step tracking is off: run 'glyph settings health on' first")
	}

	unlocked, err := svc.RecordSteps(ctx, counts[0], counts[1], counts[2])
	if err != nil {
		return fail(f, "failed to record steps", err)
	}
	st, err := svc.LoadStatistics(ctx)
	if err != nil {
		return fail(f, "failed to load statistics", err)
	}
	return f.Success(stepsView{
		Health:   st.HealthStats,
		Goal:     p.DailyGoalSteps,
		Unlocked: unlocked,
	})
}
