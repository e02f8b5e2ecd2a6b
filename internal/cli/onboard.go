package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/mindglyph/internal/stats"
)

// onboardResult is the JSON payload of the onboard command.
type onboardResult struct {
	Username  string `json:"username"`
	Onboarded bool   `json:"onboarded"`
}

// NewOnboardCommand creates the onboard command.
func NewOnboardCommand(rootOpts *RootOptions) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Finish first-run setup",
		Long: `Pick a display name and mark first-run setup as done.

Running it again only changes the name.

Examples:
  glyph onboard --name "Ada"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(rootOpts, cmd, func(f *OutputFormatter, svc *stats.Service) error {
				ctx := commandContext(cmd)
				if err := svc.CompleteOnboarding(ctx, name); err != nil {
					return fail(f, "failed to complete onboarding", err)
				}
				p, err := svc.LoadProfile(ctx)
				if err != nil {
					return fail(f, "failed to load profile", err)
				}
				return report(f,
					onboardResult{Username: p.Username, Onboarded: true},
					fmt.Sprintf("Welcome, %s! Run 'glyph play' to start.", p.Username))
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	return cmd
}
