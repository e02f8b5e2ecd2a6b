package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/mindglyph/internal/stats"
)

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		account bool
		yes     bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase saved progress",
		Long: `Erase the profile, statistics, quests and achievements.

With --account the first-run setup flag is cleared too, so the next
launch starts from onboarding. Nothing is erased without --yes.

Examples:
  glyph reset --yes
  glyph reset --account --yes`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(rootOpts, cmd, func(f *OutputFormatter, svc *stats.Service) error {
				if !yes {
					return usageError(f, "refusing to erase progress without --yes")
				}
				ctx := commandContext(cmd)
				if account {
					if err := svc.DeleteAccount(ctx); err != nil {
						return fail(f, "failed to delete account", err)
					}
					return report(f, map[string]bool{"accountDeleted": true}, "Account deleted.")
				}
				if err := svc.ResetAllData(ctx); err != nil {
					return fail(f, "failed to reset progress", err)
				}
				return report(f, map[string]bool{"reset": true}, "Progress reset.")
			})
		},
	}

	cmd.Flags().BoolVar(&account, "account", false, "also clear first-run setup")
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
