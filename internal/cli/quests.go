package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/mindglyph/internal/stats"
)

// NewQuestsCommand creates the quests command.
func NewQuestsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "quests",
		Short: "Show today's daily quests",
		Long: `Show today's daily quests and their progress.

Quests roll over at local midnight: the first look of a new day replaces
yesterday's list with fresh quests.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(rootOpts, cmd, func(f *OutputFormatter, svc *stats.Service) error {
				quests, err := svc.UpdateDailyQuests(commandContext(cmd))
				if err != nil {
					return fail(f, "failed to update quests", err)
				}
				return f.Success(questsView(quests))
			})
		},
	}
}
