package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/mindglyph/internal/model"
	"github.com/roach88/mindglyph/internal/stats"
)

// NewAchievementsCommand creates the achievements command.
func NewAchievementsCommand(rootOpts *RootOptions) *cobra.Command {
	var unlockedOnly bool

	cmd := &cobra.Command{
		Use:           "achievements",
		Short:         "Show the achievement catalog",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(rootOpts, cmd, func(f *OutputFormatter, svc *stats.Service) error {
				var (
					list []model.Achievement
					err  error
				)
				if unlockedOnly {
					list, err = svc.UnlockedAchievements(commandContext(cmd))
				} else {
					var st model.UserStatistics
					st, err = svc.LoadStatistics(commandContext(cmd))
					list = st.Achievements
				}
				if err != nil {
					return fail(f, "failed to load achievements", err)
				}
				return f.Success(achievementsView(list))
			})
		},
	}

	cmd.Flags().BoolVar(&unlockedOnly, "unlocked", false, "only show unlocked achievements")
	return cmd
}
