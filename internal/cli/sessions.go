package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/mindglyph/internal/stats"
)

// NewSessionsCommand creates the sessions command.
func NewSessionsCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Show recent game sessions",
		Long: `Show the most recent game sessions, oldest first.

Examples:
  glyph sessions
  glyph sessions --limit 3 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(rootOpts, cmd, func(f *OutputFormatter, svc *stats.Service) error {
				sessions, err := svc.RecentSessions(commandContext(cmd), limit)
				if err != nil {
					return fail(f, "failed to load sessions", err)
				}
				return f.Success(sessionsView(sessions))
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", stats.DefaultRecentLimit, "number of sessions to show")
	return cmd
}
