package cli

import (
	"github.com/spf13/cobra"
)

// NewProfileCommand creates the profile command.
func NewProfileCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the player profile",
		Long: `Show the player's name, totals, achievement and quest counts and
health bar.

Examples:
  glyph profile
  glyph profile --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfile(rootOpts, cmd)
		},
	}
}

func runProfile(opts *RootOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	b, err := opts.openBackend()
	if err != nil {
		return err
	}
	defer b.Close()

	sum, err := b.service.Summary(commandContext(cmd))
	if err != nil {
		return fail(f, "failed to load profile", err)
	}
	return f.Success(profileView{Summary: sum})
}
