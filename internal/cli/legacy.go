package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newLegacyCmds returns the hidden pre-rename spellings of commands. Each
// prints where the command moved and then runs it with no arguments.
func newLegacyCmds(a *App) []*cobra.Command {
	return []*cobra.Command{
		{
			Use:    "clear_cache",
			Short:  "Deprecated: use cache clear",
			Hidden: true,
			Args:   cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				movedTo(cmd, "cache clear")
				return a.clearCache(cmd)
			},
		},
		{
			Use:    "show_config",
			Short:  "Deprecated: use config show",
			Hidden: true,
			Args:   cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				movedTo(cmd, "config show")
				return a.showConfig(cmd, nil)
			},
		},
	}
}

func movedTo(cmd *cobra.Command, replacement string) {
	fmt.Fprintln(cmd.OutOrStdout(), DeprecatedStyle.Render(fmt.Sprintf("Use %q instead.", replacement)))
}
