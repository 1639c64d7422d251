package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sprout-labs/sprout/internal/branding"
)

func newDocsCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "docs",
		Short: "Show help in browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Showing help page in browser...")
			if err := a.deps.OpenBrowser(branding.DocsURL()); err != nil {
				return fmt.Errorf("opening %s: %w", branding.DocsURL(), err)
			}
			return nil
		},
	}
}
