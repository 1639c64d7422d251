package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sprout-labs/sprout/internal/cache"
)

func newCacheCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the on-disk cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear the on-disk cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.clearCache(cmd)
		},
	})
	return cmd
}

func (a *App) clearCache(cmd *cobra.Command) error {
	dir, err := a.deps.CacheDir()
	if err != nil {
		return fmt.Errorf("resolving cache directory: %w", err)
	}
	removed, err := cache.Clear(dir)
	if err != nil {
		return err
	}
	if removed {
		fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render(fmt.Sprintf("Cleared directory %s.", dir)))
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Nothing to clear at %s.\n", dir)
	}
	return nil
}
