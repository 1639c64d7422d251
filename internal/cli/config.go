package cli

import (
	"github.com/spf13/cobra"

	"github.com/sprout-labs/sprout/internal/options"
)

func newConfigCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
		Long:  `Inspect the configuration read from ~/.sprout/config.toml and ./.sprout/config.toml.`,
	}

	var specs []options.FlagSpec
	show := &cobra.Command{
		Use:   "show",
		Short: "Show all configuration options and their effective values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showConfig(cmd, specs)
		},
	}
	specs = installOptionFlags(show, a)
	cmd.AddCommand(show)
	return cmd
}

// showConfig prints the effective configuration. specs may be nil when the
// caller has no option flags.
func (a *App) showConfig(cmd *cobra.Command, specs []options.FlagSpec) error {
	store, err := a.loadConfig(cmd, specs)
	if err != nil {
		return err
	}
	return store.Show(cmd.OutOrStdout())
}
