package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sprout-labs/sprout/internal/hello"
	"github.com/sprout-labs/sprout/internal/options"
)

func newHelloCmd(a *App) *cobra.Command {
	var specs []options.FlagSpec

	cmd := &cobra.Command{
		Use:   "hello",
		Short: "Run the demo script",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.loadConfig(cmd, specs)
			if err != nil {
				return err
			}

			dir, err := os.MkdirTemp("", "sprout-hello-*")
			if err != nil {
				return fmt.Errorf("creating demo directory: %w", err)
			}
			defer os.RemoveAll(dir)

			path, err := hello.Write(dir)
			if err != nil {
				return err
			}
			return a.launchScript(cmd, store, path, nil)
		},
	}
	specs = installOptionFlags(cmd, a)
	return cmd
}
