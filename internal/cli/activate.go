package cli

import (
	"github.com/spf13/cobra"
)

func newActivateCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activate",
		Short: "Activate this installation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := a.credentials(cmd)
			if err != nil {
				return err
			}
			_, err = creds.Activate()
			return err
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset activation credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := a.credentials(cmd)
			if err != nil {
				return err
			}
			return creds.Reset()
		},
	})
	return cmd
}
