package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"climate-server/internal/app"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Open the store and verify the measurement/station schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			if err := app.Check(cmd.Context(), cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "store ok")
			return nil
		},
	}
}
