package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"climate-server/internal/app"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			err = app.Run(cmd.Context(), cfg)
			slog.Info("shutting down")
			return err
		},
	}
}
