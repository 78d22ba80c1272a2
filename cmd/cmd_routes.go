package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"climate-server/internal/modules/climate/controller"
)

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the API route directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "GET\t/\troute directory")
			for _, r := range controller.Routes() {
				fmt.Fprintf(tw, "GET\t%s\t%s\n", r.Path, r.Description)
			}
			fmt.Fprintln(tw, "GET\t/healthz\tstore connectivity check")
			return tw.Flush()
		},
	}
}
