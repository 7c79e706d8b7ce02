package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	var ready bool
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			if ready {
				resp, err := apiClient.Ready(ctx)
				if err != nil {
					fatal("ready", err)
				}
				if flagFmt == "table" {
					headers := []string{"CHECK", "STATE"}
					var rows [][]string
					for name, state := range resp.Checks {
						rows = append(rows, []string{name, state})
					}
					formatTable(headers, rows)
					return
				}
				output(resp, resp.Status)
				return
			}

			resp, err := apiClient.Health(ctx)
			if err != nil {
				fatal("health", err)
			}
			if flagFmt == "table" {
				formatTable(
					[]string{"STATUS", "VERSION", "DATABASE", "EMBEDDINGS", "UPTIME"},
					[][]string{{
						resp.Status, resp.Version, resp.Database, resp.Embeddings,
						fmt.Sprintf("%.0fs", resp.UptimeSeconds),
					}},
				)
				return
			}
			output(resp, resp.Status)
		},
	}
	cmd.Flags().BoolVar(&ready, "ready", false, "Check readiness instead of liveness")
	return cmd
}
