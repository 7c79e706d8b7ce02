package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newEnrichCmd() *cobra.Command {
	var sync bool
	cmd := &cobra.Command{
		Use:   "enrich <product-id>",
		Short: "Trigger enrichment for a product",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				fatal("enrich", fmt.Errorf("product id must be a positive integer, got %q", args[0]))
			}

			if sync {
				result, err := apiClient.Catalog.EnrichSync(ctx, id)
				if err != nil {
					fatal("enrich", err)
				}
				output(result, strconv.FormatInt(result.ProductID, 10))
				return
			}

			if err := apiClient.Catalog.Enrich(ctx, id); err != nil {
				fatal("enrich", err)
			}
			output(map[string]any{"queued": true, "product_id": id}, strconv.FormatInt(id, 10))
		},
	}
	cmd.Flags().BoolVar(&sync, "sync", false, "Run the pipeline inline and print the stored metadata")

	cmd.AddCommand(newBackfillCmd())
	return cmd
}

func newBackfillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backfill",
		Short: "Queue enrichment for all products missing an embedding",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			queued, err := apiClient.Catalog.BackfillEmbeddings(context.Background())
			if err != nil {
				fatal("backfill", err)
			}
			output(map[string]int{"queued": queued}, strconv.Itoa(queued))
		},
	}
}
