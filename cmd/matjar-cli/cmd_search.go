package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matjarly/matjar/client"
)

func newSearchCmd() *cobra.Command {
	var limit int
	var offset int
	var maxPrice float64
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the product catalog",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			opts := &client.SearchOptions{Limit: limit, Offset: offset, MaxPrice: maxPrice}
			results, err := apiClient.Search.Query(ctx, args[0], opts)
			if err != nil {
				fatal("search", err)
			}
			if flagFmt == "table" {
				printResultTable(results)
				return
			}
			output(results, "")
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results")
	cmd.Flags().IntVar(&offset, "offset", 0, "Pagination offset")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "Only products at or below this price")
	return cmd
}

func printResultTable(results []client.RankedProduct) {
	headers := []string{"ID", "NAME", "PRICE", "RANK", "SEMANTIC", "KEYWORD"}
	var rows [][]string
	for _, r := range results {
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.ID),
			r.Name,
			fmt.Sprintf("%.2f", r.Price),
			fmt.Sprintf("%.4f", r.FinalRank),
			fmt.Sprintf("%.4f", r.SemanticScore),
			fmt.Sprintf("%.4f", r.KeywordScore),
		})
	}
	formatTable(headers, rows)
}
