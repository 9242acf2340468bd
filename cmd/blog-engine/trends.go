// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var trendsCmd = &cobra.Command{
	Use:   "trends [term]",
	Short: "Look up search trends for a term",
	Long: `Trends queries Google Trends for a term and prints the interest score,
related searches, and rising searches. The same data enriches enhance
runs automatically.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTrends,
}

func runTrends(cmd *cobra.Command, args []string) error {
	term := strings.Join(args, " ")
	cfg := pipelineConfig()

	data, err := newTrendsClient(cfg).Lookup(context.Background(), term)
	if err != nil {
		return err
	}

	fmt.Printf("Term:           %s\n", data.Term)
	fmt.Printf("Interest score: %d\n", data.InterestScore)
	fmt.Printf("Trending:       %t\n", data.Trending)
	if len(data.RelatedQueries) > 0 {
		fmt.Printf("Related:        %s\n", strings.Join(data.RelatedQueries, ", "))
	}
	if len(data.RisingQueries) > 0 {
		fmt.Printf("Rising:         %s\n", strings.Join(data.RisingQueries, ", "))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(trendsCmd)
}
