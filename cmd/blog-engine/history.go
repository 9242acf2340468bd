// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/blog-engine/internal/store"
	"github.com/pdiddy/blog-engine/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past generation runs",
	Long: `History lists recent generation runs from the local index: topic, title,
word count, duration, and where the post was written.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()

	s, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	if keep, _ := cmd.Flags().GetInt("prune"); keep > 0 {
		removed, err := s.Prune(context.Background(), keep)
		if err != nil {
			return err
		}
		fmt.Printf("Pruned %d run(s), kept the newest %d.\n", removed, keep)
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	topic, _ := cmd.Flags().GetString("topic")

	var runs []types.RunRecord
	if topic != "" {
		runs, err = s.ByTopic(context.Background(), topic, limit)
	} else {
		runs, err = s.List(context.Background(), limit)
	}
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-19s  %-40s  %7s  %8s  %s\n",
		"Date", "Title", "Words", "Duration", "File")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, r := range runs {
		title := r.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-19s  %-40s  %7d  %7.1fs  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"), title, r.WordCount, r.Duration, r.FilePath)
	}
	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum runs to list (0 = use default)")
	historyCmd.Flags().String("topic", "", "filter by topic substring")
	historyCmd.Flags().Int("prune", 0, "delete all but the newest N runs")

	rootCmd.AddCommand(historyCmd)
}
