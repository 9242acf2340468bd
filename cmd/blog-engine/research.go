// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/blog-engine/internal/research"
)

var researchCmd = &cobra.Command{
	Use:   "research [topic]",
	Short: "Research a topic and print or save the brief",
	Long: `Research searches the web for a topic, scrapes the top results, and
synthesizes a research brief. Save it with --output and feed it to a
later write run with --research.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResearch,
}

func runResearch(cmd *cobra.Command, args []string) error {
	topic := strings.Join(args, " ")
	cfg := pipelineConfig()

	g, cleanup, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	additionalContext, _ := cmd.Flags().GetString("context")
	rs, err := g.ResearchOnly(context.Background(), topic, additionalContext)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output != "" {
		if err := research.WriteFile(output, rs); err != nil {
			return err
		}
		fmt.Printf("Saved research to %s (%d sources)\n", output, len(rs.Sources))
		return nil
	}

	fmt.Println(rs.Summary)
	if len(rs.Sources) > 0 {
		fmt.Println("\nSources:")
		for i, s := range rs.Sources {
			fmt.Printf("%d. %s - %s\n", i+1, s.Title, s.URL)
		}
	}
	return nil
}

func init() {
	researchCmd.Flags().String("context", "", "additional context for research")
	researchCmd.Flags().String("output", "", "save the research brief to a YAML file")

	rootCmd.AddCommand(researchCmd)
}
