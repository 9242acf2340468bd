// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/blog-engine/internal/plan"
	"github.com/pdiddy/blog-engine/internal/research"
)

var outlineCmd = &cobra.Command{
	Use:   "outline [topic]",
	Short: "Create a blog outline without writing the post",
	Long: `Outline runs only the planning phase and prints the result as markdown.
Save it with --output, edit it, and feed it back to write --outline.
An existing outline can be reworked against feedback with --refine.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runOutline,
}

func runOutline(cmd *cobra.Command, args []string) error {
	topic := strings.Join(args, " ")
	cfg := pipelineConfig()

	g, cleanup, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	researchSummary := ""
	if researchPath, _ := cmd.Flags().GetString("research"); researchPath != "" {
		rs, err := research.ReadFile(researchPath)
		if err != nil {
			return err
		}
		researchSummary = rs.Summary
	}

	words, _ := cmd.Flags().GetInt("words")
	outline, err := g.OutlineOnly(context.Background(), topic, researchSummary, words)
	if err != nil {
		return err
	}

	if feedback, _ := cmd.Flags().GetString("refine"); feedback != "" {
		result, err := g.Planner.Refine(context.Background(), outline, feedback)
		if err != nil {
			return err
		}
		outline = result.Outline
	}

	output, _ := cmd.Flags().GetString("output")
	if output != "" {
		if err := plan.WriteOutline(output, outline); err != nil {
			return err
		}
		fmt.Printf("Saved outline to %s (%d sections)\n", output, len(outline.Sections))
		return nil
	}

	fmt.Print(outline.Markdown())
	return nil
}

func init() {
	outlineCmd.Flags().String("research", "", "path to a saved research YAML")
	outlineCmd.Flags().Int("words", 0, "target word count (default from config)")
	outlineCmd.Flags().String("refine", "", "feedback to refine the outline with")
	outlineCmd.Flags().String("output", "", "save the outline to a YAML file")

	rootCmd.AddCommand(outlineCmd)
}
