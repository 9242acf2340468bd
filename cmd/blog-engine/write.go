// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/blog-engine/internal/generate"
	"github.com/pdiddy/blog-engine/internal/plan"
	"github.com/pdiddy/blog-engine/internal/research"
)

var writeCmd = &cobra.Command{
	Use:   "write [topic]",
	Short: "Generate a complete blog post for a topic",
	Long: `Write runs the full pipeline: research the topic on the web, plan an
outline, write the post section by section, and assemble a markdown file
with frontmatter into the site content directory.

A saved research brief (--research) or outline (--outline) skips the
corresponding phase; --skip-research writes from the topic alone.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWrite,
}

func runWrite(cmd *cobra.Command, args []string) error {
	topic := strings.Join(args, " ")
	cfg := pipelineConfig()

	g, cleanup, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := generate.Options{}
	opts.AdditionalContext, _ = cmd.Flags().GetString("context")
	opts.TargetWordCount, _ = cmd.Flags().GetInt("words")
	opts.Tags, _ = cmd.Flags().GetStringSlice("tags")
	opts.Categories, _ = cmd.Flags().GetStringSlice("categories")
	opts.Author, _ = cmd.Flags().GetString("author")
	opts.Draft, _ = cmd.Flags().GetBool("draft")
	opts.Filename, _ = cmd.Flags().GetString("filename")
	opts.SkipResearch, _ = cmd.Flags().GetBool("skip-research")

	opts.OutputDir, _ = cmd.Flags().GetString("output-dir")
	if opts.OutputDir == "" {
		opts.OutputDir = cfg.Site.ContentDir
	}
	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		opts.OutputDir = ""
	}

	if outlinePath, _ := cmd.Flags().GetString("outline"); outlinePath != "" {
		outline, err := plan.LoadOutline(outlinePath)
		if err != nil {
			return err
		}
		opts.CustomOutline = outline
	}
	if researchPath, _ := cmd.Flags().GetString("research"); researchPath != "" {
		rs, err := research.ReadFile(researchPath)
		if err != nil {
			return err
		}
		opts.CustomResearch = rs.Summary
	}

	blog, err := g.Generate(context.Background(), topic, opts)
	if err != nil {
		return err
	}

	if blog.FilePath != "" {
		fmt.Printf("Wrote %s (%d words in %.1fs)\n", blog.FilePath, blog.WordCount, blog.GenerationTime.Seconds())
	} else {
		fmt.Print(blog.FullContent)
	}
	return nil
}

func init() {
	writeCmd.Flags().String("context", "", "additional context for research")
	writeCmd.Flags().Int("words", 0, "target word count (default from config)")
	writeCmd.Flags().StringSlice("tags", nil, "suggested tags")
	writeCmd.Flags().StringSlice("categories", nil, "suggested categories")
	writeCmd.Flags().String("author", "", "author name for frontmatter")
	writeCmd.Flags().Bool("draft", false, "mark the post as a draft")
	writeCmd.Flags().String("output-dir", "", "output directory (default: site content dir)")
	writeCmd.Flags().String("filename", "", "output filename (default: date-slug.md)")
	writeCmd.Flags().Bool("skip-research", false, "skip the research phase")
	writeCmd.Flags().String("outline", "", "path to a saved outline YAML, skips planning")
	writeCmd.Flags().String("research", "", "path to a saved research YAML, skips research")
	writeCmd.Flags().Bool("dry-run", false, "print the post instead of saving it")

	rootCmd.AddCommand(writeCmd)
}
