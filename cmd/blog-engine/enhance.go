// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/blog-engine/internal/enhance"
	"github.com/pdiddy/blog-engine/internal/frontmatter"
	"github.com/pdiddy/blog-engine/internal/llm"
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance [path]",
	Short: "Improve an existing post or a directory of posts",
	Long: `Enhance reworks existing markdown posts: expands thin sections, refreshes
the meta description and tags against current search trends, and repairs
frontmatter. The original file is backed up before it is overwritten.

Path may be a single markdown file or a directory; directories are
processed file by file with --pattern.`,
	Args: cobra.ExactArgs(1),
	RunE: runEnhance,
}

func runEnhance(cmd *cobra.Command, args []string) error {
	path := args[0]
	cfg := pipelineConfig()

	model, err := llm.NewClient(cfg.Research.ModelConfig)
	if err != nil {
		return err
	}
	fm, err := frontmatter.New(cfg.Site.FrontmatterFormat, cfg.Site.DefaultFrontmatter)
	if err != nil {
		return err
	}

	e := &enhance.Enhancer{
		LLM:         model,
		Trends:      newTrendsClient(cfg),
		Frontmatter: fm,
		Config:      cfg.Blog,
		Progress:    os.Stderr,
	}

	opts := enhance.DefaultOptions()
	opts.TargetWordCount, _ = cmd.Flags().GetInt("words")
	opts.BackupDir, _ = cmd.Flags().GetString("backup-dir")
	if noSEO, _ := cmd.Flags().GetBool("no-seo"); noSEO {
		opts.ImproveSEO = false
	}
	if noTrends, _ := cmd.Flags().GetBool("no-trends"); noTrends {
		opts.UseTrends = false
	}
	if noFM, _ := cmd.Flags().GetBool("no-frontmatter"); noFM {
		opts.FixFrontmatter = false
	}
	if noBackup, _ := cmd.Flags().GetBool("no-backup"); noBackup {
		opts.Backup = false
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if info.IsDir() {
		pattern, _ := cmd.Flags().GetString("pattern")
		results, err := e.EnhanceDir(context.Background(), path, pattern, opts)
		if err != nil {
			return err
		}
		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
				continue
			}
			fmt.Printf("%s: %d -> %d words\n", r.FilePath, r.OriginalWordCount, r.EnhancedWordCount)
		}
		if failed > 0 {
			return fmt.Errorf("%d post(s) failed enhancement", failed)
		}
		return nil
	}

	result, err := e.Enhance(context.Background(), path, opts)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d -> %d words\n", result.FilePath, result.OriginalWordCount, result.EnhancedWordCount)
	for _, improvement := range result.Improvements {
		fmt.Printf("  - %s\n", improvement)
	}
	return nil
}

func init() {
	enhanceCmd.Flags().Int("words", 0, "target word count (default from config)")
	enhanceCmd.Flags().String("pattern", "*.md", "glob pattern for directory mode")
	enhanceCmd.Flags().String("backup-dir", "", "backup directory (default: .backup next to the post)")
	enhanceCmd.Flags().Bool("no-seo", false, "skip meta description regeneration")
	enhanceCmd.Flags().Bool("no-trends", false, "skip the trends lookup")
	enhanceCmd.Flags().Bool("no-frontmatter", false, "skip frontmatter repairs")
	enhanceCmd.Flags().Bool("no-backup", false, "skip the backup copy")

	rootCmd.AddCommand(enhanceCmd)
}
