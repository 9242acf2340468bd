// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate orchestrates the four-phase pipeline: research,
// plan, write, assemble. Phases run in strict sequence since each
// consumes the previous phase's output; a phase failure aborts the run
// with the phase named in the error.
package generate

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/blog-engine/internal/assemble"
	"github.com/pdiddy/blog-engine/internal/plan"
	"github.com/pdiddy/blog-engine/internal/research"
	"github.com/pdiddy/blog-engine/internal/store"
	"github.com/pdiddy/blog-engine/internal/write"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// Pipeline phases, in execution order.
const (
	PhaseResearch = "research"
	PhasePlan     = "plan"
	PhaseWrite    = "write"
	PhaseAssemble = "assemble"
)

// PhaseError names the pipeline phase that failed. No partial result
// accompanies it; the caller retries the whole run or gives up.
type PhaseError struct {
	Phase string
	Err   error
}

func (e *PhaseError) Error() string { return fmt.Sprintf("%s phase: %v", e.Phase, e.Err) }
func (e *PhaseError) Unwrap() error { return e.Err }

// Options carries per-run generation inputs.
type Options struct {
	// AdditionalContext is extra guidance passed into research.
	AdditionalContext string

	// TargetWordCount overrides the configured minimum when positive.
	TargetWordCount int

	// Tags and Categories are suggested to the planner; the outline's
	// own values win when the model supplies them.
	Tags       []string
	Categories []string

	// Author and Draft go into frontmatter.
	Author string
	Draft  bool

	// OutputDir persists the post when set; empty keeps it in memory.
	OutputDir string

	// Filename overrides the date-slug naming convention.
	Filename string

	// SkipResearch replaces the research phase with a pass-through
	// summary built from the topic and AdditionalContext.
	SkipResearch bool

	// CustomOutline bypasses planning entirely.
	CustomOutline *types.BlogOutline

	// CustomResearch bypasses research with a caller-supplied summary.
	// Sources default to empty.
	CustomResearch string
}

// Result is one async generation outcome.
type Result struct {
	Blog *types.GeneratedBlog
	Err  error
}

// Generator wires the pipeline stages together.
type Generator struct {
	Researcher *research.Agent
	Planner    *plan.Planner
	Writer     *write.Writer
	Assembler  *assemble.Assembler

	// History records completed runs when non-nil. Recording failures
	// degrade to a warning; the run itself still succeeds.
	History *store.Store

	// Config supplies defaults for word count, tags, and categories.
	Config types.BlogConfig

	// Progress receives phase updates.
	Progress io.Writer

	// Now is the clock, overridable under test. Nil means time.Now.
	Now func() time.Time
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// Generate runs the full pipeline for a topic and returns the finished
// post. On failure the returned error is a *PhaseError and no partial
// result is returned.
func (g *Generator) Generate(ctx context.Context, topic string, opts Options) (*types.GeneratedBlog, error) {
	start := g.now()
	fmt.Fprintf(g.Progress, "Starting blog generation for: %s\n", topic)

	targetWordCount := opts.TargetWordCount
	if targetWordCount <= 0 {
		targetWordCount = g.Config.MinWordCount
	}
	tags := opts.Tags
	if len(tags) == 0 {
		tags = g.Config.DefaultTags
	}
	categories := opts.Categories
	if len(categories) == 0 {
		categories = g.Config.DefaultCategories
	}

	// Phase 1: research.
	var summary string
	var sources []types.Source
	switch {
	case opts.CustomResearch != "":
		summary = opts.CustomResearch
		fmt.Fprintf(g.Progress, "Using provided custom research\n")
	case opts.SkipResearch:
		summary = fmt.Sprintf("Topic: %s\n\n%s", topic, opts.AdditionalContext)
		fmt.Fprintf(g.Progress, "Skipping research phase\n")
	default:
		fmt.Fprintf(g.Progress, "Phase 1: Researching topic...\n")
		rs, err := g.Researcher.Research(ctx, topic, opts.AdditionalContext, nil)
		if err != nil {
			return nil, &PhaseError{Phase: PhaseResearch, Err: err}
		}
		summary = rs.Summary
		sources = rs.Sources
		fmt.Fprintf(g.Progress, "Research complete: %d sources found\n", len(sources))
	}

	if err := ctx.Err(); err != nil {
		return nil, &PhaseError{Phase: PhasePlan, Err: err}
	}

	// Phase 2: planning.
	var outline *types.BlogOutline
	if opts.CustomOutline != nil {
		o := *opts.CustomOutline
		outline = &o
		fmt.Fprintf(g.Progress, "Using provided custom outline\n")
	} else {
		fmt.Fprintf(g.Progress, "Phase 2: Creating outline...\n")
		result, err := g.Planner.Plan(ctx, topic, summary, targetWordCount, tags, categories)
		if err != nil {
			return nil, &PhaseError{Phase: PhasePlan, Err: err}
		}
		outline = result.Outline
	}
	if outline.TargetWordCount <= 0 {
		outline.TargetWordCount = targetWordCount
	}
	if len(outline.Tags) == 0 {
		outline.Tags = tags
	}
	if len(outline.Categories) == 0 {
		outline.Categories = categories
	}

	if err := ctx.Err(); err != nil {
		return nil, &PhaseError{Phase: PhaseWrite, Err: err}
	}

	// Phase 3: writing.
	fmt.Fprintf(g.Progress, "Phase 3: Writing content...\n")
	post, err := g.Writer.Write(ctx, outline, summary, sources)
	if err != nil {
		return nil, &PhaseError{Phase: PhaseWrite, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return nil, &PhaseError{Phase: PhaseAssemble, Err: err}
	}

	// Phase 4: assembly.
	date := g.now()
	blog := g.Assembler.Assemble(post.Body, outline, sources, assemble.Options{
		Author: opts.Author,
		Draft:  opts.Draft,
		Date:   date,
	})
	blog.ResearchSummary = summary
	blog.Sections = post.Sections

	if opts.OutputDir != "" {
		path, err := assemble.Save(blog, opts.OutputDir, opts.Filename, date)
		if err != nil {
			return nil, &PhaseError{Phase: PhaseAssemble, Err: err}
		}
		fmt.Fprintf(g.Progress, "Saved to: %s\n", path)
	}

	blog.GenerationTime = g.now().Sub(start)
	fmt.Fprintf(g.Progress, "Blog generation complete in %.2fs\n", blog.GenerationTime.Seconds())

	g.record(ctx, topic, blog)
	return blog, nil
}

// GenerateAsync runs Generate in a goroutine and delivers exactly one
// result on the returned channel. The pipeline itself is unchanged:
// phases stay strictly sequential, only the caller stops blocking.
func (g *Generator) GenerateAsync(ctx context.Context, topic string, opts Options) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		blog, err := g.Generate(ctx, topic, opts)
		ch <- Result{Blog: blog, Err: err}
	}()
	return ch
}

// ResearchOnly runs just the research phase.
func (g *Generator) ResearchOnly(ctx context.Context, topic, additionalContext string) (*types.ResearchSummary, error) {
	rs, err := g.Researcher.Research(ctx, topic, additionalContext, nil)
	if err != nil {
		return nil, &PhaseError{Phase: PhaseResearch, Err: err}
	}
	return rs, nil
}

// OutlineOnly runs just the planning phase. An empty researchSummary is
// replaced with a bare topic statement.
func (g *Generator) OutlineOnly(ctx context.Context, topic, researchSummary string, targetWordCount int) (*types.BlogOutline, error) {
	if researchSummary == "" {
		researchSummary = fmt.Sprintf("Topic: %s", topic)
	}
	result, err := g.Planner.Plan(ctx, topic, researchSummary, targetWordCount, g.Config.DefaultTags, g.Config.DefaultCategories)
	if err != nil {
		return nil, &PhaseError{Phase: PhasePlan, Err: err}
	}
	return result.Outline, nil
}

// record appends the run to the history store, best-effort.
func (g *Generator) record(ctx context.Context, topic string, blog *types.GeneratedBlog) {
	if g.History == nil {
		return
	}
	_, err := g.History.Record(ctx, types.RunRecord{
		Topic:     topic,
		Title:     blog.Title,
		FilePath:  blog.FilePath,
		WordCount: blog.WordCount,
		Duration:  blog.GenerationTime.Seconds(),
	})
	if err != nil {
		fmt.Fprintf(g.Progress, "warning: recording run history: %v\n", err)
	}
}
