// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package write drafts the post body from an outline and a research
// brief. Sections are written sequentially so each call sees a trailing
// window of what came before, which keeps transitions coherent without
// blowing the context budget.
package write

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/blog-engine/internal/cite"
	"github.com/pdiddy/blog-engine/internal/llm"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// Context windows passed to the model. Previous content is taken from
// the tail, the research brief from the head.
const (
	previousWindow = 1500
	researchWindow = 2000
)

// Post is the writer's output: the body without title heading or
// frontmatter. Assembly adds those.
type Post struct {
	// Title is carried over from the outline.
	Title string

	// Body is the joined markdown body: introduction, headed sections,
	// conclusion, and references when enabled.
	Body string

	// Sections maps section titles (plus "introduction" and
	// "conclusion") to the text written for that slot.
	Sections map[string]string

	// WordCount is len(strings.Fields(Body)).
	WordCount int
}

// Writer runs the writing stage.
type Writer struct {
	// LLM drafts the prose.
	LLM llm.Client

	// Config controls citations and word-count defaults.
	Config types.BlogConfig

	// Progress receives stage updates.
	Progress io.Writer
}

// Write drafts a complete post body from the outline. The word budget
// is split evenly across the outline sections plus the introduction
// and conclusion, using integer division; the remainder is simply not
// assigned to any section.
func (w *Writer) Write(ctx context.Context, outline *types.BlogOutline, researchSummary string, sources []types.Source) (*Post, error) {
	fmt.Fprintf(w.Progress, "Writing blog post: %s\n", outline.Title)

	numSections := len(outline.Sections) + 2
	wordsPerSection := outline.TargetWordCount / numSections

	sections := make(map[string]string, numSections)
	var parts []string

	fmt.Fprintf(w.Progress, "Writing introduction...\n")
	intro, err := w.introduction(ctx, outline)
	if err != nil {
		return nil, fmt.Errorf("writing introduction: %w", err)
	}
	sections["introduction"] = intro
	parts = append(parts, intro)

	previous := intro
	for i, section := range outline.Sections {
		fmt.Fprintf(w.Progress, "Writing section %d/%d: %s\n", i+1, len(outline.Sections), section.Title)

		content, err := w.section(ctx, outline.Title, section, researchSummary, previous, wordsPerSection)
		if err != nil {
			return nil, fmt.Errorf("writing section %q: %w", section.Title, err)
		}
		sections[section.Title] = content
		parts = append(parts, fmt.Sprintf("\n## %s\n\n%s", section.Title, content))
		previous += content
	}

	fmt.Fprintf(w.Progress, "Writing conclusion...\n")
	conclusion, err := w.conclusion(ctx, outline)
	if err != nil {
		return nil, fmt.Errorf("writing conclusion: %w", err)
	}
	sections["conclusion"] = conclusion
	parts = append(parts, fmt.Sprintf("\n## Conclusion\n\n%s", conclusion))

	if w.Config.IncludeCitations && len(sources) > 0 {
		parts = append(parts, "\n"+cite.References(sources, cite.StyleNumbered))
	}

	body := strings.Join(parts, "\n")
	post := &Post{
		Title:     outline.Title,
		Body:      body,
		Sections:  sections,
		WordCount: len(strings.Fields(body)),
	}
	fmt.Fprintf(w.Progress, "Blog post complete: %d words\n", post.WordCount)
	return post, nil
}

// SectionOnly drafts a single standalone section outside a full run,
// for patching an existing post. targetWords of 0 means 500.
func (w *Writer) SectionOnly(ctx context.Context, sectionTitle string, keyPoints []string, sectionContext string, targetWords int) (string, error) {
	if targetWords <= 0 {
		targetWords = 500
	}

	var points strings.Builder
	for _, p := range keyPoints {
		fmt.Fprintf(&points, "- %s\n", p)
	}

	prompt := fmt.Sprintf(`Write a detailed blog section with the following details:

**Section Title:** %s

**Key Points to Cover:**
%s
**Context:**
%s

**Target Length:** %d words

Write engaging, informative content using proper markdown formatting.`, sectionTitle, points.String(), sectionContext, targetWords)

	return w.LLM.Generate(ctx, llm.Request{System: llm.SystemWriter, Prompt: prompt})
}

func (w *Writer) introduction(ctx context.Context, outline *types.BlogOutline) (string, error) {
	var b strings.Builder
	for _, s := range outline.Sections {
		fmt.Fprintf(&b, "- %s: %s\n", s.Title, strings.Join(head(s.KeyPoints, 3), ", "))
	}

	return w.LLM.Generate(ctx, llm.Request{
		System: llm.SystemWriter,
		Prompt: llm.IntroductionPrompt(outline.Title, outline.Title, strings.TrimRight(b.String(), "\n")),
	})
}

func (w *Writer) section(ctx context.Context, title string, section types.Section, researchSummary, previous string, targetWords int) (string, error) {
	lines := []string{fmt.Sprintf("Key points: %s", strings.Join(section.KeyPoints, ", "))}
	for _, sub := range section.Subsections {
		lines = append(lines, fmt.Sprintf("  - Subsection: %s", sub.Title))
	}

	return w.LLM.Generate(ctx, llm.Request{
		System: llm.SystemWriter,
		Prompt: llm.SectionPrompt(llm.SectionInput{
			Title:           title,
			SectionTitle:    section.Title,
			SectionOutline:  strings.Join(lines, "\n"),
			PreviousContent: tail(previous, previousWindow),
			ResearchNotes:   leading(researchSummary, researchWindow),
			WordCount:       targetWords,
		}),
	})
}

func (w *Writer) conclusion(ctx context.Context, outline *types.BlogOutline) (string, error) {
	var points []string
	for _, s := range outline.Sections {
		points = append(points, fmt.Sprintf("- %s", s.Title))
	}

	return w.LLM.Generate(ctx, llm.Request{
		System: llm.SystemWriter,
		Prompt: llm.ConclusionPrompt(outline.Title, outline.Title, strings.Join(points, "\n")),
	})
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// tail returns the last n bytes of s.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// leading returns the first n bytes of s.
func leading(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
