// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plan turns a research brief into a structured blog outline.
//
// Planning is two model calls: a free-form outline in prose, then a
// low-temperature structuring call that converts the prose to JSON.
// When structuring fails the planner falls back to a deterministic
// skeleton outline instead of failing the run.
package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/blog-engine/internal/llm"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// Outcome tags how the structured outline was obtained.
type Outcome string

const (
	// OutcomeStructured means the model's JSON parsed cleanly.
	OutcomeStructured Outcome = "structured"

	// OutcomeFallback means structuring failed and the deterministic
	// skeleton was used.
	OutcomeFallback Outcome = "fallback"
)

// Result is the planner's output: an outline that always has at least
// one section, and how it was obtained.
type Result struct {
	Outline *types.BlogOutline
	Outcome Outcome
}

// Planner runs the planning stage.
type Planner struct {
	// LLM generates and structures outlines.
	LLM llm.Client

	// Config supplies the default word count.
	Config types.BlogConfig

	// Progress receives stage updates and fallback warnings.
	Progress io.Writer
}

// Plan creates an outline for a topic. targetWordCount of 0 means the
// configured minimum. The returned outline never has zero sections.
func (p *Planner) Plan(ctx context.Context, topic, researchSummary string, targetWordCount int, suggestedTags, suggestedCategories []string) (*Result, error) {
	fmt.Fprintf(p.Progress, "Creating outline for: %s\n", topic)

	wordCount := targetWordCount
	if wordCount <= 0 {
		wordCount = p.Config.MinWordCount
	}
	if wordCount <= 0 {
		wordCount = 1500
	}

	raw, err := p.LLM.Generate(ctx, llm.Request{
		System: llm.SystemPlanner,
		Prompt: llm.OutlinePrompt(topic, researchSummary, wordCount),
	})
	if err != nil {
		return nil, fmt.Errorf("generating outline: %w", err)
	}

	result := p.structure(ctx, raw, topic, wordCount, suggestedTags, suggestedCategories)
	fmt.Fprintf(p.Progress, "Created outline with %d sections\n", len(result.Outline.Sections))
	return result, nil
}

// Refine reworks an existing outline against feedback, re-running the
// structuring pass over the model's revision.
func (p *Planner) Refine(ctx context.Context, outline *types.BlogOutline, feedback string) (*Result, error) {
	prompt := fmt.Sprintf(`Refine the following blog outline based on the feedback provided:

Current Outline:
%s

Feedback:
%s

Provide an improved outline that addresses the feedback while maintaining the original structure where appropriate.`, outline.Markdown(), feedback)

	raw, err := p.LLM.Generate(ctx, llm.Request{System: llm.SystemPlanner, Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("refining outline: %w", err)
	}

	return p.structure(ctx, raw, outline.Title, outline.TargetWordCount, outline.Tags, outline.Categories), nil
}

// outlineJSON mirrors the JSON shape requested by the structuring
// prompt. Nesting below subsections has no field to land in and is
// dropped during decoding.
type outlineJSON struct {
	Title           string   `json:"title"`
	MetaDescription string   `json:"meta_description"`
	LayoutType      string   `json:"layout_type"`
	Tags            []string `json:"tags"`
	Categories      []string `json:"categories"`
	SEOKeywords     []string `json:"seo_keywords"`
	Sections        []struct {
		Title       string   `json:"title"`
		KeyPoints   []string `json:"key_points"`
		Subsections []struct {
			Title     string   `json:"title"`
			KeyPoints []string `json:"key_points"`
		} `json:"subsections"`
	} `json:"sections"`
}

// structure converts a free-form outline to a BlogOutline. Any failure
// on this path (model error, bad JSON, no sections) produces the
// fallback outline with a warning; it never returns an error.
func (p *Planner) structure(ctx context.Context, raw, topic string, wordCount int, suggestedTags, suggestedCategories []string) *Result {
	resp, err := p.LLM.Generate(ctx, llm.Request{Prompt: llm.StructurePrompt(raw), Temperature: 0.3})
	if err != nil {
		fmt.Fprintf(p.Progress, "warning: outline structuring failed: %v\n", err)
		return p.fallback(raw, topic, wordCount, suggestedTags, suggestedCategories)
	}

	var data outlineJSON
	if err := json.Unmarshal([]byte(llm.StripFences(resp)), &data); err != nil {
		fmt.Fprintf(p.Progress, "warning: failed to parse structured outline: %v\n", err)
		return p.fallback(raw, topic, wordCount, suggestedTags, suggestedCategories)
	}
	if len(data.Sections) == 0 {
		fmt.Fprintf(p.Progress, "warning: structured outline has no sections\n")
		return p.fallback(raw, topic, wordCount, suggestedTags, suggestedCategories)
	}

	sections := make([]types.Section, 0, len(data.Sections))
	for _, s := range data.Sections {
		section := types.Section{Title: s.Title, KeyPoints: s.KeyPoints}
		for _, sub := range s.Subsections {
			section.Subsections = append(section.Subsections, types.Subsection{
				Title:     sub.Title,
				KeyPoints: sub.KeyPoints,
			})
		}
		sections = append(sections, section)
	}

	title := data.Title
	if title == "" {
		title = topic
	}
	layout := types.LayoutType(data.LayoutType)
	if !types.ValidLayout(layout) {
		layout = types.LayoutDeepDive
	}

	return &Result{
		Outcome: OutcomeStructured,
		Outline: &types.BlogOutline{
			Title:           title,
			MetaDescription: data.MetaDescription,
			Sections:        sections,
			Tags:            union(data.Tags, suggestedTags),
			Categories:      union(data.Categories, suggestedCategories),
			TargetWordCount: wordCount,
			SEOKeywords:     data.SEOKeywords,
			Layout:          layout,
			RawOutline:      raw,
		},
	}
}

// fallback builds the deterministic skeleton outline used when
// structuring fails. The raw prose outline is preserved for debugging.
func (p *Planner) fallback(raw, topic string, wordCount int, suggestedTags, suggestedCategories []string) *Result {
	tags := suggestedTags
	if len(tags) == 0 {
		tags = []string{strings.ReplaceAll(strings.ToLower(topic), " ", "-")}
	}
	categories := suggestedCategories
	if len(categories) == 0 {
		categories = []string{"general"}
	}

	return &Result{
		Outcome: OutcomeFallback,
		Outline: &types.BlogOutline{
			Title:           topic,
			MetaDescription: fmt.Sprintf("A comprehensive guide to %s.", topic),
			Sections: []types.Section{
				{Title: "Introduction", KeyPoints: []string{"Set the context"}},
				{Title: "Main Content", KeyPoints: []string{"Core information"}},
				{Title: "Conclusion", KeyPoints: []string{"Summarize key points"}},
			},
			Tags:            tags,
			Categories:      categories,
			TargetWordCount: wordCount,
			Layout:          types.LayoutDeepDive,
			RawOutline:      raw,
		},
	}
}

// union merges two set-like lists, first occurrence wins.
func union(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, s := range append(append([]string{}, a...), b...) {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
