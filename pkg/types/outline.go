// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// LayoutType classifies the editorial shape of a post.
type LayoutType string

const (
	LayoutDeepDive   LayoutType = "deep-dive"
	LayoutNarrative  LayoutType = "narrative"
	LayoutAnalytical LayoutType = "analytical"
	LayoutHowTo      LayoutType = "how-to"
	LayoutOpinion    LayoutType = "opinion"
	LayoutListicle   LayoutType = "listicle"
)

// ValidLayout reports whether l is one of the known layout types.
func ValidLayout(l LayoutType) bool {
	switch l {
	case LayoutDeepDive, LayoutNarrative, LayoutAnalytical, LayoutHowTo, LayoutOpinion, LayoutListicle:
		return true
	}
	return false
}

// Subsection is a second-level outline unit. It deliberately has no
// subsections field: outline nesting is capped at one level, and the
// cap is enforced by the type rather than by convention.
type Subsection struct {
	// Title is the subsection heading.
	Title string `json:"title" yaml:"title"`

	// KeyPoints lists the points the subsection should cover, in order.
	KeyPoints []string `json:"key_points,omitempty" yaml:"key_points,omitempty"`
}

// Section is a top-level outline unit.
type Section struct {
	// Title is the section heading.
	Title string `json:"title" yaml:"title"`

	// KeyPoints lists the points the section should cover, in order.
	KeyPoints []string `json:"key_points,omitempty" yaml:"key_points,omitempty"`

	// Subsections holds at most one level of nested structure.
	Subsections []Subsection `json:"subsections,omitempty" yaml:"subsections,omitempty"`

	// EstimatedWords is an advisory length for the section, 0 if unset.
	EstimatedWords int `json:"estimated_words,omitempty" yaml:"estimated_words,omitempty"`
}

// BlogOutline is the structured plan produced by the planning phase.
// After planning completes, Sections is never empty: the fallback path
// guarantees at least Introduction / Main Content / Conclusion.
type BlogOutline struct {
	// Title is the post title.
	Title string `json:"title" yaml:"title"`

	// MetaDescription is the SEO description, ideally 150-160 chars.
	MetaDescription string `json:"meta_description" yaml:"meta_description"`

	// Sections lists the body sections in writing order.
	Sections []Section `json:"sections" yaml:"sections"`

	// Tags is a set-like list: deduplicated, order not significant.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Categories is a set-like list, like Tags.
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`

	// TargetWordCount is the caller's word budget. The planner never
	// replaces it with a model suggestion.
	TargetWordCount int `json:"target_word_count" yaml:"target_word_count"`

	// SEOKeywords lists search phrases the post should rank for.
	SEOKeywords []string `json:"seo_keywords,omitempty" yaml:"seo_keywords,omitempty"`

	// Layout is the recommended editorial shape.
	Layout LayoutType `json:"layout_type" yaml:"layout_type"`

	// RawOutline is the free-form model output the outline was parsed
	// from, kept for debugging and refinement.
	RawOutline string `json:"-" yaml:"-"`
}

// Markdown renders the outline as a human-readable markdown document.
func (o *BlogOutline) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", o.Title)
	fmt.Fprintf(&b, "**Meta Description:** %s\n\n", o.MetaDescription)
	fmt.Fprintf(&b, "**Layout:** %s\n", o.Layout)
	fmt.Fprintf(&b, "**Tags:** %s\n", strings.Join(o.Tags, ", "))
	fmt.Fprintf(&b, "**Categories:** %s\n", strings.Join(o.Categories, ", "))
	fmt.Fprintf(&b, "**Target Word Count:** %d\n\n", o.TargetWordCount)
	b.WriteString("## Outline\n\n")

	for i, s := range o.Sections {
		fmt.Fprintf(&b, "### %d. %s\n", i+1, s.Title)
		for _, p := range s.KeyPoints {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		for j, sub := range s.Subsections {
			fmt.Fprintf(&b, "#### %d.%d. %s\n", i+1, j+1, sub.Title)
			for _, p := range sub.KeyPoints {
				fmt.Fprintf(&b, "  - %s\n", p)
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
