// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// GeneratedBlog is the terminal artifact of one generation run.
// Ownership transfers to the caller once returned; the pipeline keeps
// no reference to it.
type GeneratedBlog struct {
	// Title is the final post title (model-chosen or the raw topic).
	Title string `json:"title" yaml:"title"`

	// Content is the post body including the title heading and any TOC,
	// without frontmatter.
	Content string `json:"content" yaml:"content"`

	// Frontmatter is the serialized frontmatter block, delimiters included.
	Frontmatter string `json:"frontmatter" yaml:"frontmatter"`

	// FullContent is frontmatter + content, cleaned, as persisted.
	FullContent string `json:"full_content" yaml:"full_content"`

	// FilePath is where the post was written, empty if not persisted.
	FilePath string `json:"file_path,omitempty" yaml:"file_path,omitempty"`

	// Outline is the plan the body was written from.
	Outline *BlogOutline `json:"outline,omitempty" yaml:"outline,omitempty"`

	// ResearchSummary is the prose research brief used during writing.
	ResearchSummary string `json:"research_summary,omitempty" yaml:"research_summary,omitempty"`

	// Sources lists the citable references, possibly empty.
	Sources []Source `json:"sources,omitempty" yaml:"sources,omitempty"`

	// Sections maps section names (plus "introduction" and "conclusion")
	// to the generated text for that slot.
	Sections map[string]string `json:"-" yaml:"-"`

	// WordCount is len(strings.Fields(FullContent)). Whitespace
	// splitting is the defined word-count semantics throughout the
	// system; downstream consumers compare against the same measure.
	WordCount int `json:"word_count" yaml:"word_count"`

	// GenerationTime is the wall-clock duration of the run.
	GenerationTime time.Duration `json:"generation_time" yaml:"generation_time"`
}

// RunRecord is one row of the post history index.
type RunRecord struct {
	ID        string    `json:"id" yaml:"id"`
	Topic     string    `json:"topic" yaml:"topic"`
	Title     string    `json:"title" yaml:"title"`
	FilePath  string    `json:"file_path,omitempty" yaml:"file_path,omitempty"`
	WordCount int       `json:"word_count" yaml:"word_count"`
	Duration  float64   `json:"duration_seconds" yaml:"duration_seconds"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// TrendsData is the best-effort trends lookup result for one term.
type TrendsData struct {
	Term             string         `json:"term" yaml:"term"`
	InterestScore    int            `json:"interest_score" yaml:"interest_score"`
	Trending         bool           `json:"trending" yaml:"trending"`
	RelatedQueries   []string       `json:"related_queries,omitempty" yaml:"related_queries,omitempty"`
	RisingQueries    []string       `json:"rising_queries,omitempty" yaml:"rising_queries,omitempty"`
	RegionalInterest map[string]int `json:"regional_interest,omitempty" yaml:"regional_interest,omitempty"`
}
