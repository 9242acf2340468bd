// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SearchResult is a single web search hit. Identity key is the URL;
// duplicates across query batches are collapsed first-seen-wins.
type SearchResult struct {
	// Title is the result title as returned by the search backend.
	Title string `json:"title" yaml:"title"`

	// URL is the result link and the deduplication key.
	URL string `json:"url" yaml:"url"`

	// Snippet is the short text excerpt shown with the result.
	Snippet string `json:"snippet" yaml:"snippet"`

	// SourceDomain is the host the result points at, without a www. prefix.
	SourceDomain string `json:"source_domain,omitempty" yaml:"source_domain,omitempty"`
}

// ScrapedContent is the extracted text of one fetched page. A failed
// fetch is not an error: Success is false and the entry carries no
// usable text, but the page remains citable through its SearchResult.
type ScrapedContent struct {
	URL             string   `json:"url" yaml:"url"`
	Title           string   `json:"title" yaml:"title"`
	Content         string   `json:"content" yaml:"content"`
	MetaDescription string   `json:"meta_description,omitempty" yaml:"meta_description,omitempty"`
	Headings        []string `json:"headings,omitempty" yaml:"headings,omitempty"`
	WordCount       int      `json:"word_count" yaml:"word_count"`
	Success         bool     `json:"success" yaml:"success"`
	Error           string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// Source is a citable reference carried through to the final post.
type Source struct {
	Title       string `json:"title" yaml:"title"`
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ResearchSummary holds everything the research phase produced for one
// topic. It is owned by the orchestrator for the duration of a single
// generation run and is not mutated after the phase completes.
type ResearchSummary struct {
	// Topic is the seed topic string.
	Topic string `json:"topic" yaml:"topic"`

	// Summary is the synthesized prose research brief.
	Summary string `json:"summary" yaml:"summary"`

	// Sources lists citable references, deduplicated by URL. Scraped
	// pages take priority over raw search snippets for the same URL.
	Sources []Source `json:"sources" yaml:"sources"`

	// SearchResults are the deduplicated raw search hits.
	SearchResults []SearchResult `json:"search_results,omitempty" yaml:"search_results,omitempty"`

	// ScrapedContent holds the fetched pages, including failed fetches.
	ScrapedContent []ScrapedContent `json:"scraped_content,omitempty" yaml:"scraped_content,omitempty"`
}
