// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search runs web queries and returns unified, deduplicated results.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pdiddy/blog-engine/pkg/types"
)

// Backend executes a single web search query. Each engine implements
// this interface per the Strategy pattern.
type Backend interface {
	Name() string
	Search(ctx context.Context, query string, cfg types.SearchConfig) ([]types.SearchResult, error)
}

// Output holds the aggregated results and dedup statistics.
type Output struct {
	Results     []types.SearchResult
	DupsRemoved int
	QueryErrors []string
}

// Collect fans the queries out to the backend concurrently, aggregates
// results in query order, and deduplicates by URL. Aggregation always
// completes before deduplication, so the first occurrence of a URL in
// query order wins regardless of which goroutine finished first.
//
// A failed query produces a warning on w and is skipped; Collect only
// returns an error when it cannot run at all.
func Collect(ctx context.Context, queries []string, backend Backend, cfg types.SearchConfig, w io.Writer) (Output, error) {
	if len(queries) == 0 {
		return Output{}, fmt.Errorf("no search queries provided")
	}
	if backend == nil {
		return Output{}, fmt.Errorf("no search backend configured")
	}

	perQuery := make([][]types.SearchResult, len(queries))
	errs := make([]error, len(queries))

	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q string) {
			defer wg.Done()
			results, err := backend.Search(ctx, q, cfg)
			perQuery[i] = results
			errs[i] = err
		}(i, q)
	}
	wg.Wait()

	var all []types.SearchResult
	var queryErrors []string
	for i, q := range queries {
		if errs[i] != nil {
			msg := fmt.Sprintf("%q: %v", q, errs[i])
			queryErrors = append(queryErrors, msg)
			fmt.Fprintf(w, "warning: search %s failed: %v\n", backend.Name(), errs[i])
			continue
		}
		all = append(all, perQuery[i]...)
	}

	deduped, removed := deduplicate(all)

	return Output{
		Results:     deduped,
		DupsRemoved: removed,
		QueryErrors: queryErrors,
	}, nil
}

// deduplicate drops results whose URL was already seen. First seen wins;
// later duplicates contribute nothing, not even missing fields.
func deduplicate(results []types.SearchResult) ([]types.SearchResult, int) {
	seen := make(map[string]bool, len(results))
	var deduped []types.SearchResult
	removed := 0

	for _, r := range results {
		if r.URL != "" && seen[r.URL] {
			removed++
			continue
		}
		if r.URL != "" {
			seen[r.URL] = true
		}
		deduped = append(deduped, r)
	}
	return deduped, removed
}

// FormatForLLM renders the top results as a prompt context block.
func FormatForLLM(results []types.SearchResult, max int) string {
	if len(results) == 0 {
		return "No search results found."
	}
	if max > 0 && len(results) > max {
		results = results[:max]
	}

	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "**[%d] %s**\n", i+1, r.Title)
		if r.SourceDomain != "" {
			fmt.Fprintf(&b, "Source: %s\n", r.SourceDomain)
		}
		fmt.Fprintf(&b, "URL: %s\n", r.URL)
		fmt.Fprintf(&b, "Snippet: %s\n\n", r.Snippet)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatTable writes results as a human-readable table to w.
func FormatTable(out Output, w io.Writer) {
	if len(out.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-24s\n", "Rank", "Title", "Domain")
	fmt.Fprintln(w, strings.Repeat("-", 92))

	for i, r := range out.Results {
		title := r.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-24s\n", i+1, title, r.SourceDomain)
	}

	fmt.Fprintf(w, "\n%d results", len(out.Results))
	if out.DupsRemoved > 0 {
		fmt.Fprintf(w, " (%d duplicates removed)", out.DupsRemoved)
	}
	fmt.Fprintln(w)
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(out Output, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out.Results)
}
