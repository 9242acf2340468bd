// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research gathers web material on a topic and synthesizes it
// into a prose brief the planning and writing stages consume.
package research

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/blog-engine/internal/llm"
	"github.com/pdiddy/blog-engine/internal/scrape"
	"github.com/pdiddy/blog-engine/internal/search"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// Agent runs the research stage: query generation, search, scraping,
// and synthesis.
type Agent struct {
	// LLM generates queries and the synthesis brief.
	LLM llm.Client

	// Backend executes web searches.
	Backend search.Backend

	// Fetcher retrieves pages for full-text extraction.
	Fetcher scrape.Fetcher

	// Config holds research stage settings.
	Config types.ResearchConfig

	// SearchConfig holds per-query search settings.
	SearchConfig types.SearchConfig

	// Progress receives human-readable stage updates and warnings.
	Progress io.Writer
}

// Research runs the full stage for a topic. Custom queries bypass
// query generation; additionalContext is threaded into the synthesis
// brief. Individual query and fetch failures degrade the result rather
// than failing it; Research errors only when synthesis itself fails.
func (a *Agent) Research(ctx context.Context, topic, additionalContext string, queries []string) (*types.ResearchSummary, error) {
	fmt.Fprintf(a.Progress, "Starting research on: %s\n", topic)

	if len(queries) == 0 {
		queries = a.GenerateQueries(ctx, topic)
	}

	out, err := search.Collect(ctx, queries, a.Backend, a.SearchConfig, a.Progress)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	fmt.Fprintf(a.Progress, "Total unique results: %d\n", len(out.Results))

	scrapeTopN := a.Config.ScrapeTopN
	if scrapeTopN <= 0 {
		scrapeTopN = 3
	}

	var scraped []types.ScrapedContent
	for _, r := range out.Results {
		if len(scraped) >= scrapeTopN {
			break
		}
		content := a.Fetcher.Fetch(ctx, r.URL)
		if content.Success {
			fmt.Fprintf(a.Progress, "Scraped %s: %d words\n", content.URL, content.WordCount)
		} else {
			fmt.Fprintf(a.Progress, "warning: scrape failed for %s: %s\n", content.URL, content.Error)
		}
		scraped = append(scraped, content)
	}

	summary, err := a.Synthesize(ctx, topic, additionalContext, out.Results, scraped)
	if err != nil {
		return nil, fmt.Errorf("synthesizing research: %w", err)
	}

	return &types.ResearchSummary{
		Topic:          topic,
		Summary:        summary,
		Sources:        a.ExtractSources(out.Results, scraped),
		SearchResults:  out.Results,
		ScrapedContent: scraped,
	}, nil
}

// GenerateQueries asks the model for 3-5 diverse queries. A failed or
// empty response falls back to deterministic queries derived from the
// topic, so research can always proceed.
func (a *Agent) GenerateQueries(ctx context.Context, topic string) []string {
	resp, err := a.LLM.Generate(ctx, llm.Request{Prompt: llm.QueriesPrompt(topic)})
	if err != nil {
		fmt.Fprintf(a.Progress, "warning: query generation failed, using fallback queries: %v\n", err)
		return []string{topic, topic + " guide", topic + " best practices"}
	}

	var queries []string
	for _, line := range strings.Split(resp, "\n") {
		if q := strings.TrimSpace(line); q != "" {
			queries = append(queries, q)
		}
	}
	if len(queries) == 0 {
		return []string{topic}
	}
	if len(queries) > 5 {
		queries = queries[:5]
	}
	return queries
}

// Synthesize turns the collected material into a prose research brief.
// Failed scrapes are excluded from the prompt; an empty result set
// still synthesizes, with the prompt noting that no results were found.
func (a *Agent) Synthesize(ctx context.Context, topic, additionalContext string, results []types.SearchResult, scraped []types.ScrapedContent) (string, error) {
	maxSearchResults := a.Config.MaxSearchResults
	if maxSearchResults <= 0 {
		maxSearchResults = 10
	}
	searchContext := search.FormatForLLM(results, maxSearchResults)

	var parts []string
	for _, c := range scraped {
		if !c.Success {
			continue
		}
		parts = append(parts, fmt.Sprintf("**Source: %s** (%s)\n%s...", c.Title, c.URL, leading(c.Content, 2000)))
	}
	scrapedContext := strings.Join(parts, "\n\n")
	if scrapedContext == "" {
		scrapedContext = "No scraped content available."
	}

	prompt := llm.SynthesisPrompt(llm.ResearchPrompt(topic, additionalContext), searchContext, scrapedContext)
	return a.LLM.Generate(ctx, llm.Request{System: llm.SystemResearch, Prompt: prompt})
}

// ExtractSources builds the citable reference list. Successfully
// scraped pages come first (their metadata is more reliable), then
// search results fill the remaining slots up to MaxSources. URLs whose
// scrape failed are still citable through their search result.
func (a *Agent) ExtractSources(results []types.SearchResult, scraped []types.ScrapedContent) []types.Source {
	maxSources := a.Config.MaxSources
	if maxSources <= 0 {
		maxSources = 5
	}

	var sources []types.Source
	seen := make(map[string]bool)

	for _, c := range scraped {
		if !c.Success || seen[c.URL] {
			continue
		}
		sources = append(sources, types.Source{
			Title:       c.Title,
			URL:         c.URL,
			Description: c.MetaDescription,
		})
		seen[c.URL] = true
	}

	for _, r := range results {
		if len(sources) >= maxSources {
			break
		}
		if seen[r.URL] {
			continue
		}
		sources = append(sources, types.Source{
			Title:       r.Title,
			URL:         r.URL,
			Description: r.Snippet,
		})
		seen[r.URL] = true
	}

	if len(sources) > maxSources {
		sources = sources[:maxSources]
	}
	return sources
}

// leading returns the first n bytes of s.
func leading(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
