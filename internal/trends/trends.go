// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package trends looks up search interest data for a term. The lookup
// is best-effort: callers treat a failure as missing data, never as a
// pipeline error.
package trends

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/pdiddy/blog-engine/internal/httputil"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// Client looks up search interest for a term.
type Client interface {
	Lookup(ctx context.Context, term string) (types.TrendsData, error)
}

// trendsRSSBase is the Google Trends trending-searches feed. Declared
// as a var so tests can substitute an httptest server.
var trendsRSSBase = "https://trends.google.com/trending/rss"

// GoogleClient reads the public trending-searches feed and derives
// term-level signals from it.
type GoogleClient struct {
	Client *http.Client
	Config types.TrendsConfig
}

// New returns a GoogleClient configured from cfg.
func New(cfg types.TrendsConfig) *GoogleClient {
	return &GoogleClient{
		Client: &http.Client{Timeout: cfg.Timeout},
		Config: cfg,
	}
}

// rssFeed is the subset of the trending-searches RSS we read.
type rssFeed struct {
	Items []rssItem `xml:"channel>item"`
}

type rssItem struct {
	Title   string `xml:"title"`
	Traffic string `xml:"approx_traffic"`
}

// Lookup fetches the current trending searches and reports whether the
// term is among them, plus related and rising queries drawn from the
// feed.
func (c *GoogleClient) Lookup(ctx context.Context, term string) (types.TrendsData, error) {
	data := types.TrendsData{Term: term}

	params := url.Values{}
	if c.Config.Geo != "" {
		params.Set("geo", c.Config.Geo)
	}
	endpoint := trendsRSSBase
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return data, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.Config.UserAgent)

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return data, fmt.Errorf("trends request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return data, fmt.Errorf("trends feed returned HTTP %d", resp.StatusCode)
	}

	var feed rssFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return data, fmt.Errorf("parsing trends feed: %w", err)
	}

	termWords := wordSet(term)
	for _, item := range feed.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}

		if strings.EqualFold(title, term) || containsAll(title, termWords) {
			data.Trending = true
			data.InterestScore = 100
		}
		if sharesWord(title, termWords) {
			data.RelatedQueries = append(data.RelatedQueries, title)
		}
	}

	// Rising queries are the head of the feed, which Google orders by
	// traffic.
	for _, item := range feed.Items {
		if len(data.RisingQueries) >= 5 {
			break
		}
		if title := strings.TrimSpace(item.Title); title != "" {
			data.RisingQueries = append(data.RisingQueries, title)
		}
	}

	if len(data.RelatedQueries) > 5 {
		data.RelatedQueries = data.RelatedQueries[:5]
	}

	return data, nil
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}

func containsAll(title string, words map[string]bool) bool {
	if len(words) == 0 {
		return false
	}
	titleWords := wordSet(title)
	for w := range words {
		if !titleWords[w] {
			return false
		}
	}
	return true
}

func sharesWord(title string, words map[string]bool) bool {
	for w := range wordSet(title) {
		if words[w] {
			return true
		}
	}
	return false
}

// FormatResearchContext renders trends data as a prompt context block.
// Zero-valued data yields an empty string.
func FormatResearchContext(d types.TrendsData) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("## Search Trends for: %s", d.Term), "")

	hasData := false
	if d.InterestScore > 0 {
		hasData = true
		lines = append(lines, fmt.Sprintf("**Interest Score:** %d/100", d.InterestScore))
		if d.Trending {
			lines = append(lines, "**Status:** Currently trending")
		}
		lines = append(lines, "")
	}

	if len(d.RisingQueries) > 0 {
		hasData = true
		lines = append(lines, "**Rising Searches (hot topics to cover):**")
		for _, q := range head(d.RisingQueries, 5) {
			lines = append(lines, "- "+q)
		}
		lines = append(lines, "")
	}

	if len(d.RelatedQueries) > 0 {
		hasData = true
		lines = append(lines, "**Related Searches (what people also search):**")
		for _, q := range head(d.RelatedQueries, 5) {
			lines = append(lines, "- "+q)
		}
		lines = append(lines, "")
	}

	if len(d.RegionalInterest) > 0 {
		hasData = true
		type regionScore struct {
			region string
			score  int
		}
		regions := make([]regionScore, 0, len(d.RegionalInterest))
		for r, s := range d.RegionalInterest {
			regions = append(regions, regionScore{r, s})
		}
		sort.Slice(regions, func(i, j int) bool {
			if regions[i].score != regions[j].score {
				return regions[i].score > regions[j].score
			}
			return regions[i].region < regions[j].region
		})
		lines = append(lines, "**Top Regions:**")
		for _, rs := range head(regions, 5) {
			lines = append(lines, fmt.Sprintf("- %s: %d%%", rs.region, rs.score))
		}
	}

	if !hasData {
		return ""
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
