// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scrape fetches web pages and extracts readable text for the
// research stage. Fetch failures are data, not errors: a failed page
// comes back with Success false and the pipeline keeps going.
package scrape

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/pdiddy/blog-engine/internal/httputil"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// Fetcher retrieves one page. The research stage depends on this
// interface so tests can substitute canned pages.
type Fetcher interface {
	Fetch(ctx context.Context, url string) types.ScrapedContent
}

// removeSelectors strips navigation, boilerplate, and ad containers
// before text extraction.
var removeSelectors = []string{
	"script",
	"style",
	"nav",
	"header",
	"footer",
	"aside",
	"advertisement",
	".ad",
	".ads",
	".sidebar",
	".navigation",
	".menu",
	".cookie",
	".popup",
	".modal",
	"#comments",
	".comments",
	".social-share",
	".related-posts",
}

var (
	blankLines = regexp.MustCompile(`\n{3,}`)
	spaceRuns  = regexp.MustCompile(` {2,}`)
)

// Scraper fetches pages over HTTP and extracts their text content.
type Scraper struct {
	client *http.Client
	cfg    types.ScrapeConfig
}

// New returns a Scraper configured from cfg.
func New(cfg types.ScrapeConfig) *Scraper {
	if cfg.MaxContentLength <= 0 {
		cfg.MaxContentLength = 50000
	}
	return &Scraper{
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
	}
}

// Fetch retrieves url and extracts title, description, headings, and
// body text. It never returns an error: failures produce a
// ScrapedContent with Success false and the reason in Error.
func (s *Scraper) Fetch(ctx context.Context, url string) types.ScrapedContent {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return failed(url, fmt.Sprintf("creating request: %v", err))
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, s.client, req, 0)
	if err != nil {
		return failed(url, fmt.Sprintf("fetching page: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failed(url, fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return failed(url, fmt.Sprintf("parsing HTML: %v", err))
	}

	title := extractTitle(doc)
	metaDescription := extractMetaDescription(doc)
	headings := extractHeadings(doc)

	for _, sel := range removeSelectors {
		doc.Find(sel).Remove()
	}

	content := extractContent(doc)
	if len(content) > s.cfg.MaxContentLength {
		content = content[:s.cfg.MaxContentLength] + "..."
	}

	return types.ScrapedContent{
		URL:             url,
		Title:           title,
		Content:         content,
		MetaDescription: metaDescription,
		Headings:        headings,
		WordCount:       len(strings.Fields(content)),
		Success:         true,
	}
}

// FetchAll fetches urls sequentially, in order.
func (s *Scraper) FetchAll(ctx context.Context, urls []string) []types.ScrapedContent {
	out := make([]types.ScrapedContent, 0, len(urls))
	for _, u := range urls {
		out = append(out, s.Fetch(ctx, u))
	}
	return out
}

func failed(url, reason string) types.ScrapedContent {
	return types.ScrapedContent{URL: url, Error: reason}
}

// extractTitle prefers og:title, then <title>, then the first h1.
func extractTitle(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && og != "" {
		return og
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

// extractMetaDescription prefers og:description over the plain meta tag.
func extractMetaDescription(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok && og != "" {
		return og
	}
	if d, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		return d
	}
	return ""
}

// extractHeadings collects h1, h2, and h3 text, grouped by level.
func extractHeadings(doc *goquery.Document) []string {
	var headings []string
	for _, tag := range []string{"h1", "h2", "h3"} {
		doc.Find(tag).Each(func(_ int, sel *goquery.Selection) {
			if text := strings.TrimSpace(sel.Text()); text != "" {
				headings = append(headings, text)
			}
		})
	}
	return headings
}

// extractContent pulls readable text from the most article-like
// container available: article, then main, then body.
func extractContent(doc *goquery.Document) string {
	for _, sel := range []string{"article", "main", "body"} {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return cleanText(textLines(s))
		}
	}
	return cleanText(textLines(doc.Selection))
}

// textLines walks the selection's nodes and returns each text node's
// trimmed content on its own line.
func textLines(sel *goquery.Selection) string {
	var b strings.Builder
	for _, node := range sel.Nodes {
		walkText(node, &b)
	}
	return b.String()
}

func walkText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		if text := strings.TrimSpace(n.Data); text != "" {
			b.WriteString(text)
			b.WriteString("\n")
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkText(c, b)
	}
}

func cleanText(text string) string {
	text = blankLines.ReplaceAllString(text, "\n\n")
	text = spaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
