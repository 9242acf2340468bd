// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/blog-engine/pkg/types"
)

// mockBackend returns canned results per query.
type mockBackend struct {
	results map[string][]types.SearchResult
	errs    map[string]error
}

func (m *mockBackend) Name() string { return "mock" }

func (m *mockBackend) Search(_ context.Context, query string, _ types.SearchConfig) ([]types.SearchResult, error) {
	if err := m.errs[query]; err != nil {
		return nil, err
	}
	return m.results[query], nil
}

func result(title, url string) types.SearchResult {
	return types.SearchResult{Title: title, URL: url, Snippet: "about " + title}
}

func TestCollectAggregatesInQueryOrder(t *testing.T) {
	backend := &mockBackend{results: map[string][]types.SearchResult{
		"first":  {result("a", "https://a.example"), result("b", "https://b.example")},
		"second": {result("c", "https://c.example")},
		"third":  {result("d", "https://d.example")},
	}}

	var w bytes.Buffer
	out, err := Collect(context.Background(), []string{"first", "second", "third"}, backend, types.SearchConfig{}, &w)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	wantURLs := []string{"https://a.example", "https://b.example", "https://c.example", "https://d.example"}
	if len(out.Results) != len(wantURLs) {
		t.Fatalf("got %d results, want %d", len(out.Results), len(wantURLs))
	}
	for i, want := range wantURLs {
		if out.Results[i].URL != want {
			t.Errorf("result[%d].URL = %q, want %q", i, out.Results[i].URL, want)
		}
	}
}

func TestCollectDeduplicatesFirstSeenWins(t *testing.T) {
	shared := "https://shared.example"
	backend := &mockBackend{results: map[string][]types.SearchResult{
		"first":  {{Title: "original", URL: shared, Snippet: "from first"}},
		"second": {{Title: "duplicate", URL: shared, Snippet: "from second"}, result("c", "https://c.example")},
	}}

	var w bytes.Buffer
	out, err := Collect(context.Background(), []string{"first", "second"}, backend, types.SearchConfig{}, &w)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if len(out.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(out.Results))
	}
	if out.Results[0].Title != "original" {
		t.Errorf("kept %q for duplicate URL, want first occurrence %q", out.Results[0].Title, "original")
	}
	if out.DupsRemoved != 1 {
		t.Errorf("DupsRemoved = %d, want 1", out.DupsRemoved)
	}
}

func TestCollectSkipsFailedQueries(t *testing.T) {
	backend := &mockBackend{
		results: map[string][]types.SearchResult{
			"good": {result("a", "https://a.example")},
		},
		errs: map[string]error{"bad": fmt.Errorf("engine unavailable")},
	}

	var w bytes.Buffer
	out, err := Collect(context.Background(), []string{"bad", "good"}, backend, types.SearchConfig{}, &w)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if len(out.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(out.Results))
	}
	if len(out.QueryErrors) != 1 {
		t.Fatalf("got %d query errors, want 1", len(out.QueryErrors))
	}
	if !strings.Contains(w.String(), "warning:") {
		t.Errorf("expected warning on writer, got %q", w.String())
	}
}

func TestCollectNoQueries(t *testing.T) {
	var w bytes.Buffer
	_, err := Collect(context.Background(), nil, &mockBackend{}, types.SearchConfig{}, &w)
	if err == nil {
		t.Fatal("Collect() expected error for no queries")
	}
}

func TestFormatForLLM(t *testing.T) {
	results := []types.SearchResult{
		{Title: "First", URL: "https://a.example", Snippet: "snippet a", SourceDomain: "a.example"},
		{Title: "Second", URL: "https://b.example", Snippet: "snippet b", SourceDomain: "b.example"},
	}

	got := FormatForLLM(results, 10)
	if !strings.Contains(got, "**[1] First**") {
		t.Errorf("missing numbered title, got:\n%s", got)
	}
	if !strings.Contains(got, "Source: b.example") {
		t.Errorf("missing source domain, got:\n%s", got)
	}
	if !strings.Contains(got, "URL: https://a.example") {
		t.Errorf("missing URL, got:\n%s", got)
	}
}

func TestFormatForLLMEmpty(t *testing.T) {
	if got := FormatForLLM(nil, 10); got != "No search results found." {
		t.Errorf("FormatForLLM(nil) = %q", got)
	}
}

func TestFormatForLLMCapped(t *testing.T) {
	var results []types.SearchResult
	for i := 0; i < 5; i++ {
		results = append(results, result(fmt.Sprintf("r%d", i), fmt.Sprintf("https://%d.example", i)))
	}
	got := FormatForLLM(results, 2)
	if strings.Contains(got, "[3]") {
		t.Errorf("expected at most 2 results, got:\n%s", got)
	}
}

func TestFormatTable(t *testing.T) {
	out := Output{
		Results:     []types.SearchResult{{Title: "A result", SourceDomain: "a.example"}},
		DupsRemoved: 2,
	}
	var w bytes.Buffer
	FormatTable(out, &w)

	if !strings.Contains(w.String(), "A result") {
		t.Errorf("table missing result title:\n%s", w.String())
	}
	if !strings.Contains(w.String(), "2 duplicates removed") {
		t.Errorf("table missing dedup count:\n%s", w.String())
	}
}

// --- DuckDuckGo backend ---

const ddgHTML = `<html><body>
<div class="result">
  <a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2Fblog%2Fcontext&rut=abc">Go Concurrency Patterns</a>
  <div class="result__snippet">Context package patterns.</div>
</div>
<div class="result">
  <a class="result__a" href="https://www.example.org/direct">Direct Link</a>
  <div class="result__snippet">A direct result.</div>
</div>
<div class="result">
  <a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fblog.example%2Fpost">Third</a>
  <div class="result__snippet">Third snippet.</div>
</div>
</body></html>`

func TestDuckDuckGoSearch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "golang context" {
			t.Errorf("query = %q, want %q", got, "golang context")
		}
		io.WriteString(w, ddgHTML)
	}))
	defer ts.Close()

	old := duckduckgoBase
	duckduckgoBase = ts.URL
	defer func() { duckduckgoBase = old }()

	b := &DuckDuckGoBackend{Client: ts.Client()}
	results, err := b.Search(context.Background(), "golang context", types.SearchConfig{MaxResults: 10})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].URL != "https://go.dev/blog/context" {
		t.Errorf("redirect not unwrapped: %q", results[0].URL)
	}
	if results[0].Title != "Go Concurrency Patterns" {
		t.Errorf("title = %q", results[0].Title)
	}
	if results[0].SourceDomain != "go.dev" {
		t.Errorf("SourceDomain = %q, want %q", results[0].SourceDomain, "go.dev")
	}
	if results[1].URL != "https://www.example.org/direct" {
		t.Errorf("direct link mangled: %q", results[1].URL)
	}
	if results[1].SourceDomain != "example.org" {
		t.Errorf("SourceDomain = %q, want %q (www stripped)", results[1].SourceDomain, "example.org")
	}
}

func TestDuckDuckGoSearchRespectsMaxResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, ddgHTML)
	}))
	defer ts.Close()

	old := duckduckgoBase
	duckduckgoBase = ts.URL
	defer func() { duckduckgoBase = old }()

	b := &DuckDuckGoBackend{Client: ts.Client()}
	results, err := b.Search(context.Background(), "golang", types.SearchConfig{MaxResults: 1})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Errorf("got %d results, want 1", len(results))
	}
}

func TestDuckDuckGoSearchEmptyQuery(t *testing.T) {
	b := &DuckDuckGoBackend{}
	if _, err := b.Search(context.Background(), "  ", types.SearchConfig{}); err == nil {
		t.Fatal("Search() expected error for empty query")
	}
}

func TestDuckDuckGoSearchHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	old := duckduckgoBase
	duckduckgoBase = ts.URL
	defer func() { duckduckgoBase = old }()

	b := &DuckDuckGoBackend{Client: ts.Client()}
	if _, err := b.Search(context.Background(), "golang", types.SearchConfig{}); err == nil {
		t.Fatal("Search() expected error for HTTP 403")
	}
}
