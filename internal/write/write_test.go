// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package write

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pdiddy/blog-engine/internal/llm"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// scriptedLLM returns canned responses in order and records requests.
type scriptedLLM struct {
	responses []string
	errs      []error
	requests  []llm.Request
	calls     int
}

func (s *scriptedLLM) Model() string { return "scripted" }

func (s *scriptedLLM) Generate(_ context.Context, req llm.Request) (string, error) {
	i := s.calls
	s.calls++
	s.requests = append(s.requests, req)
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return "", errors.New("no scripted response")
}

func testOutline() *types.BlogOutline {
	return &types.BlogOutline{
		Title: "Understanding Raft",
		Sections: []types.Section{
			{Title: "Leader Election", KeyPoints: []string{"terms", "votes"}},
			{Title: "Log Replication", KeyPoints: []string{"append entries"},
				Subsections: []types.Subsection{{Title: "Commit Index"}}},
		},
		TargetWordCount: 2000,
	}
}

func TestWriteAssemblesBody(t *testing.T) {
	model := &scriptedLLM{responses: []string{
		"The intro paragraph.",
		"Election prose.",
		"Replication prose.",
		"The closing thought.",
	}}
	var progress bytes.Buffer
	w := &Writer{LLM: model, Config: types.BlogConfig{IncludeCitations: true}, Progress: &progress}

	sources := []types.Source{{Title: "Raft Paper", URL: "https://raft.github.io", Description: "The original paper."}}
	post, err := w.Write(context.Background(), testOutline(), "research brief", sources)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := "The intro paragraph.\n" +
		"\n## Leader Election\n\nElection prose.\n" +
		"\n## Log Replication\n\nReplication prose.\n" +
		"\n## Conclusion\n\nThe closing thought.\n" +
		"\n## References\n\n" +
		"1. [Raft Paper](https://raft.github.io) - The original paper."
	if post.Body != want {
		t.Errorf("Body =\n%q\nwant\n%q", post.Body, want)
	}

	if post.WordCount != len(strings.Fields(post.Body)) {
		t.Errorf("WordCount = %d, want whitespace-split count", post.WordCount)
	}
	if post.Sections["introduction"] != "The intro paragraph." {
		t.Errorf("introduction slot = %q", post.Sections["introduction"])
	}
	if post.Sections["conclusion"] != "The closing thought." {
		t.Errorf("conclusion slot = %q", post.Sections["conclusion"])
	}
	if post.Sections["Leader Election"] != "Election prose." {
		t.Errorf("section slot = %q", post.Sections["Leader Election"])
	}
}

func TestWriteOmitsReferencesWhenDisabled(t *testing.T) {
	model := &scriptedLLM{responses: []string{"i", "a", "b", "c"}}
	var progress bytes.Buffer
	w := &Writer{LLM: model, Progress: &progress}

	post, err := w.Write(context.Background(), testOutline(), "brief",
		[]types.Source{{Title: "t", URL: "https://u.example"}})
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if strings.Contains(post.Body, "## References") {
		t.Error("references present despite IncludeCitations=false")
	}
}

func TestWriteOmitsReferencesWithoutSources(t *testing.T) {
	model := &scriptedLLM{responses: []string{"i", "a", "b", "c"}}
	var progress bytes.Buffer
	w := &Writer{LLM: model, Config: types.BlogConfig{IncludeCitations: true}, Progress: &progress}

	post, err := w.Write(context.Background(), testOutline(), "brief", nil)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if strings.Contains(post.Body, "## References") {
		t.Error("references present without sources")
	}
}

func TestWriteWordBudget(t *testing.T) {
	model := &scriptedLLM{responses: []string{"i", "a", "b", "c"}}
	var progress bytes.Buffer
	w := &Writer{LLM: model, Progress: &progress}

	// 2 sections + intro + conclusion: 2000 / 4 = 500 per slot.
	if _, err := w.Write(context.Background(), testOutline(), "brief", nil); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	for _, i := range []int{1, 2} {
		if !strings.Contains(model.requests[i].Prompt, "**Target length:** 500 words") {
			t.Errorf("section request %d missing 500-word budget", i)
		}
	}
}

func TestWriteSectionContext(t *testing.T) {
	longIntro := strings.Repeat("x", 2000)
	longBrief := strings.Repeat("r", 3000)
	model := &scriptedLLM{responses: []string{longIntro, "a", "b", "c"}}
	var progress bytes.Buffer
	w := &Writer{LLM: model, Progress: &progress}

	if _, err := w.Write(context.Background(), testOutline(), longBrief, nil); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	// First section sees the tail of the intro and the head of the brief.
	prompt := model.requests[1].Prompt
	if strings.Contains(prompt, strings.Repeat("x", 1501)) {
		t.Error("previous content not truncated to window")
	}
	if !strings.Contains(prompt, strings.Repeat("x", 1500)) {
		t.Error("previous content window missing")
	}
	if strings.Contains(prompt, strings.Repeat("r", 2001)) {
		t.Error("research notes not truncated to window")
	}

	// Second section sees intro plus the first section's content.
	if !strings.Contains(model.requests[2].Prompt, "xa") {
		t.Error("previous content should accumulate section text")
	}

	// The subsection shows up in the second section's brief.
	if !strings.Contains(model.requests[2].Prompt, "  - Subsection: Commit Index") {
		t.Error("section brief missing subsection line")
	}
}

func TestWriteStopsOnSectionError(t *testing.T) {
	model := &scriptedLLM{
		responses: []string{"intro", ""},
		errs:      []error{nil, errors.New("model down")},
	}
	var progress bytes.Buffer
	w := &Writer{LLM: model, Progress: &progress}

	_, err := w.Write(context.Background(), testOutline(), "brief", nil)
	if err == nil {
		t.Fatal("Write() expected error")
	}
	if !strings.Contains(err.Error(), "Leader Election") {
		t.Errorf("error should name the failed section, got %v", err)
	}
}

func TestSectionOnly(t *testing.T) {
	model := &scriptedLLM{responses: []string{"standalone section"}}
	var progress bytes.Buffer
	w := &Writer{LLM: model, Progress: &progress}

	got, err := w.SectionOnly(context.Background(), "Caching", []string{"ttl", "invalidation"}, "existing post context", 0)
	if err != nil {
		t.Fatalf("SectionOnly() error = %v", err)
	}
	if got != "standalone section" {
		t.Errorf("got %q", got)
	}

	prompt := model.requests[0].Prompt
	if !strings.Contains(prompt, "**Section Title:** Caching") {
		t.Error("prompt missing section title")
	}
	if !strings.Contains(prompt, "- ttl") || !strings.Contains(prompt, "- invalidation") {
		t.Error("prompt missing key points")
	}
	if !strings.Contains(prompt, "**Target Length:** 500 words") {
		t.Error("zero target should default to 500")
	}
}
