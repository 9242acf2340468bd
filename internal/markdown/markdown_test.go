// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Understanding Raft", "understanding-raft"},
		{"Go 1.22: What's New?", "go-122-whats-new"},
		{"  spaced   out  ", "spaced-out"},
		{"already-a-slug", "already-a-slug"},
		{"Ünïcode Stripped", "ncode-stripped"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

const headingDoc = `# Title

Intro text.

## First Section

Body with ` + "`inline code`" + `.

### Nested Heading

More.

## Second *Section*

End.

#### Too Deep
`

func TestExtractHeadings(t *testing.T) {
	headings := ExtractHeadings(headingDoc)

	want := []struct {
		level int
		text  string
	}{
		{1, "Title"},
		{2, "First Section"},
		{3, "Nested Heading"},
		{2, "Second Section"},
		{4, "Too Deep"},
	}
	if len(headings) != len(want) {
		t.Fatalf("got %d headings, want %d: %+v", len(headings), len(want), headings)
	}
	for i, w := range want {
		if headings[i].Level != w.level || headings[i].Text != w.text {
			t.Errorf("heading[%d] = %+v, want level %d text %q", i, headings[i], w.level, w.text)
		}
	}
	if headings[1].Slug != "first-section" {
		t.Errorf("Slug = %q", headings[1].Slug)
	}
}

func TestGenerateTOC(t *testing.T) {
	toc := GenerateTOC(headingDoc, 3)

	if !strings.HasPrefix(toc, "## Table of Contents\n") {
		t.Errorf("missing header:\n%s", toc)
	}
	if !strings.Contains(toc, "- [First Section](#first-section)") {
		t.Errorf("missing level-2 entry:\n%s", toc)
	}
	if !strings.Contains(toc, "    - [Nested Heading](#nested-heading)") {
		t.Errorf("missing indented level-3 entry:\n%s", toc)
	}
	if strings.Contains(toc, "Too Deep") {
		t.Errorf("level-4 heading should be skipped:\n%s", toc)
	}
}

func TestClean(t *testing.T) {
	in := "Line one.\r\n\n\n\n\nLine two.\n\n\n"
	got := Clean(in)
	want := "Line one.\n\nLine two.\n"
	if got != want {
		t.Errorf("Clean() = %q, want %q", got, want)
	}
}

func TestWordCount(t *testing.T) {
	if got := WordCount("one  two\tthree\nfour"); got != 4 {
		t.Errorf("WordCount() = %d, want 4", got)
	}
	if got := WordCount("   "); got != 0 {
		t.Errorf("WordCount(blank) = %d, want 0", got)
	}
}

func TestCountWordsExcludingCode(t *testing.T) {
	text := "Before code.\n\n```go\nfunc main() {}\n```\n\nAfter `inline span` end."
	// "Before code." + "After" + "end." = 4 words.
	if got := CountWordsExcludingCode(text); got != 4 {
		t.Errorf("CountWordsExcludingCode() = %d, want 4", got)
	}
}
