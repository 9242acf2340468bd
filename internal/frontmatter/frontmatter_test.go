// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package frontmatter

import (
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/blog-engine/pkg/types"
)

var testDate = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func testParams() Params {
	return Params{
		Title:       "Understanding Raft",
		Description: "A walkthrough of Raft.",
		Date:        testDate,
		Draft:       false,
		Tags:        []string{"raft", "consensus"},
		Categories:  []string{"distributed-systems"},
		Author:      "pat",
		Slug:        "understanding-raft",
	}
}

func mustNew(t *testing.T, format types.FrontmatterFormat) *Generator {
	t.Helper()
	g, err := New(format, nil)
	if err != nil {
		t.Fatalf("New(%q) error = %v", format, err)
	}
	return g
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New("ini", nil); err == nil {
		t.Fatal("New() should reject unknown formats at construction time")
	}
}

func TestFormatDate(t *testing.T) {
	got := FormatDate(testDate)
	if got != "2026-03-14T09:30:00.000Z" {
		t.Errorf("FormatDate() = %q", got)
	}

	// Non-UTC input normalizes to UTC.
	loc := time.FixedZone("plus2", 2*3600)
	got = FormatDate(time.Date(2026, 3, 14, 11, 30, 0, 0, loc))
	if got != "2026-03-14T09:30:00.000Z" {
		t.Errorf("FormatDate() = %q, want UTC normalization", got)
	}
}

func TestGenerateYAML(t *testing.T) {
	block := mustNew(t, types.FrontmatterYAML).Generate(testParams())

	if !strings.HasPrefix(block, "---\n") || !strings.HasSuffix(block, "---\n") {
		t.Errorf("missing YAML delimiters:\n%s", block)
	}

	// Title comes before date, date before draft.
	iTitle := strings.Index(block, "title:")
	iDate := strings.Index(block, "date:")
	iDraft := strings.Index(block, "draft:")
	if iTitle < 0 || iDate < iTitle || iDraft < iDate {
		t.Errorf("field order wrong (title=%d date=%d draft=%d):\n%s", iTitle, iDate, iDraft, block)
	}
	if !strings.Contains(block, "2026-03-14T09:30:00.000Z") {
		t.Errorf("missing formatted date:\n%s", block)
	}
	if !strings.Contains(block, "draft: false") {
		t.Errorf("missing draft flag:\n%s", block)
	}
}

func TestGenerateTOML(t *testing.T) {
	block := mustNew(t, types.FrontmatterTOML).Generate(testParams())

	if !strings.HasPrefix(block, "+++\n") || !strings.HasSuffix(block, "+++\n") {
		t.Errorf("missing TOML delimiters:\n%s", block)
	}
	if !strings.Contains(block, `title = "Understanding Raft"`) {
		t.Errorf("missing title:\n%s", block)
	}
	if !strings.Contains(block, `tags = ["raft", "consensus"]`) {
		t.Errorf("missing tags array:\n%s", block)
	}
	if !strings.Contains(block, "draft = false") {
		t.Errorf("missing draft:\n%s", block)
	}
}

func TestGenerateJSON(t *testing.T) {
	block := mustNew(t, types.FrontmatterJSON).Generate(testParams())

	if !strings.HasPrefix(block, "{\n") {
		t.Errorf("missing JSON object:\n%s", block)
	}
	if !strings.Contains(block, `"title": "Understanding Raft"`) {
		t.Errorf("missing title:\n%s", block)
	}
}

func TestGenerateOmitsEmptyOptionalFields(t *testing.T) {
	block := mustNew(t, types.FrontmatterYAML).Generate(Params{Title: "Bare", Date: testDate})

	for _, absent := range []string{"description:", "tags:", "categories:", "author:", "slug:", "toc:"} {
		if strings.Contains(block, absent) {
			t.Errorf("empty field %q should be omitted:\n%s", absent, block)
		}
	}
	// Required trio always present.
	for _, present := range []string{"title:", "date:", "draft:"} {
		if !strings.Contains(block, present) {
			t.Errorf("required field %q missing:\n%s", present, block)
		}
	}
}

func TestGenerateAppliesDefaults(t *testing.T) {
	g, err := New(types.FrontmatterYAML, map[string]any{"author": "site-default", "license": "CC-BY"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	p := testParams() // sets author "pat"
	block := g.Generate(p)
	if !strings.Contains(block, "author: pat") {
		t.Errorf("post value should win over default:\n%s", block)
	}
	if !strings.Contains(block, "license: CC-BY") {
		t.Errorf("unset default should be added:\n%s", block)
	}
}

func TestRoundTrip(t *testing.T) {
	formats := []types.FrontmatterFormat{
		types.FrontmatterYAML,
		types.FrontmatterTOML,
		types.FrontmatterJSON,
	}

	for _, format := range formats {
		t.Run(string(format), func(t *testing.T) {
			g := mustNew(t, format)
			content := g.Generate(testParams()) + "\nThe body.\n"

			fm, body := Parse(content)
			if body != "The body." {
				t.Errorf("body = %q", body)
			}
			if fm["title"] != "Understanding Raft" {
				t.Errorf("title = %v", fm["title"])
			}
			if fm["description"] != "A walkthrough of Raft." {
				t.Errorf("description = %v", fm["description"])
			}
			if fm["draft"] != false {
				t.Errorf("draft = %v (%T)", fm["draft"], fm["draft"])
			}

			tags, ok := fm["tags"].([]any)
			if !ok || len(tags) != 2 || tags[0] != "raft" {
				t.Errorf("tags = %v (%T)", fm["tags"], fm["tags"])
			}
			categories, ok := fm["categories"].([]any)
			if !ok || len(categories) != 1 || categories[0] != "distributed-systems" {
				t.Errorf("categories = %v", fm["categories"])
			}
		})
	}
}

func TestParseWithoutFrontmatter(t *testing.T) {
	fm, body := Parse("Just a document.\n\nNo metadata here.")
	if len(fm) != 0 {
		t.Errorf("fm = %v, want empty", fm)
	}
	if !strings.Contains(body, "Just a document.") {
		t.Errorf("body = %q", body)
	}
}

func TestParseJSONWithNestedBraces(t *testing.T) {
	content := "{\n  \"title\": \"Braces { in } strings\",\n  \"draft\": false\n}\nBody text.\n"
	fm, body := Parse(content)
	if fm["title"] != "Braces { in } strings" {
		t.Errorf("title = %v", fm["title"])
	}
	if body != "Body text." {
		t.Errorf("body = %q", body)
	}
}

func TestUpdate(t *testing.T) {
	g := mustNew(t, types.FrontmatterYAML)
	content := g.Generate(testParams()) + "\nOriginal body.\n"

	updated := g.Update(content, map[string]any{
		"description": "Updated description.",
		"lastmod":     FormatDate(testDate.Add(24 * time.Hour)),
	})

	if !strings.Contains(updated, "description: Updated description.") {
		t.Errorf("description not updated:\n%s", updated)
	}
	if !strings.Contains(updated, "lastmod:") {
		t.Errorf("new field not added:\n%s", updated)
	}
	if !strings.Contains(updated, "title: Understanding Raft") {
		t.Errorf("existing field lost:\n%s", updated)
	}
	if !strings.Contains(updated, "Original body.") {
		t.Errorf("body lost:\n%s", updated)
	}

	// Same updates applied twice give identical output.
	again := g.Update(updated, map[string]any{
		"description": "Updated description.",
		"lastmod":     FormatDate(testDate.Add(24 * time.Hour)),
	})
	if again != updated {
		t.Errorf("Update() not stable:\n%s\nvs\n%s", updated, again)
	}
}

func TestGenerateFlattensMultilineStrings(t *testing.T) {
	p := Params{
		Title: "Line one\nline two",
		Date:  testDate,
	}
	block := mustNew(t, types.FrontmatterYAML).Generate(p)
	if !strings.Contains(block, "title: Line one line two") {
		t.Errorf("multi-line title should flatten:\n%s", block)
	}
}
