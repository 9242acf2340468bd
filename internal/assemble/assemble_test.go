// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/blog-engine/internal/frontmatter"
	"github.com/pdiddy/blog-engine/pkg/types"
)

var testDate = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newAssembler(t *testing.T, includeTOC bool) *Assembler {
	t.Helper()
	gen, err := frontmatter.New(types.FrontmatterYAML, nil)
	if err != nil {
		t.Fatalf("frontmatter.New() error = %v", err)
	}
	return &Assembler{Frontmatter: gen, Config: types.BlogConfig{IncludeTOC: includeTOC}}
}

func testOutline() *types.BlogOutline {
	return &types.BlogOutline{
		Title:           "Understanding Raft",
		MetaDescription: "A walkthrough of the Raft consensus algorithm.",
		Tags:            []string{"raft", "consensus"},
		Categories:      []string{"distributed-systems"},
	}
}

const testBody = "The intro.\n\n## Leader Election\n\nElection prose.\n\n## Conclusion\n\nClosing."

func TestAssemble(t *testing.T) {
	blog := newAssembler(t, false).Assemble(testBody, testOutline(), nil, Options{Author: "pat", Date: testDate})

	if !strings.HasPrefix(blog.Frontmatter, "---\n") {
		t.Errorf("Frontmatter = %q, want YAML block", blog.Frontmatter)
	}
	if !strings.Contains(blog.Frontmatter, "title: Understanding Raft") {
		t.Errorf("Frontmatter missing title:\n%s", blog.Frontmatter)
	}
	if !strings.Contains(blog.Frontmatter, "2026-03-14T09:30:00.000Z") {
		t.Errorf("Frontmatter missing formatted date:\n%s", blog.Frontmatter)
	}
	if !strings.Contains(blog.Frontmatter, "slug: understanding-raft") {
		t.Errorf("Frontmatter missing slug:\n%s", blog.Frontmatter)
	}

	if !strings.HasPrefix(blog.Content, "# Understanding Raft\n\nThe intro.") {
		t.Errorf("Content should start with title heading:\n%s", blog.Content)
	}
	if strings.Contains(blog.Content, "Table of Contents") {
		t.Error("TOC present despite IncludeTOC=false")
	}
	if !strings.HasPrefix(blog.FullContent, "---\n") {
		t.Errorf("FullContent should start with frontmatter:\n%.80s", blog.FullContent)
	}
	if !strings.HasSuffix(blog.FullContent, "\n") || strings.HasSuffix(blog.FullContent, "\n\n") {
		t.Error("FullContent should end with exactly one newline")
	}
	if blog.WordCount != len(strings.Fields(blog.FullContent)) {
		t.Errorf("WordCount = %d, want full-content word count", blog.WordCount)
	}
}

func TestAssembleWithTOC(t *testing.T) {
	blog := newAssembler(t, true).Assemble(testBody, testOutline(), nil, Options{Date: testDate})

	idxTitle := strings.Index(blog.Content, "# Understanding Raft")
	idxTOC := strings.Index(blog.Content, "## Table of Contents")
	idxBody := strings.Index(blog.Content, "The intro.")
	if idxTitle != 0 || idxTOC < idxTitle || idxBody < idxTOC {
		t.Errorf("Content order wrong (title=%d toc=%d body=%d):\n%s", idxTitle, idxTOC, idxBody, blog.Content)
	}
	if !strings.Contains(blog.Content, "- [Leader Election](#leader-election)") {
		t.Errorf("TOC missing section entry:\n%s", blog.Content)
	}
	if !strings.Contains(blog.Frontmatter, "toc: true") {
		t.Errorf("Frontmatter missing toc flag:\n%s", blog.Frontmatter)
	}
}

func TestAssembleDeterministic(t *testing.T) {
	a := newAssembler(t, true)
	opts := Options{Author: "pat", Draft: true, Date: testDate}

	first := a.Assemble(testBody, testOutline(), nil, opts)
	second := a.Assemble(testBody, testOutline(), nil, opts)
	if first.FullContent != second.FullContent {
		t.Error("identical inputs must produce byte-identical output")
	}
}

func TestFilename(t *testing.T) {
	got := Filename("Understanding Raft: A Guide!", testDate)
	if got != "2026-03-14-understanding-raft-a-guide.md" {
		t.Errorf("Filename() = %q", got)
	}
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "content", "posts")
	blog := newAssembler(t, false).Assemble(testBody, testOutline(), nil, Options{Date: testDate})

	path, err := Save(blog, dir, "", testDate)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if filepath.Base(path) != "2026-03-14-understanding-raft.md" {
		t.Errorf("path = %q", path)
	}
	if blog.FilePath != path {
		t.Errorf("FilePath = %q, want %q", blog.FilePath, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved post: %v", err)
	}
	if string(data) != blog.FullContent {
		t.Error("saved content differs from FullContent")
	}

	// Same name overwrites silently.
	blog.FullContent = "replaced\n"
	if _, err := Save(blog, dir, "", testDate); err != nil {
		t.Fatalf("Save() overwrite error = %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "replaced\n" {
		t.Error("overwrite did not replace file contents")
	}
}

func TestSaveCustomFilename(t *testing.T) {
	dir := t.TempDir()
	blog := newAssembler(t, false).Assemble(testBody, testOutline(), nil, Options{Date: testDate})

	path, err := Save(blog, dir, "custom-name", testDate)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if filepath.Base(path) != "custom-name.md" {
		t.Errorf("path = %q, want .md appended", path)
	}
}
