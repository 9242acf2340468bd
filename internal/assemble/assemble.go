// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assemble turns a written post body into a publishable
// markdown file: frontmatter, title heading, optional table of
// contents, and the on-disk naming convention.
package assemble

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/blog-engine/internal/frontmatter"
	"github.com/pdiddy/blog-engine/internal/markdown"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// tocDepth is how deep the generated table of contents goes.
const tocDepth = 3

// Options carries per-post assembly inputs. Date is injected rather
// than read from the clock so the same inputs always produce the same
// file.
type Options struct {
	// Author goes into frontmatter when set.
	Author string

	// Draft marks the post as unpublished.
	Draft bool

	// Date is the publication timestamp.
	Date time.Time
}

// Assembler runs the assembly stage.
type Assembler struct {
	// Frontmatter serializes the metadata block.
	Frontmatter *frontmatter.Generator

	// Config controls TOC insertion.
	Config types.BlogConfig
}

// Assemble builds the final document from a written body. The body
// must not include a title heading; Assemble adds it, preceded by
// frontmatter and optionally followed by a table of contents generated
// from the body's section headings.
func (a *Assembler) Assemble(body string, outline *types.BlogOutline, sources []types.Source, opts Options) *types.GeneratedBlog {
	fm := a.Frontmatter.Generate(frontmatter.Params{
		Title:       outline.Title,
		Description: outline.MetaDescription,
		Date:        opts.Date,
		Draft:       opts.Draft,
		Tags:        outline.Tags,
		Categories:  outline.Categories,
		Author:      opts.Author,
		Slug:        markdown.Slugify(outline.Title),
		TOC:         a.Config.IncludeTOC,
	})

	var content string
	if a.Config.IncludeTOC {
		toc := markdown.GenerateTOC(body, tocDepth)
		content = fmt.Sprintf("# %s\n\n%s\n\n%s", outline.Title, toc, body)
	} else {
		content = fmt.Sprintf("# %s\n\n%s", outline.Title, body)
	}

	full := markdown.Clean(fm + "\n" + content)

	return &types.GeneratedBlog{
		Title:       outline.Title,
		Content:     content,
		Frontmatter: fm,
		FullContent: full,
		Outline:     outline,
		Sources:     sources,
		WordCount:   markdown.WordCount(full),
	}
}

// Filename returns the on-disk name for a post: the date prefix plus
// the slugified title, e.g. "2026-03-14-understanding-raft.md".
func Filename(title string, date time.Time) string {
	return fmt.Sprintf("%s-%s.md", date.Format("2006-01-02"), markdown.Slugify(title))
}

// Save writes the assembled document into dir, creating it if needed.
// An empty filename selects the default naming convention. An existing
// file with the same name is overwritten.
func Save(blog *types.GeneratedBlog, dir, filename string, date time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating content dir: %w", err)
	}

	if filename == "" {
		filename = Filename(blog.Title, date)
	}
	if !strings.HasSuffix(filename, ".md") {
		filename += ".md"
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(blog.FullContent), 0o644); err != nil {
		return "", fmt.Errorf("writing post: %w", err)
	}
	blog.FilePath = path
	return path, nil
}
