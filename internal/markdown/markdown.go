// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markdown provides formatting helpers shared by the writing and
// assembly stages: slugs, heading extraction, table-of-contents
// generation, and whitespace normalization.
package markdown

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// Heading is one heading found in a markdown document.
type Heading struct {
	// Level is the heading level, 1-6.
	Level int

	// Text is the heading text with markup stripped.
	Text string

	// Slug is the URL anchor for the heading.
	Slug string
}

var (
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugInvalid = regexp.MustCompile(`[^a-z0-9-]`)
	slugHyphens = regexp.MustCompile(`-+`)
	blankRuns   = regexp.MustCompile(`\n{4,}`)
)

// Slugify converts text to a lowercase, hyphen-separated URL slug.
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// parser is the shared goldmark instance used for heading extraction.
// Only the parse stage is used; nothing is rendered.
var parser = goldmark.New()

// ExtractHeadings parses content and returns all headings in document order.
func ExtractHeadings(content string) []Heading {
	source := []byte(content)
	doc := parser.Parser().Parse(gmtext.NewReader(source))

	var headings []Heading
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		text := headingText(h, source)
		if text == "" {
			return ast.WalkContinue, nil
		}
		headings = append(headings, Heading{
			Level: h.Level,
			Text:  text,
			Slug:  Slugify(text),
		})
		return ast.WalkSkipChildren, nil
	})
	return headings
}

// headingText concatenates the literal text of a heading's children.
func headingText(h *ast.Heading, source []byte) string {
	var b strings.Builder
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
			continue
		}
		// Inline markup (emphasis, code spans): take the literal text of
		// nested text nodes.
		ast.Walk(c, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			if t, ok := n.(*ast.Text); ok && entering {
				b.Write(t.Segment.Value(source))
			}
			return ast.WalkContinue, nil
		})
	}
	return strings.TrimSpace(b.String())
}

// GenerateTOC builds a markdown table of contents from the headings in
// content, down to maxLevel. Headings deeper than maxLevel are skipped.
func GenerateTOC(content string, maxLevel int) string {
	if maxLevel <= 0 {
		maxLevel = 3
	}
	var b strings.Builder
	b.WriteString("## Table of Contents\n")
	for _, h := range ExtractHeadings(content) {
		if h.Level > maxLevel {
			continue
		}
		indent := strings.Repeat("  ", h.Level-1)
		fmt.Fprintf(&b, "%s- [%s](#%s)\n", indent, h.Text, h.Slug)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Clean normalizes a markdown document: CRLF to LF, runs of 4 or more
// newlines collapsed to a single blank line, and exactly one trailing
// newline.
func Clean(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = blankRuns.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content) + "\n"
}

// WordCount counts whitespace-separated tokens. This is the defined
// word-count semantics for the whole pipeline; do not substitute a
// linguistic tokenizer.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// CountWordsExcludingCode counts words with fenced and inline code
// removed, used by the enhancer to judge prose length.
var (
	fencedCode = regexp.MustCompile("(?s)```.*?```")
	inlineCode = regexp.MustCompile("`[^`]+`")
)

func CountWordsExcludingCode(text string) int {
	text = fencedCode.ReplaceAllString(text, "")
	text = inlineCode.ReplaceAllString(text, "")
	return len(strings.Fields(text))
}
