// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enhance reworks existing published posts: expand thin prose,
// refresh metadata against current search trends, and repair
// frontmatter. The original file is backed up before it is overwritten.
package enhance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/blog-engine/internal/frontmatter"
	"github.com/pdiddy/blog-engine/internal/llm"
	"github.com/pdiddy/blog-engine/internal/markdown"
	"github.com/pdiddy/blog-engine/internal/trends"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// Prompt context windows.
const (
	analysisWindow    = 15000
	enhanceWindow     = 12000
	suggestionsWindow = 3000
	topicsWindow      = 1000
	summaryWindow     = 500
	maxDescription    = 160
)

// Options controls what an enhancement run touches.
type Options struct {
	// TargetWordCount is the length the post should grow toward.
	// Zero means the configured minimum.
	TargetWordCount int

	// ImproveSEO regenerates the meta description.
	ImproveSEO bool

	// UseTrends enriches the prompts with a trends lookup.
	UseTrends bool

	// FixFrontmatter repairs missing or stale frontmatter fields.
	FixFrontmatter bool

	// Backup copies the original aside before overwriting.
	Backup bool

	// BackupDir overrides the default .backup directory next to the post.
	BackupDir string
}

// DefaultOptions enables every enhancement step.
func DefaultOptions() Options {
	return Options{ImproveSEO: true, UseTrends: true, FixFrontmatter: true, Backup: true}
}

// Result summarizes one enhanced post.
type Result struct {
	FilePath          string
	OriginalWordCount int
	EnhancedWordCount int
	BackupPath        string
	Improvements      []string
	Trends            *types.TrendsData

	// Err is set instead of the counts when a directory run skipped
	// this file.
	Err error
}

// Enhancer runs the enhancement pipeline over existing posts.
type Enhancer struct {
	// LLM analyzes and rewrites the prose.
	LLM llm.Client

	// Trends supplies best-effort keyword enrichment, may be nil.
	Trends trends.Client

	// Frontmatter parses and re-emits the metadata block.
	Frontmatter *frontmatter.Generator

	// Config supplies the default target word count.
	Config types.BlogConfig

	// Progress receives step updates and warnings.
	Progress io.Writer

	// Now is the clock, overridable under test. Nil means time.Now.
	Now func() time.Time
}

func (e *Enhancer) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

var (
	firstHeading = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	jsonObject   = regexp.MustCompile(`(?s)\{.*\}`)
	leadingTitle = regexp.MustCompile(`^#\s+.+\n+`)
	artifactRes  = []*regexp.Regexp{
		regexp.MustCompile(`(?im)^here'?s? (?:is )?the enhanced (?:blog |content|version).*?:\n+`),
		regexp.MustCompile(`(?im)^i've enhanced.*?:\n+`),
		regexp.MustCompile(`(?im)^below is the.*?:\n+`),
		regexp.MustCompile(`\n*---\n*$`),
	}
)

// Enhance rewrites one post in place and returns what changed.
func (e *Enhancer) Enhance(ctx context.Context, path string, opts Options) (*Result, error) {
	fmt.Fprintf(e.Progress, "Enhancing: %s\n", filepath.Base(path))

	targetWordCount := opts.TargetWordCount
	if targetWordCount <= 0 {
		targetWordCount = e.Config.MinWordCount
	}
	if targetWordCount <= 0 {
		targetWordCount = 3000
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading post: %w", err)
	}
	original := string(data)
	originalWords := markdown.CountWordsExcludingCode(original)

	fm, body := frontmatter.Parse(original)
	title := stringField(fm, "title")
	if title == "" {
		title = extractTitle(original)
	}

	result := &Result{FilePath: path, OriginalWordCount: originalWords}

	if opts.Backup {
		backupPath, err := backup(path, opts.BackupDir, e.now())
		if err != nil {
			return nil, fmt.Errorf("backing up post: %w", err)
		}
		result.BackupPath = backupPath
		result.Improvements = append(result.Improvements, "Created backup")
		fmt.Fprintf(e.Progress, "Backed up to: %s\n", backupPath)
	}

	trendsContext := "No Google Trends data."
	var trendingKeywords []string
	if opts.UseTrends && e.Trends != nil {
		td, tctx := e.lookupTrends(ctx, title)
		trendsContext = tctx
		if td != nil {
			result.Trends = td
			trendingKeywords = append(head(td.RisingQueries, 5), head(td.RelatedQueries, 5)...)
			result.Improvements = append(result.Improvements, "Integrated Google Trends data")
		}
	}

	fmt.Fprintf(e.Progress, "Analyzing content for improvements...\n")
	bodyWords := markdown.CountWordsExcludingCode(body)
	analysis, err := e.LLM.Generate(ctx, llm.Request{
		Prompt: llm.AnalysisPrompt(title, bodyWords, targetWordCount, leading(body, analysisWindow), trendsContext),
	})
	if err != nil {
		return nil, fmt.Errorf("analyzing content: %w", err)
	}

	fmt.Fprintf(e.Progress, "Enhancing content...\n")
	enhanced, err := e.LLM.Generate(ctx, llm.Request{
		Prompt: llm.EnhancementPrompt(leading(body, enhanceWindow), leading(analysis, suggestionsWindow),
			trendsContext, bodyWords, targetWordCount, head(trendingKeywords, 10)),
	})
	if err != nil {
		return nil, fmt.Errorf("enhancing content: %w", err)
	}
	enhanced = cleanEnhanced(enhanced)
	result.Improvements = append(result.Improvements, "Enhanced content quality")

	description := stringField(fm, "description")
	if opts.ImproveSEO {
		description, err = e.metaDescription(ctx, title, enhanced, trendingKeywords)
		if err != nil {
			return nil, fmt.Errorf("generating meta description: %w", err)
		}
		result.Improvements = append(result.Improvements, "Optimized meta description")
	}

	currentTags := stringList(fm, "tags")
	currentCategories := stringList(fm, "categories")
	newTags, newCategories := e.suggestTags(ctx, title, enhanced, result.Trends, currentTags, currentCategories)
	if !equalStrings(newTags, currentTags) || !equalStrings(newCategories, currentCategories) {
		result.Improvements = append(result.Improvements, "Updated tags/categories")
	}

	if opts.FixFrontmatter {
		fm["title"] = title
		fm["description"] = description
		if stringField(fm, "date") == "" {
			fm["date"] = frontmatter.FormatDate(e.now())
		}
		if len(newTags) > 0 {
			fm["tags"] = newTags
		}
		if len(newCategories) > 0 {
			fm["categories"] = newCategories
		}
		fm["draft"] = false
		fm["lastmod"] = frontmatter.FormatDate(e.now())
		result.Improvements = append(result.Improvements, "Fixed frontmatter")
	}

	content := e.Frontmatter.Render(fm) + "\n" + enhanced + "\n"
	result.EnhancedWordCount = markdown.CountWordsExcludingCode(content)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("writing enhanced post: %w", err)
	}

	fmt.Fprintf(e.Progress, "Enhanced: %d -> %d words\n", result.OriginalWordCount, result.EnhancedWordCount)
	return result, nil
}

// EnhanceDir enhances every file matching pattern in dir, in sorted
// order. A failed file is reported in its Result and does not stop the
// run.
func (e *Enhancer) EnhanceDir(ctx context.Context, dir, pattern string, opts Options) ([]*Result, error) {
	if pattern == "" {
		pattern = "*.md"
	}
	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("matching posts: %w", err)
	}
	sort.Strings(paths)
	fmt.Fprintf(e.Progress, "Found %d files to enhance\n", len(paths))

	var results []*Result
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		fmt.Fprintf(e.Progress, "[%d/%d] Processing: %s\n", i+1, len(paths), filepath.Base(path))

		result, err := e.Enhance(ctx, path, opts)
		if err != nil {
			fmt.Fprintf(e.Progress, "warning: %s: %v\n", filepath.Base(path), err)
			results = append(results, &Result{FilePath: path, Err: err})
			continue
		}
		results = append(results, result)
	}
	return results, nil
}

// lookupTrends fetches trends data for the title's key terms.
// Best-effort: any failure degrades to no enrichment.
func (e *Enhancer) lookupTrends(ctx context.Context, title string) (*types.TrendsData, string) {
	fmt.Fprintf(e.Progress, "Fetching Google Trends data...\n")

	term := searchTerm(title)
	if term == "" {
		term = title
	}
	data, err := e.Trends.Lookup(ctx, term)
	if err != nil {
		fmt.Fprintf(e.Progress, "warning: trends lookup failed: %v\n", err)
		return nil, "No Google Trends data available."
	}
	return &data, trends.FormatResearchContext(data)
}

func (e *Enhancer) metaDescription(ctx context.Context, title, content string, keywords []string) (string, error) {
	summary := strings.ReplaceAll(leading(content, summaryWindow), "\n", " ")
	resp, err := e.LLM.Generate(ctx, llm.Request{
		Prompt: llm.MetaDescriptionPrompt(title, summary, head(keywords, 5)),
	})
	if err != nil {
		return "", err
	}

	description := strings.TrimSpace(strings.Trim(strings.TrimSpace(resp), `"`))
	if len(description) > maxDescription {
		description = description[:maxDescription-3] + "..."
	}
	return description, nil
}

// suggestTags asks the model for refreshed tags and categories. Any
// failure keeps the current values.
func (e *Enhancer) suggestTags(ctx context.Context, title, content string, trendsData *types.TrendsData, currentTags, currentCategories []string) ([]string, []string) {
	topics := strings.ReplaceAll(leading(content, topicsWindow), "\n", " ")

	var rising []string
	if trendsData != nil {
		rising = head(trendsData.RisingQueries, 5)
	}

	resp, err := e.LLM.Generate(ctx, llm.Request{
		Prompt: llm.TagsPrompt(title, topics, orNone(rising), orNone(currentTags), orNone(currentCategories)),
	})
	if err != nil {
		fmt.Fprintf(e.Progress, "warning: tag suggestion failed: %v\n", err)
		return currentTags, currentCategories
	}

	match := jsonObject.FindString(resp)
	if match == "" {
		fmt.Fprintf(e.Progress, "warning: failed to parse tags suggestion\n")
		return currentTags, currentCategories
	}
	var parsed struct {
		Tags       []string `json:"tags"`
		Categories []string `json:"categories"`
	}
	if err := json.Unmarshal([]byte(match), &parsed); err != nil {
		fmt.Fprintf(e.Progress, "warning: failed to parse tags suggestion\n")
		return currentTags, currentCategories
	}

	tags, categories := parsed.Tags, parsed.Categories
	if len(tags) == 0 {
		tags = currentTags
	}
	if len(categories) == 0 {
		categories = currentCategories
	}
	return tags, categories
}

// cleanEnhanced strips model artifacts from an enhanced body:
// accidental frontmatter, a duplicated title heading, and framing lines
// like "Here's the enhanced content:".
func cleanEnhanced(content string) string {
	if rest, ok := strings.CutPrefix(content, "---"); ok {
		if idx := strings.Index(rest, "\n---\n"); idx != -1 {
			content = rest[idx+len("\n---\n"):]
		}
	}
	content = leadingTitle.ReplaceAllString(content, "")
	for _, re := range artifactRes {
		content = re.ReplaceAllString(content, "")
	}
	return strings.TrimSpace(content)
}

// backup copies the post into backupDir (default .backup next to the
// file) under a timestamped name.
func backup(path, backupDir string, now time.Time) (string, error) {
	if backupDir == "" {
		backupDir = filepath.Join(filepath.Dir(path), ".backup")
	}
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", err
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	name := fmt.Sprintf("%s_%s%s", stem, now.UTC().Format("20060102_150405"), ext)
	backupPath := filepath.Join(backupDir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return "", err
	}
	return backupPath, nil
}

// stopwords excluded when deriving a trends search term from a title.
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true,
	"how": true, "to": true, "what": true, "why": true, "when": true,
	"your": true, "you": true, "and": true, "or": true, "for": true,
	"with": true, "from": true, "in": true, "on": true, "at": true,
	"by": true, "of": true, "that": true, "this": true, "it": true,
}

// searchTerm keeps the first three meaningful words of a title.
func searchTerm(title string) string {
	var keywords []string
	for _, w := range strings.Fields(strings.ToLower(title)) {
		if stopwords[w] || len(w) <= 2 {
			continue
		}
		keywords = append(keywords, w)
		if len(keywords) == 3 {
			break
		}
	}
	return strings.Join(keywords, " ")
}

func extractTitle(content string) string {
	if m := firstHeading.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return "Untitled"
}

func stringField(fm map[string]any, key string) string {
	if v, ok := fm[key].(string); ok {
		return v
	}
	return ""
}

func stringList(fm map[string]any, key string) []string {
	switch v := fm[key].(type) {
	case []string:
		return v
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func leading(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
