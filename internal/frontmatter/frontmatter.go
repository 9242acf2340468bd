// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package frontmatter emits and parses the metadata block prefixed to a
// markdown post. Three formats are supported: YAML between --- markers,
// TOML between +++ markers, and a bare JSON object.
package frontmatter

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/blog-engine/pkg/types"
)

// Params carries the frontmatter fields for one post. Date is injected
// by the caller rather than read from the wall clock so that assembly
// stays deterministic under test.
type Params struct {
	Title       string
	Description string
	Date        time.Time
	Draft       bool
	Tags        []string
	Categories  []string
	Author      string
	Slug        string
	TOC         bool
	Extra       map[string]any
}

// Generator serializes frontmatter in one configured format.
type Generator struct {
	format   types.FrontmatterFormat
	defaults map[string]any
}

// New returns a Generator for the given format. An unknown format is an
// error at construction time, not at generation time.
func New(format types.FrontmatterFormat, defaults map[string]any) (*Generator, error) {
	switch format {
	case types.FrontmatterYAML, types.FrontmatterTOML, types.FrontmatterJSON:
	default:
		return nil, fmt.Errorf("unsupported frontmatter format %q", format)
	}
	return &Generator{format: format, defaults: defaults}, nil
}

// Format returns the configured serialization format.
func (g *Generator) Format() types.FrontmatterFormat { return g.format }

// field is one ordered frontmatter entry.
type field struct {
	key   string
	value any
}

// FormatDate renders a timestamp in the site's date format: ISO-8601
// UTC with millisecond precision and a trailing Z.
func FormatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000") + "Z"
}

// Generate serializes p, preceded-and-followed by the format's
// delimiters. Title, date, and draft are always present; empty optional
// fields are omitted. Configured defaults fill in any key the post does
// not set itself.
func (g *Generator) Generate(p Params) string {
	fields := []field{
		{"title", p.Title},
		{"date", FormatDate(p.Date)},
		{"draft", p.Draft},
	}
	if p.Description != "" {
		fields = append(fields, field{"description", p.Description})
	}
	if len(p.Tags) > 0 {
		fields = append(fields, field{"tags", p.Tags})
	}
	if len(p.Categories) > 0 {
		fields = append(fields, field{"categories", p.Categories})
	}
	if p.Author != "" {
		fields = append(fields, field{"author", p.Author})
	}
	if p.Slug != "" {
		fields = append(fields, field{"slug", p.Slug})
	}
	if p.TOC {
		fields = append(fields, field{"toc", true})
	}
	for k, v := range p.Extra {
		fields = setField(fields, k, v)
	}
	for k, v := range g.defaults {
		if !hasField(fields, k) {
			fields = append(fields, field{k, v})
		}
	}

	switch g.format {
	case types.FrontmatterTOML:
		return emitTOML(fields)
	case types.FrontmatterJSON:
		return emitJSON(fields)
	default:
		return emitYAML(fields)
	}
}

func hasField(fields []field, key string) bool {
	for _, f := range fields {
		if f.key == key {
			return true
		}
	}
	return false
}

func setField(fields []field, key string, value any) []field {
	for i := range fields {
		if fields[i].key == key {
			fields[i].value = value
			return fields
		}
	}
	return append(fields, field{key, value})
}

// emitYAML marshals through a yaml mapping node so the field order is
// preserved (yaml.Marshal on a map would sort keys).
func emitYAML(fields []field) string {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fields {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: f.key}
		valNode := &yaml.Node{}
		if err := valNode.Encode(f.value); err != nil {
			continue
		}
		flattenScalars(valNode)
		root.Content = append(root.Content, keyNode, valNode)
	}

	data, err := yaml.Marshal(root)
	if err != nil {
		return "---\n---\n"
	}
	return "---\n" + string(data) + "---\n"
}

// flattenScalars forces multi-line string scalars onto a single line so
// titles and descriptions never become folded blocks.
func flattenScalars(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!str" {
		n.Value = strings.TrimSpace(strings.ReplaceAll(n.Value, "\n", " "))
		n.Style = 0
	}
	for _, c := range n.Content {
		flattenScalars(c)
	}
}

// emitTOML writes one key per line in field order. Only the value kinds
// frontmatter actually uses are handled: strings, bools, ints, and
// string lists.
func emitTOML(fields []field) string {
	var b strings.Builder
	b.WriteString("+++\n")
	for _, f := range fields {
		switch v := f.value.(type) {
		case bool:
			fmt.Fprintf(&b, "%s = %t\n", f.key, v)
		case int:
			fmt.Fprintf(&b, "%s = %d\n", f.key, v)
		case []string:
			quoted := make([]string, len(v))
			for i, item := range v {
				quoted[i] = strconv.Quote(item)
			}
			fmt.Fprintf(&b, "%s = [%s]\n", f.key, strings.Join(quoted, ", "))
		default:
			fmt.Fprintf(&b, "%s = %s\n", f.key, strconv.Quote(fmt.Sprint(v)))
		}
	}
	b.WriteString("+++\n")
	return b.String()
}

func emitJSON(fields []field) string {
	var b strings.Builder
	b.WriteString("{\n")
	for i, f := range fields {
		data, err := json.Marshal(f.value)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "  %q: %s", f.key, data)
		if i < len(fields)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// Parse splits content into its frontmatter fields and body. Content
// without a recognizable frontmatter block yields an empty map and the
// input unchanged.
func Parse(content string) (map[string]any, string) {
	trimmed := strings.TrimSpace(content)

	if rest, ok := strings.CutPrefix(trimmed, "---"); ok {
		if idx := strings.Index(rest, "---"); idx != -1 {
			var fm map[string]any
			if err := yaml.Unmarshal([]byte(rest[:idx]), &fm); err == nil {
				return orEmpty(fm), strings.TrimSpace(rest[idx+3:])
			}
		}
	}

	if rest, ok := strings.CutPrefix(trimmed, "+++"); ok {
		if idx := strings.Index(rest, "+++"); idx != -1 {
			var fm map[string]any
			if err := toml.Unmarshal([]byte(rest[:idx]), &fm); err == nil {
				return orEmpty(fm), strings.TrimSpace(rest[idx+3:])
			}
		}
	}

	if strings.HasPrefix(trimmed, "{") {
		if end := matchBrace(trimmed); end > 0 {
			var fm map[string]any
			if err := json.Unmarshal([]byte(trimmed[:end+1]), &fm); err == nil {
				return orEmpty(fm), strings.TrimSpace(trimmed[end+1:])
			}
		}
	}

	return map[string]any{}, content
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

// matchBrace returns the index of the brace closing the object opened
// at position 0, or -1. String contents are skipped so embedded braces
// do not confuse the scan.
func matchBrace(s string) int {
	depth := 0
	inString := false
	escaped := false
	for i, c := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// Update rewrites the frontmatter of an existing post, merging updates
// over the parsed fields and re-emitting in the generator's format.
func (g *Generator) Update(content string, updates map[string]any) string {
	fm, body := Parse(content)
	for k, v := range updates {
		fm[k] = v
	}
	return g.Render(fm) + "\n" + body + "\n"
}

// Render emits a parsed frontmatter map as a block in the generator's
// format, with the canonical leading fields first and the rest in
// sorted order for stable output.
func (g *Generator) Render(fm map[string]any) string {
	remaining := make(map[string]any, len(fm))
	for k, v := range fm {
		remaining[k] = v
	}

	var fields []field
	for _, k := range []string{"title", "date", "draft", "description", "tags", "categories", "author", "slug", "toc"} {
		if v, ok := remaining[k]; ok {
			fields = append(fields, field{k, v})
			delete(remaining, k)
		}
	}
	rest := make([]string, 0, len(remaining))
	for k := range remaining {
		rest = append(rest, k)
	}
	sortStrings(rest)
	for _, k := range rest {
		fields = append(fields, field{k, remaining[k]})
	}

	switch g.format {
	case types.FrontmatterTOML:
		return emitTOML(fields)
	case types.FrontmatterJSON:
		return emitJSON(fields)
	default:
		return emitYAML(fields)
	}
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
