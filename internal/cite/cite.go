// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cite renders source references into markdown blocks.
package cite

import (
	"fmt"
	"strings"

	"github.com/pdiddy/blog-engine/pkg/types"
)

// Style selects the reference rendering format.
type Style string

const (
	// StyleNumbered renders a numbered list under a References heading.
	StyleNumbered Style = "numbered"

	// StyleFootnote renders markdown footnote definitions.
	StyleFootnote Style = "footnote"
)

// maxDescription caps how much of a source description appears in a
// numbered reference line.
const maxDescription = 100

// References renders sources as a markdown block in the given style.
// An empty source list yields an empty string so callers can append the
// result unconditionally.
func References(sources []types.Source, style Style) string {
	if len(sources) == 0 {
		return ""
	}

	var b strings.Builder
	switch style {
	case StyleFootnote:
		for i, s := range sources {
			fmt.Fprintf(&b, "[^%d]: [%s](%s)\n", i+1, s.Title, s.URL)
		}
	default:
		b.WriteString("## References\n\n")
		for i, s := range sources {
			fmt.Fprintf(&b, "%d. [%s](%s)", i+1, s.Title, s.URL)
			if s.Description != "" {
				fmt.Fprintf(&b, " - %s", truncate(s.Description, maxDescription))
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
