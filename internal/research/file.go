// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/blog-engine/pkg/types"
)

// File is the on-disk representation of a research run. A saved brief
// can be reloaded into a later generation run without re-querying the
// web or the model.
type File struct {
	Topic          string                 `yaml:"topic"`
	Summary        string                 `yaml:"summary"`
	Sources        []types.Source         `yaml:"sources,omitempty"`
	SearchResults  []types.SearchResult   `yaml:"search_results,omitempty"`
	ScrapedContent []types.ScrapedContent `yaml:"scraped_content,omitempty"`
	Timestamp      time.Time              `yaml:"timestamp"`
}

// WriteFile saves a research summary to a YAML file.
func WriteFile(path string, rs *types.ResearchSummary) error {
	f := File{
		Topic:          rs.Topic,
		Summary:        rs.Summary,
		Sources:        rs.Sources,
		SearchResults:  rs.SearchResults,
		ScrapedContent: rs.ScrapedContent,
		Timestamp:      time.Now(),
	}

	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("marshaling research file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile loads a previously saved research file from disk.
func ReadFile(path string) (*types.ResearchSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading research file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing research file: %w", err)
	}
	return &types.ResearchSummary{
		Topic:          f.Topic,
		Summary:        f.Summary,
		Sources:        f.Sources,
		SearchResults:  f.SearchResults,
		ScrapedContent: f.ScrapedContent,
	}, nil
}
