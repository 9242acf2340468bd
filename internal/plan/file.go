// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/blog-engine/pkg/types"
)

// LoadOutline reads a YAML outline file. This is how a hand-written or
// previously saved outline enters the pipeline in place of planning.
func LoadOutline(path string) (*types.BlogOutline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading outline: %w", err)
	}
	var outline types.BlogOutline
	if err := yaml.Unmarshal(data, &outline); err != nil {
		return nil, fmt.Errorf("parsing outline: %w", err)
	}
	if len(outline.Sections) == 0 {
		return nil, fmt.Errorf("outline %s has no sections", path)
	}
	return &outline, nil
}

// WriteOutline saves an outline as YAML so it can be edited and fed
// back in with LoadOutline.
func WriteOutline(path string, outline *types.BlogOutline) error {
	data, err := yaml.Marshal(outline)
	if err != nil {
		return fmt.Errorf("marshaling outline: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
