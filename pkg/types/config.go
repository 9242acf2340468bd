// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "blog-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ModelProvider identifies the model backend.
type ModelProvider string

const (
	ProviderOpenAI    ModelProvider = "openai"
	ProviderAnthropic ModelProvider = "anthropic"
)

// ModelConfig holds shared settings for stages that call a Generative AI API.
type ModelConfig struct {
	// Provider selects the backend: openai or anthropic.
	Provider ModelProvider `json:"provider" yaml:"provider"`

	// Model is the model identifier (e.g. "gpt-4o").
	Model string `json:"model" yaml:"model"`

	// BaseURL overrides the API endpoint, for OpenAI-compatible local
	// servers. Empty means the provider default.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// APIKey is the authentication key for the API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Temperature is the sampling temperature (default 0.7).
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// MaxTokens caps the response length (default 4096).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// Timeout is the per-request timeout (default 120s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// SearchConfig holds settings for the web search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of results per query (default 10).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Region is the search region code (default "wt-wt", worldwide).
	Region string `json:"region" yaml:"region"`
}

// ScrapeConfig holds settings for page fetching.
type ScrapeConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxContentLength truncates extracted text beyond this many
	// characters (default 50000).
	MaxContentLength int `json:"max_content_length" yaml:"max_content_length"`
}

// ResearchConfig holds settings for the research stage.
type ResearchConfig struct {
	ModelConfig `yaml:",inline"`

	// MaxSearchResults caps the search hits embedded in the synthesis
	// prompt (default 10).
	MaxSearchResults int `json:"max_search_results" yaml:"max_search_results"`

	// MaxSources caps the citable references carried into the post (default 5).
	MaxSources int `json:"max_sources" yaml:"max_sources"`

	// ScrapeTopN is how many top results get a full-text fetch (default 3).
	ScrapeTopN int `json:"scrape_top_n" yaml:"scrape_top_n"`
}

// FrontmatterFormat selects the frontmatter serialization.
type FrontmatterFormat string

const (
	FrontmatterYAML FrontmatterFormat = "yaml"
	FrontmatterTOML FrontmatterFormat = "toml"
	FrontmatterJSON FrontmatterFormat = "json"
)

// SiteConfig holds settings for the target site's content layout.
type SiteConfig struct {
	// FrontmatterFormat is yaml, toml, or json.
	FrontmatterFormat FrontmatterFormat `json:"frontmatter_format" yaml:"frontmatter_format"`

	// DefaultFrontmatter holds fields added to every post unless the
	// post already sets them.
	DefaultFrontmatter map[string]any `json:"default_frontmatter,omitempty" yaml:"default_frontmatter,omitempty"`

	// ContentDir is the site content directory (e.g. "content/posts").
	ContentDir string `json:"content_dir" yaml:"content_dir"`
}

// BlogConfig holds settings for post generation.
type BlogConfig struct {
	// MinWordCount is the default target length (default 1500).
	MinWordCount int `json:"min_word_count" yaml:"min_word_count"`

	// MaxWordCount bounds enhancement expansion (default 5000).
	MaxWordCount int `json:"max_word_count" yaml:"max_word_count"`

	// IncludeTOC inserts a generated table of contents under the title.
	IncludeTOC bool `json:"include_toc" yaml:"include_toc"`

	// IncludeCitations appends a references block when sources exist.
	IncludeCitations bool `json:"include_citations" yaml:"include_citations"`

	// DefaultTags are suggested to the planner for every post.
	DefaultTags []string `json:"default_tags,omitempty" yaml:"default_tags,omitempty"`

	// DefaultCategories are suggested to the planner for every post.
	DefaultCategories []string `json:"default_categories,omitempty" yaml:"default_categories,omitempty"`
}

// TrendsConfig holds settings for the trends lookup tool.
type TrendsConfig struct {
	HTTPConfig `yaml:",inline"`

	// Geo is the region filter, empty for worldwide.
	Geo string `json:"geo,omitempty" yaml:"geo,omitempty"`

	// Window is the lookback window (default 90 days).
	Window time.Duration `json:"window" yaml:"window"`
}

// StoreConfig holds settings for the post history index.
type StoreConfig struct {
	// Dir is the directory holding the history database.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of listed runs (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Research ResearchConfig `json:"research" yaml:"research"`
	Search   SearchConfig   `json:"search" yaml:"search"`
	Scrape   ScrapeConfig   `json:"scrape" yaml:"scrape"`
	Blog     BlogConfig     `json:"blog" yaml:"blog"`
	Site     SiteConfig     `json:"site" yaml:"site"`
	Trends   TrendsConfig   `json:"trends" yaml:"trends"`
	Store    StoreConfig    `json:"store" yaml:"store"`
}
