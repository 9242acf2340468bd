// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/blog-engine/internal/assemble"
	"github.com/pdiddy/blog-engine/internal/frontmatter"
	"github.com/pdiddy/blog-engine/internal/generate"
	"github.com/pdiddy/blog-engine/internal/llm"
	"github.com/pdiddy/blog-engine/internal/plan"
	"github.com/pdiddy/blog-engine/internal/research"
	"github.com/pdiddy/blog-engine/internal/scrape"
	"github.com/pdiddy/blog-engine/internal/search"
	"github.com/pdiddy/blog-engine/internal/store"
	"github.com/pdiddy/blog-engine/internal/trends"
	"github.com/pdiddy/blog-engine/internal/write"
	"github.com/pdiddy/blog-engine/pkg/types"
)

func init() {
	viper.SetDefault("model.provider", "openai")
	viper.SetDefault("model.name", "gpt-4o")
	viper.SetDefault("model.temperature", 0.7)
	viper.SetDefault("model.max_tokens", 4096)
	viper.SetDefault("model.max_retries", 3)
	viper.SetDefault("model.timeout", "120s")

	viper.SetDefault("search.max_results", 10)
	viper.SetDefault("search.region", "wt-wt")
	viper.SetDefault("search.timeout", "30s")
	viper.SetDefault("search.user_agent", "blog-engine/"+version)

	viper.SetDefault("scrape.max_content_length", 50000)
	viper.SetDefault("scrape.timeout", "30s")
	viper.SetDefault("scrape.user_agent", "blog-engine/"+version)

	viper.SetDefault("research.max_search_results", 10)
	viper.SetDefault("research.max_sources", 5)
	viper.SetDefault("research.scrape_top_n", 3)

	viper.SetDefault("blog.min_word_count", 1500)
	viper.SetDefault("blog.max_word_count", 5000)
	viper.SetDefault("blog.include_toc", true)
	viper.SetDefault("blog.include_citations", true)

	viper.SetDefault("site.frontmatter_format", "yaml")
	viper.SetDefault("site.content_dir", "content/posts")

	viper.SetDefault("trends.timeout", "30s")
	viper.SetDefault("trends.user_agent", "blog-engine/"+version)
	viper.SetDefault("trends.window", "2160h")

	viper.SetDefault("store.dir", ".blog-engine")
	viper.SetDefault("store.max_results", 20)
}

// modelConfig builds the model settings shared by every stage that
// calls a model API. The API key comes from config, then .secrets/.
func modelConfig() types.ModelConfig {
	provider := types.ModelProvider(viper.GetString("model.provider"))

	secretKey := "openai-api-key"
	if provider == types.ProviderAnthropic {
		secretKey = "anthropic-api-key"
	}

	return types.ModelConfig{
		Provider:    provider,
		Model:       viper.GetString("model.name"),
		BaseURL:     viper.GetString("model.base_url"),
		APIKey:      secretDefault(secretKey, viper.GetString("model.api_key")),
		Temperature: viper.GetFloat64("model.temperature"),
		MaxTokens:   viper.GetInt("model.max_tokens"),
		MaxRetries:  viper.GetInt("model.max_retries"),
		Timeout:     viper.GetDuration("model.timeout"),
	}
}

func httpConfig(section string) types.HTTPConfig {
	return types.HTTPConfig{
		Timeout:   viper.GetDuration(section + ".timeout"),
		UserAgent: viper.GetString(section + ".user_agent"),
	}
}

// pipelineConfig assembles the full configuration from viper.
func pipelineConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Research: types.ResearchConfig{
			ModelConfig:      modelConfig(),
			MaxSearchResults: viper.GetInt("research.max_search_results"),
			MaxSources:       viper.GetInt("research.max_sources"),
			ScrapeTopN:       viper.GetInt("research.scrape_top_n"),
		},
		Search: types.SearchConfig{
			HTTPConfig: httpConfig("search"),
			MaxResults: viper.GetInt("search.max_results"),
			Region:     viper.GetString("search.region"),
		},
		Scrape: types.ScrapeConfig{
			HTTPConfig:       httpConfig("scrape"),
			MaxContentLength: viper.GetInt("scrape.max_content_length"),
		},
		Blog: types.BlogConfig{
			MinWordCount:      viper.GetInt("blog.min_word_count"),
			MaxWordCount:      viper.GetInt("blog.max_word_count"),
			IncludeTOC:        viper.GetBool("blog.include_toc"),
			IncludeCitations:  viper.GetBool("blog.include_citations"),
			DefaultTags:       viper.GetStringSlice("blog.default_tags"),
			DefaultCategories: viper.GetStringSlice("blog.default_categories"),
		},
		Site: types.SiteConfig{
			FrontmatterFormat:  types.FrontmatterFormat(viper.GetString("site.frontmatter_format")),
			DefaultFrontmatter: viper.GetStringMap("site.default_frontmatter"),
			ContentDir:         viper.GetString("site.content_dir"),
		},
		Trends: types.TrendsConfig{
			HTTPConfig: httpConfig("trends"),
			Geo:        viper.GetString("trends.geo"),
			Window:     viper.GetDuration("trends.window"),
		},
		Store: types.StoreConfig{
			Dir:        viper.GetString("store.dir"),
			MaxResults: viper.GetInt("store.max_results"),
		},
	}
}

// newGenerator wires a full pipeline from configuration. The returned
// cleanup closes the history store.
func newGenerator(cfg types.PipelineConfig) (*generate.Generator, func(), error) {
	model, err := llm.NewClient(cfg.Research.ModelConfig)
	if err != nil {
		return nil, nil, err
	}

	fm, err := frontmatter.New(cfg.Site.FrontmatterFormat, cfg.Site.DefaultFrontmatter)
	if err != nil {
		return nil, nil, err
	}

	history, err := store.Open(cfg.Store)
	if err != nil {
		return nil, nil, err
	}

	progress := os.Stderr
	g := &generate.Generator{
		Researcher: &research.Agent{
			LLM:          model,
			Backend:      &search.DuckDuckGoBackend{Client: &http.Client{Timeout: timeout(cfg.Search.Timeout)}},
			Fetcher:      scrape.New(cfg.Scrape),
			Config:       cfg.Research,
			SearchConfig: cfg.Search,
			Progress:     progress,
		},
		Planner:   &plan.Planner{LLM: model, Config: cfg.Blog, Progress: progress},
		Writer:    &write.Writer{LLM: model, Config: cfg.Blog, Progress: progress},
		Assembler: &assemble.Assembler{Frontmatter: fm, Config: cfg.Blog},
		History:   history,
		Config:    cfg.Blog,
		Progress:  progress,
	}
	return g, func() { history.Close() }, nil
}

// newTrendsClient builds the trends lookup used by enhance and the
// trends command.
func newTrendsClient(cfg types.PipelineConfig) trends.Client {
	return trends.New(cfg.Trends)
}

func timeout(d time.Duration) time.Duration {
	if d <= 0 {
		return 30 * time.Second
	}
	return d
}
