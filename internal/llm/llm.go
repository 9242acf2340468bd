// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm provides a provider-neutral text generation client used by
// every stage that calls a model: research, planning, writing, and
// enhancement.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/pdiddy/blog-engine/pkg/types"
)

// Request is one generation call. Zero-valued Temperature and MaxTokens
// mean the client's configured defaults.
type Request struct {
	// System is the system prompt, empty for none.
	System string

	// Prompt is the user prompt.
	Prompt string

	// Temperature overrides the configured sampling temperature when > 0.
	Temperature float64

	// MaxTokens overrides the configured response cap when > 0.
	MaxTokens int
}

// Client generates text from a prompt. Implementations are safe for
// concurrent use.
type Client interface {
	// Generate returns the model's text response for one request.
	Generate(ctx context.Context, req Request) (string, error)

	// Model returns the model identifier the client calls.
	Model() string
}

// backoffBase controls the base duration for exponential backoff between
// failed generation attempts. Tests override this to avoid real sleeps.
var backoffBase = time.Second

// NewClient builds a Client for the configured provider, wrapped with
// retry and per-call timeout handling. Unknown providers are an error.
func NewClient(cfg types.ModelConfig) (Client, error) {
	var inner Client
	switch cfg.Provider {
	case types.ProviderOpenAI, "":
		inner = newOpenAIClient(cfg)
	case types.ProviderAnthropic:
		inner = newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &retryClient{inner: inner, maxRetries: maxRetries, timeout: cfg.Timeout}, nil
}

// retryClient retries failed generation calls with exponential backoff:
// backoffBase, 2x, 4x, ...
type retryClient struct {
	inner      Client
	maxRetries int
	timeout    time.Duration
}

func (r *retryClient) Model() string { return r.inner.Model() }

func (r *retryClient) Generate(ctx context.Context, req Request) (string, error) {
	var lastErr error
	for attempt := 0; attempt < r.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := backoffBase * (1 << (attempt - 1))
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		callCtx := ctx
		cancel := context.CancelFunc(func() {})
		if r.timeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, r.timeout)
		}
		out, err := r.inner.Generate(callCtx, req)
		cancel()
		if err == nil {
			return out, nil
		}
		lastErr = err

		// Caller cancellation is not retryable.
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return "", fmt.Errorf("generation failed after %d attempts: %w", r.maxRetries, lastErr)
}
