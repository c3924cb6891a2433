// Package llm provides a narrow text-generation seam over hosted language
// model APIs (Gemini primary, OpenAI fallback). The deterministic pipeline
// depends only on the Provider interface, so it can be tested with fakes.
package llm

import (
	"context"
	"errors"
	"time"
)

// Provider names for routing and configuration.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Common errors returned by providers.
var (
	ErrNoAPIKey     = errors.New("llm: API key not configured")
	ErrRateLimit    = errors.New("llm: rate limit exceeded")
	ErrProviderDown = errors.New("llm: provider unavailable")
	ErrEmptyOutput  = errors.New("llm: provider returned no text")
	ErrNoProviders  = errors.New("llm: no providers configured")
)

// Options configures a single generation request. Zero values fall back to
// the provider's defaults.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Provider is the capability interface all LLM backends implement.
type Provider interface {
	// Name returns the provider identifier (e.g. "gemini").
	Name() string

	// Generate sends a single prompt and returns the model's text output.
	Generate(ctx context.Context, prompt string, opts *Options) (string, error)

	// Ping checks that the provider is reachable and the key is valid.
	Ping(ctx context.Context) error
}

// Config holds common settings for constructing a provider.
type Config struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}
