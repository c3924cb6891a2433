package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Router dispatches generation requests through a primary provider with an
// ordered fallback chain. Each provider is tried once per request; retry
// policy, if any, belongs to the caller.
type Router struct {
	mu        sync.RWMutex
	providers map[string]Provider
	primary   string
	fallbacks []string
	log       zerolog.Logger
}

// NewRouter creates a router with the given primary provider name.
func NewRouter(primary string, log zerolog.Logger, fallbacks ...string) *Router {
	return &Router{
		providers: make(map[string]Provider),
		primary:   primary,
		fallbacks: fallbacks,
		log:       log,
	}
}

// Register adds a provider to the router.
func (r *Router) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.Name()] = p
}

// Name identifies the router by its primary provider.
func (r *Router) Name() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.primary
}

// Generate tries the primary provider, then each fallback in order.
func (r *Router) Generate(ctx context.Context, prompt string, opts *Options) (string, error) {
	chain := r.chain()
	if len(chain) == 0 {
		return "", ErrNoProviders
	}

	var lastErr error
	for _, name := range chain {
		provider, ok := r.provider(name)
		if !ok {
			continue
		}
		text, err := provider.Generate(ctx, prompt, opts)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return "", lastErr
		}
		r.log.Warn().Err(err).Str("provider", name).Msg("provider failed, trying next")
	}
	if lastErr == nil {
		return "", ErrNoProviders
	}
	return "", fmt.Errorf("all providers failed: %w", lastErr)
}

// Ping checks the primary provider.
func (r *Router) Ping(ctx context.Context) error {
	provider, ok := r.provider(r.primary)
	if !ok {
		return fmt.Errorf("%w: primary %q not registered", ErrNoProviders, r.primary)
	}
	return provider.Ping(ctx)
}

func (r *Router) chain() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	chain := make([]string, 0, 1+len(r.fallbacks))
	chain = append(chain, r.primary)
	for _, name := range r.fallbacks {
		if name != r.primary {
			chain = append(chain, name)
		}
	}
	return chain
}

func (r *Router) provider(name string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	return p, ok
}
