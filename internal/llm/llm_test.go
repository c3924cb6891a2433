package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

// fakeProvider implements Provider for router tests.
type fakeProvider struct {
	name  string
	text  string
	err   error
	calls int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Generate(ctx context.Context, prompt string, opts *Options) (string, error) {
	f.calls++
	return f.text, f.err
}

func (f *fakeProvider) Ping(ctx context.Context) error { return f.err }

func TestRouterUsesPrimary(t *testing.T) {
	primary := &fakeProvider{name: "gemini", text: "from primary"}
	fallback := &fakeProvider{name: "openai", text: "from fallback"}

	r := NewRouter("gemini", zerolog.Nop(), "openai")
	r.Register(primary)
	r.Register(fallback)

	got, err := r.Generate(context.Background(), "hello", nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "from primary" {
		t.Errorf("got %q, want primary output", got)
	}
	if fallback.calls != 0 {
		t.Errorf("fallback called %d times, want 0", fallback.calls)
	}
}

func TestRouterFallsBack(t *testing.T) {
	primary := &fakeProvider{name: "gemini", err: ErrProviderDown}
	fallback := &fakeProvider{name: "openai", text: "rescued"}

	r := NewRouter("gemini", zerolog.Nop(), "openai")
	r.Register(primary)
	r.Register(fallback)

	got, err := r.Generate(context.Background(), "hello", nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "rescued" {
		t.Errorf("got %q, want fallback output", got)
	}
	if primary.calls != 1 {
		t.Errorf("primary called %d times, want exactly 1 (no retry)", primary.calls)
	}
}

func TestRouterAllFail(t *testing.T) {
	r := NewRouter("gemini", zerolog.Nop(), "openai")
	r.Register(&fakeProvider{name: "gemini", err: ErrProviderDown})
	r.Register(&fakeProvider{name: "openai", err: ErrRateLimit})

	_, err := r.Generate(context.Background(), "hello", nil)
	if !errors.Is(err, ErrRateLimit) {
		t.Fatalf("err = %v, want last provider error wrapped", err)
	}
}

func TestRouterNoProviders(t *testing.T) {
	r := NewRouter("gemini", zerolog.Nop())
	if _, err := r.Generate(context.Background(), "hello", nil); !errors.Is(err, ErrNoProviders) {
		t.Fatalf("err = %v, want ErrNoProviders", err)
	}
}

func TestGeminiGenerateParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"hello "},{"text":"world"}]}}]}`))
	}))
	defer srv.Close()

	p, err := NewGeminiProvider("test-key", WithGeminiBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("NewGeminiProvider: %v", err)
	}
	got, err := p.Generate(context.Background(), "hi", nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "hello world" {
		t.Errorf("got %q", got)
	}
}

func TestGeminiGenerateRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p, _ := NewGeminiProvider("test-key", WithGeminiBaseURL(srv.URL))
	if _, err := p.Generate(context.Background(), "hi", nil); !errors.Is(err, ErrRateLimit) {
		t.Fatalf("err = %v, want ErrRateLimit", err)
	}
}

func TestGeminiRequiresKey(t *testing.T) {
	if _, err := NewGeminiProvider(""); !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("err = %v, want ErrNoAPIKey", err)
	}
}

func TestOpenAIGenerateParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"fallback says hi"}}]}`))
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider("test-key", WithOpenAIBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("NewOpenAIProvider: %v", err)
	}
	got, err := p.Generate(context.Background(), "hi", nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "fallback says hi" {
		t.Errorf("got %q", got)
	}
}
