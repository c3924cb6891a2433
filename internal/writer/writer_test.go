package writer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/banterworks/pitchside/internal/llm"
	"github.com/banterworks/pitchside/pkg/models"
)

type fakeLLM struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeLLM) Name() string { return "fake" }

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts *llm.Options) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func (f *fakeLLM) Ping(ctx context.Context) error { return f.err }

func TestClassifyYes(t *testing.T) {
	fake := &fakeLLM{reply: "YES"}
	w := New(fake, zerolog.Nop())

	relevant, err := w.Classify(context.Background(), "Arsenal wobble again", "")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if !relevant {
		t.Error("want relevant=true for YES")
	}
	if len(fake.prompts) != 1 || !strings.Contains(fake.prompts[0], "Arsenal wobble again") {
		t.Errorf("prompt did not carry the topic: %v", fake.prompts)
	}
}

func TestClassifyToleratesChattyAnswers(t *testing.T) {
	cases := map[string]bool{
		"yes":                     true,
		"Yes.":                    true,
		"NO":                      false,
		"no, that's about tennis": false,
	}
	for reply, want := range cases {
		w := New(&fakeLLM{reply: reply}, zerolog.Nop())
		got, err := w.Classify(context.Background(), "topic", "")
		if err != nil {
			t.Fatalf("Classify(%q): %v", reply, err)
		}
		if got != want {
			t.Errorf("Classify(%q) = %v, want %v", reply, got, want)
		}
	}
}

func TestClassifyUnparseableIsError(t *testing.T) {
	w := New(&fakeLLM{reply: "maybe, hard to say"}, zerolog.Nop())
	if _, err := w.Classify(context.Background(), "topic", ""); err == nil {
		t.Fatal("unparseable answers must error so fail-closed applies")
	}
}

func TestClassifyPropagatesProviderError(t *testing.T) {
	w := New(&fakeLLM{err: llm.ErrProviderDown}, zerolog.Nop())
	_, err := w.Classify(context.Background(), "topic", "")
	if !errors.Is(err, llm.ErrProviderDown) {
		t.Fatalf("err = %v, want provider error wrapped", err)
	}
}

func TestGenerateScriptsCarriesBrief(t *testing.T) {
	fake := &fakeLLM{reply: "[]"}
	w := New(fake, zerolog.Nop())
	brief := models.ScriptBrief{
		Topic:          "Arsenal bottle 2-0 lead",
		DramaScore:     8,
		DramaReasoning: "club +3 (Big 6: Arsenal)",
		Clubs:          []string{"Arsenal"},
	}
	raw, err := w.GenerateScripts(context.Background(), brief)
	if err != nil {
		t.Fatalf("GenerateScripts: %v", err)
	}
	if raw != "[]" {
		t.Errorf("raw = %q, want provider output untouched", raw)
	}
	prompt := fake.prompts[0]
	for _, want := range []string{"Arsenal bottle 2-0 lead", "8/10", "club +3"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
