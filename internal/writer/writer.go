// Package writer adapts the raw llm.Provider seam to the two judgment calls
// the pipeline needs: per-topic relevance classification and script
// generation. It owns the prompt contracts; output validation stays with
// the pipeline.
package writer

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/banterworks/pitchside/internal/llm"
	"github.com/banterworks/pitchside/pkg/models"
)

// Writer performs the LLM-backed calls of a pipeline run.
type Writer struct {
	provider llm.Provider
	log      zerolog.Logger
}

// New creates a Writer over the given provider.
func New(provider llm.Provider, log zerolog.Logger) *Writer {
	return &Writer{provider: provider, log: log}
}

// Classify asks whether a topic is about the Premier League. The answer
// contract is a single YES or NO token; anything else is an error so the
// caller's fail-closed policy applies.
func (w *Writer) Classify(ctx context.Context, topic, detail string) (bool, error) {
	if detail == "" {
		detail = "(no further context)"
	}
	prompt := fmt.Sprintf(relevancePromptTmpl, topic, detail)

	// Low temperature: this is a judgment call, not a creative one.
	text, err := w.provider.Generate(ctx, prompt, &llm.Options{Temperature: 0.1, MaxTokens: 8})
	if err != nil {
		return false, fmt.Errorf("classify %q: %w", topic, err)
	}

	switch normalizeAnswer(text) {
	case "YES":
		return true, nil
	case "NO":
		return false, nil
	default:
		return false, fmt.Errorf("classify %q: unparseable answer %q", topic, text)
	}
}

// GenerateScripts asks for three video scripts for the selected brief and
// returns the model's raw text. The pipeline validates the structure.
func (w *Writer) GenerateScripts(ctx context.Context, brief models.ScriptBrief) (string, error) {
	detail := brief.DramaReasoning
	if len(brief.Clubs) > 0 {
		detail += " | clubs: " + strings.Join(brief.Clubs, ", ")
	}
	prompt := fmt.Sprintf(scriptsPromptTmpl, brief.Topic, detail, brief.DramaScore)

	w.log.Debug().Str("topic", brief.Topic).Msg("requesting scripts")
	text, err := w.provider.Generate(ctx, prompt, &llm.Options{Temperature: 0.9, MaxTokens: 2048})
	if err != nil {
		return "", fmt.Errorf("generate scripts for %q: %w", brief.Topic, err)
	}
	return text, nil
}

// normalizeAnswer reduces a model reply to its first word, upper-cased and
// stripped of punctuation.
func normalizeAnswer(text string) string {
	fields := strings.Fields(strings.ToUpper(text))
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[0], ".,!:\"'")
}
