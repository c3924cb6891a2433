package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/banterworks/pitchside/pkg/models"
)

// ScriptsPerRun is the number of script ideas the generator must return.
const ScriptsPerRun = 3

// ErrMalformedOutput is returned when the script generator's response does
// not contain exactly three complete hook/premise/punchline entries.
var ErrMalformedOutput = errors.New("pipeline: malformed script output")

// BuildBrief packages the selected candidate into the input contract for
// the script generator.
func BuildBrief(c Candidate) models.ScriptBrief {
	return models.ScriptBrief{
		Topic:          c.Title,
		DramaScore:     c.Score,
		DramaReasoning: c.Breakdown.String(),
		Clubs:          c.Clubs,
	}
}

// ValidateScripts parses the generator's raw response and enforces the
// output contract: exactly three entries, each with non-empty hook, premise,
// and punchline. The JSON array may be embedded in surrounding prose or a
// code fence; anything else is ErrMalformedOutput. No partial list is ever
// returned.
func ValidateScripts(raw string) ([]models.ScriptIdea, error) {
	payload, ok := extractJSONArray(raw)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON array in response", ErrMalformedOutput)
	}

	var ideas []models.ScriptIdea
	if err := json.Unmarshal([]byte(payload), &ideas); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if len(ideas) != ScriptsPerRun {
		return nil, fmt.Errorf("%w: got %d scripts, want %d", ErrMalformedOutput, len(ideas), ScriptsPerRun)
	}
	for i, idea := range ideas {
		if strings.TrimSpace(idea.Hook) == "" ||
			strings.TrimSpace(idea.Premise) == "" ||
			strings.TrimSpace(idea.Punchline) == "" {
			return nil, fmt.Errorf("%w: script %d has empty fields", ErrMalformedOutput, i+1)
		}
	}
	return ideas, nil
}

// extractJSONArray returns the first balanced top-level JSON array in s.
// Brackets inside string literals are ignored.
func extractJSONArray(s string) (string, bool) {
	start := strings.IndexByte(s, '[')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
