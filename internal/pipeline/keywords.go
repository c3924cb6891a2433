package pipeline

import (
	"regexp"
	"strings"
)

// Keyword tables for the controversy heuristics. Kept as static data so the
// detection rules are testable and reviewable in one place.
var (
	sackingTerms = []string{
		"sack", "sacked", "sacking", "fired", "fires", "dismissed",
		"dismissal", "axed", "parted ways", "relieved of his duties",
		"mutual consent",
	}

	playerDramaTerms = []string{
		"red card", "sent off", "bust-up", "bust up", "scandal", "feud",
		"spat", "outburst", "furious", "storm", "banned", "fined",
		"training ground row", "dressing room",
	}

	resultTerms = []string{
		"beat", "beats", "beaten", "lost", "loses", "defeat", "draw",
		"drew", "win over", "thrash", "thrashed", "comeback", "bottle",
		"bottled", "blew", "throw away", "threw away", "equaliser",
		"hat-trick", "clean sheet", "stoppage time", "late winner",
	}
)

var (
	// scorelinePattern matches scorelines like "2-0" or "3 - 2".
	scorelinePattern = regexp.MustCompile(`\b\d+\s*-\s*\d+\b`)

	// playerNamePattern is a crude proper-name detector: two or more
	// consecutive capitalised words in the original (non-lowercased) text.
	playerNamePattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+\b`)
)

// DetectControversy classifies the controversy in the given title and body.
// Precedence: manager sacking > player drama > match result > none.
func DetectControversy(title, body string) ControversyKind {
	text := title + " " + body
	lower := strings.ToLower(text)

	if containsAny(lower, sackingTerms) {
		return ControversyManagerSacking
	}
	if containsAny(lower, playerDramaTerms) && playerNamePattern.MatchString(text) {
		return ControversyPlayerDrama
	}
	if containsAny(lower, resultTerms) || scorelinePattern.MatchString(lower) {
		return ControversyMatchResult
	}
	return ControversyNone
}

func containsAny(lower string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
