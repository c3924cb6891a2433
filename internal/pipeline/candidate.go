// Package pipeline implements the deterministic ranking core: it turns raw
// trend and news records into a deduplicated candidate set, filters it for
// Premier League relevance, scores each candidate on a 1-10 drama rubric,
// and selects the single top topic for script generation.
package pipeline

import "time"

// OriginKind records where a candidate's signals came from.
type OriginKind int

const (
	OriginTrend OriginKind = iota
	OriginNews
	OriginMerged
)

func (k OriginKind) String() string {
	switch k {
	case OriginTrend:
		return "trend"
	case OriginNews:
		return "news"
	case OriginMerged:
		return "merged"
	}
	return "unknown"
}

// ControversyKind classifies the detected controversy. The numeric order
// doubles as a specificity ranking: when two merged candidates disagree,
// the higher value wins.
type ControversyKind int

const (
	ControversyNone ControversyKind = iota
	ControversyMatchResult
	ControversyPlayerDrama
	ControversyManagerSacking
)

func (k ControversyKind) String() string {
	switch k {
	case ControversyManagerSacking:
		return "manager sacking"
	case ControversyPlayerDrama:
		return "player drama"
	case ControversyMatchResult:
		return "match result"
	}
	return "none"
}

// Candidate is the unified topic unit flowing through the pipeline.
// One candidate carries the union of the signals of every raw record
// merged into it.
type Candidate struct {
	Title  string
	Origin OriginKind

	// Mentions is the engagement count from the trend source, 0 if the
	// candidate has no trend provenance. Rank is the best (lowest) trend
	// rank among merged sources, 0 meaning absent.
	Mentions int
	Rank     int

	NewsCount   int
	FirstSeenAt time.Time

	// Clubs holds the canonical names of every top-division club detected
	// in the title or body, sorted.
	Clubs       []string
	Controversy ControversyKind

	// Score is set by the drama scorer (always in [1,10] once set; 0 means
	// not yet scored). Relevant is set by the relevance filter.
	Score     int
	Breakdown Breakdown
	Relevant  bool

	// seq is the first-seen position in the normalizer's input, used for
	// deterministic display order and tie-breaking. Absorbing a candidate
	// keeps the smaller seq.
	seq int
}

// HasClub reports whether the candidate mentions the given canonical club.
func (c *Candidate) HasClub(name string) bool {
	for _, club := range c.Clubs {
		if club == name {
			return true
		}
	}
	return false
}

// sharesClub reports whether two candidates mention at least one common club.
func sharesClub(a, b *Candidate) bool {
	for _, club := range a.Clubs {
		if b.HasClub(club) {
			return true
		}
	}
	return false
}
