package pipeline

import (
	"fmt"
	"strings"
	"time"
)

// Recency tiers for the drama rubric.
const (
	recencyHot  = 3 * time.Hour
	recencyWarm = 12 * time.Hour
)

// Breakdown records which rubric factors fired for a candidate, so the
// score can be justified in the sheet and in notifications.
type Breakdown struct {
	Club        int
	Controversy int
	Recency     int
	Engagement  int
	notes       []string
}

// Total sums the factors and clamps to the 1-10 scale.
func (b Breakdown) Total() int {
	total := b.Club + b.Controversy + b.Recency + b.Engagement
	if total < 1 {
		return 1
	}
	if total > 10 {
		return 10
	}
	return total
}

// String renders the factor breakdown as reasoning text, e.g.
// "club +3 (Big 6: Arsenal); controversy +1 (match result); recency +2 (under 3h); engagement +2 (trend #1)".
func (b Breakdown) String() string {
	if len(b.notes) == 0 {
		return "no scoring factors fired"
	}
	return strings.Join(b.notes, "; ")
}

// Score computes the 1-10 drama score for a candidate. Pure and
// deterministic given the candidate and the reference time.
func Score(c Candidate, now time.Time) (int, Breakdown) {
	var b Breakdown

	switch {
	case HasBigSix(c.Clubs):
		b.Club = 3
		b.notes = append(b.notes, fmt.Sprintf("club +3 (Big 6: %s)", bigSixIn(c.Clubs)))
	case len(c.Clubs) > 0:
		b.Club = 1
		b.notes = append(b.notes, fmt.Sprintf("club +1 (%s)", c.Clubs[0]))
	}

	switch c.Controversy {
	case ControversyManagerSacking:
		b.Controversy = 3
	case ControversyPlayerDrama:
		b.Controversy = 2
	case ControversyMatchResult:
		b.Controversy = 1
	}
	if b.Controversy > 0 {
		b.notes = append(b.notes, fmt.Sprintf("controversy +%d (%s)", b.Controversy, c.Controversy))
	}

	age := now.Sub(c.FirstSeenAt)
	switch {
	case age < recencyHot:
		b.Recency = 2
		b.notes = append(b.notes, "recency +2 (under 3h)")
	case age < recencyWarm:
		b.Recency = 1
		b.notes = append(b.notes, "recency +1 (under 12h)")
	}

	switch {
	case c.Rank == 1:
		b.Engagement = 2
		b.notes = append(b.notes, "engagement +2 (trend #1)")
	case c.Rank >= 2 && c.Rank <= 5:
		b.Engagement = 1
		b.notes = append(b.notes, fmt.Sprintf("engagement +1 (trend #%d)", c.Rank))
	}

	return b.Total(), b
}

// ScoreAll scores every candidate in place and returns the slice.
func ScoreAll(candidates []Candidate, now time.Time) []Candidate {
	for i := range candidates {
		candidates[i].Score, candidates[i].Breakdown = Score(candidates[i], now)
	}
	return candidates
}
