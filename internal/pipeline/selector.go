package pipeline

// SelectTop picks the single highest-scoring candidate. Ties break on the
// earlier FirstSeenAt (most urgent first), then on first-seen input order.
// The second return is false when no candidate is eligible, a legitimate
// "no topics today" outcome, not an error.
func SelectTop(candidates []Candidate) (Candidate, bool) {
	var best Candidate
	found := false
	for _, c := range candidates {
		if !c.Relevant || c.Score == 0 {
			continue
		}
		if !found || better(c, best) {
			best = c
			found = true
		}
	}
	return best, found
}

func better(a, b Candidate) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if !a.FirstSeenAt.Equal(b.FirstSeenAt) {
		return a.FirstSeenAt.Before(b.FirstSeenAt)
	}
	return a.seq < b.seq
}
