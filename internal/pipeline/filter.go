package pipeline

import (
	"context"

	"github.com/rs/zerolog"
)

// Classifier is the external relevance judgment: does this candidate belong
// to the target domain? It is typically backed by an LLM call and may fail.
type Classifier func(ctx context.Context, c Candidate) (bool, error)

// FilterRelevant keeps only candidates judged relevant, preserving input
// order. A candidate that already mentions a known club is accepted without
// invoking the classifier. When the classifier errors the candidate is
// excluded (fail-closed) and the exclusion logged as a degraded result;
// the pipeline itself carries on.
func FilterRelevant(ctx context.Context, candidates []Candidate, classify Classifier, log zerolog.Logger) []Candidate {
	kept := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if len(c.Clubs) > 0 {
			c.Relevant = true
			kept = append(kept, c)
			continue
		}
		if classify == nil {
			continue
		}
		relevant, err := classify(ctx, c)
		if err != nil {
			log.Warn().Err(err).Str("title", c.Title).
				Msg("relevance check failed, excluding candidate")
			continue
		}
		if relevant {
			c.Relevant = true
			kept = append(kept, c)
		}
	}
	return kept
}
