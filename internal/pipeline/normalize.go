package pipeline

import (
	"github.com/banterworks/pitchside/pkg/models"
)

// Normalize converts raw trend and news records into the common Candidate
// shape. No candidate is dropped here: an empty club set and no detected
// controversy are both valid.
func Normalize(trends []models.Trend, news []models.NewsItem) []Candidate {
	candidates := make([]Candidate, 0, len(trends)+len(news))

	for _, t := range trends {
		candidates = append(candidates, Candidate{
			Title:       t.Text,
			Origin:      OriginTrend,
			Mentions:    t.Mentions,
			Rank:        t.Rank,
			FirstSeenAt: t.ObservedAt,
			Clubs:       DetectClubs(t.Text),
			Controversy: DetectControversy(t.Text, ""),
			seq:         len(candidates),
		})
	}

	for _, n := range news {
		candidates = append(candidates, Candidate{
			Title:       n.Headline,
			Origin:      OriginNews,
			NewsCount:   1,
			FirstSeenAt: n.PublishedAt,
			Clubs:       DetectClubs(n.Headline, n.Body),
			Controversy: DetectControversy(n.Headline, n.Body),
			seq:         len(candidates),
		})
	}

	return candidates
}
