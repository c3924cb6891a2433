// Package models defines the domain types shared between the collectors,
// the ranking pipeline, and the output sinks.
package models

import "time"

// Trend is a single trending post as returned by the trend source,
// already ranked by engagement (1 = most engaged).
type Trend struct {
	Text       string    `json:"text"`
	Rank       int       `json:"rank"`
	Mentions   int       `json:"mentions"` // likes + retweets + quotes
	ObservedAt time.Time `json:"observed_at"`
	URL        string    `json:"url,omitempty"`
	Author     string    `json:"author,omitempty"`
}

// NewsItem is a single article as returned by the news source.
type NewsItem struct {
	Headline    string    `json:"headline"`
	Body        string    `json:"body,omitempty"`
	Source      string    `json:"source"`
	URL         string    `json:"url,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}
