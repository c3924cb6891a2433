package models

import "time"

// ScriptBrief is the immutable input handed to the script generator
// once a topic has been selected.
type ScriptBrief struct {
	Topic          string   `json:"topic"`
	DramaScore     int      `json:"drama_score"`
	DramaReasoning string   `json:"drama_reasoning"`
	Clubs          []string `json:"clubs"`
}

// ScriptIdea is one short-form video script: hook, premise, punchline.
// Exactly three are produced per run.
type ScriptIdea struct {
	Hook      string `json:"hook"`
	Premise   string `json:"premise"`
	Punchline string `json:"punchline"`
}

// RankedTopic is a scored topic retained for the run summary.
type RankedTopic struct {
	Topic string `json:"topic"`
	Score int    `json:"score"`
}

// RunResult is the outcome of one pipeline run. It is what the sheet row,
// the Telegram summary, and the CLI output are rendered from.
type RunResult struct {
	ID         string        `json:"id"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`
	TrendCount int           `json:"trend_count"`
	NewsCount  int           `json:"news_count"`

	// NoTopics marks the defined empty-day outcome: nothing relevant was
	// found, which is not a failure.
	NoTopics bool `json:"no_topics,omitempty"`

	Topic      string        `json:"topic,omitempty"`
	Score      int           `json:"score,omitempty"`
	Reasoning  string        `json:"reasoning,omitempty"`
	Scripts    []ScriptIdea  `json:"scripts,omitempty"`
	Considered []RankedTopic `json:"considered,omitempty"`

	Err string `json:"error,omitempty"`
}

// Succeeded reports whether the run produced scripts.
func (r *RunResult) Succeeded() bool {
	return r.Err == "" && !r.NoTopics && len(r.Scripts) > 0
}
