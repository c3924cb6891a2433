// Package runner orchestrates one end-to-end pipeline run: collect
// signals, merge and score them, pick the day's topic, generate scripts,
// archive the result, and notify.
package runner

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/banterworks/pitchside/internal/notify"
	"github.com/banterworks/pitchside/internal/pipeline"
	"github.com/banterworks/pitchside/pkg/models"
)

// shortlistSize caps the topics recorded in the run summary.
const shortlistSize = 10

// TrendSource fetches trending posts.
type TrendSource interface {
	Fetch(ctx context.Context) ([]models.Trend, error)
}

// NewsSource fetches news articles.
type NewsSource interface {
	Fetch(ctx context.Context) ([]models.NewsItem, error)
}

// ScriptWriter performs the two LLM calls of a run.
type ScriptWriter interface {
	Classify(ctx context.Context, topic, detail string) (bool, error)
	GenerateScripts(ctx context.Context, brief models.ScriptBrief) (string, error)
}

// Sink archives a completed run.
type Sink interface {
	AppendResult(ctx context.Context, result models.RunResult) error
}

// Notifier pushes progress updates to the humans watching the run.
type Notifier interface {
	Progress(message string)
	Error(message string)
}

// nopNotifier is used when no transport is configured.
type nopNotifier struct{}

func (nopNotifier) Progress(string) {}
func (nopNotifier) Error(string)    {}

// Runner wires the collaborators of a pipeline run.
type Runner struct {
	trends   TrendSource
	news     NewsSource
	writer   ScriptWriter
	sink     Sink
	notifier Notifier
	log      zerolog.Logger
	now      func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithSink sets the archive sink. Without one, results are only logged.
func WithSink(sink Sink) Option {
	return func(r *Runner) { r.sink = sink }
}

// WithNotifier sets the progress transport.
func WithNotifier(n Notifier) Option {
	return func(r *Runner) { r.notifier = n }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// New creates a Runner.
func New(trends TrendSource, news NewsSource, writer ScriptWriter, log zerolog.Logger, opts ...Option) *Runner {
	r := &Runner{
		trends:   trends,
		news:     news,
		writer:   writer,
		notifier: nopNotifier{},
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes one pipeline run. A run with no relevant topics is a
// defined outcome (NoTopics set), not an error. A run that selected a
// topic but failed later keeps the topic and score in the result so the
// failure message has context.
func (r *Runner) Run(ctx context.Context) (models.RunResult, error) {
	result := models.RunResult{
		ID:        uuid.NewString(),
		StartedAt: r.now(),
	}
	log := r.log.With().Str("run", result.ID).Logger()
	log.Info().Msg("pipeline run started")
	r.notifier.Progress("🔍 Collecting trends and news...")

	trends, news := r.collect(ctx)
	result.TrendCount = len(trends)
	result.NewsCount = len(news)
	r.notifier.Progress(fmt.Sprintf("📡 Found %d trending posts and %d articles.", len(trends), len(news)))

	candidates := pipeline.Deduplicate(pipeline.Normalize(trends, news))
	log.Info().
		Int("trends", len(trends)).
		Int("news", len(news)).
		Int("candidates", len(candidates)).
		Msg("collected signals")

	if len(candidates) == 0 {
		return r.quietDay(result, log)
	}
	r.notifier.Progress(fmt.Sprintf("🧹 Merged into %d unique topics, checking relevance...", len(candidates)))

	relevant := pipeline.FilterRelevant(ctx, candidates, r.classifier(), log)
	if ctx.Err() != nil {
		return r.fail(result, ctx.Err())
	}
	r.notifier.Progress(fmt.Sprintf("⚽ %d topics passed the relevance check, scoring...", len(relevant)))
	scored := pipeline.ScoreAll(relevant, r.now())
	result.Considered = shortlist(scored)

	top, ok := pipeline.SelectTop(scored)
	if !ok {
		return r.quietDay(result, log)
	}
	result.Topic = top.Title
	result.Score = top.Score
	result.Reasoning = top.Breakdown.String()
	log.Info().Str("topic", top.Title).Int("score", top.Score).Msg("topic selected")
	r.notifier.Progress(fmt.Sprintf("🏆 Today's drama: <b>%s</b> (%d/10)\n✍️ Writing scripts...", top.Title, top.Score))

	raw, err := r.writer.GenerateScripts(ctx, pipeline.BuildBrief(top))
	if err != nil {
		return r.fail(result, fmt.Errorf("script generation: %w", err))
	}
	scripts, err := pipeline.ValidateScripts(raw)
	if err != nil {
		return r.fail(result, err)
	}
	result.Scripts = scripts

	if r.sink != nil {
		if err := r.sink.AppendResult(ctx, result); err != nil {
			return r.fail(result, fmt.Errorf("archive: %w", err))
		}
	}

	result.Duration = r.now().Sub(result.StartedAt)
	log.Info().Dur("took", result.Duration).Msg("pipeline run complete")
	r.notifier.Progress(notify.FormatSummary(result))
	return result, nil
}

// collect fetches both sources concurrently. A failing source yields an
// empty slice; both failing leaves the run with no candidates, which ends
// as a quiet day rather than an error.
func (r *Runner) collect(ctx context.Context) ([]models.Trend, []models.NewsItem) {
	var (
		trends []models.Trend
		news   []models.NewsItem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if trends, err = r.trends.Fetch(gctx); err != nil {
			r.log.Warn().Err(err).Msg("trend source failed")
			trends = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if news, err = r.news.Fetch(gctx); err != nil {
			r.log.Warn().Err(err).Msg("news source failed")
			news = nil
		}
		return nil
	})
	// The goroutines never return errors, failures are logged and degraded.
	_ = g.Wait()

	return trends, news
}

// classifier adapts the writer's relevance call to the filter contract.
func (r *Runner) classifier() pipeline.Classifier {
	return func(ctx context.Context, c pipeline.Candidate) (bool, error) {
		var detail strings.Builder
		fmt.Fprintf(&detail, "seen via %s", c.Origin)
		if len(c.Clubs) > 0 {
			fmt.Fprintf(&detail, "; mentions %s", strings.Join(c.Clubs, ", "))
		}
		if c.Mentions > 0 {
			fmt.Fprintf(&detail, "; engagement %d", c.Mentions)
		}
		return r.writer.Classify(ctx, c.Title, detail.String())
	}
}

func (r *Runner) quietDay(result models.RunResult, log zerolog.Logger) (models.RunResult, error) {
	result.NoTopics = true
	result.Duration = r.now().Sub(result.StartedAt)
	log.Info().Msg("no relevant topics today")
	r.notifier.Progress("😴 Nothing dramatic enough today. Back tomorrow.")
	return result, nil
}

func (r *Runner) fail(result models.RunResult, err error) (models.RunResult, error) {
	result.Err = err.Error()
	result.Duration = r.now().Sub(result.StartedAt)
	r.log.Error().Err(err).Str("run", result.ID).Msg("pipeline run failed")
	r.notifier.Error(err.Error())
	return result, err
}

// shortlist keeps the highest scoring topics for the run summary,
// best first.
func shortlist(scored []pipeline.Candidate) []models.RankedTopic {
	eligible := make([]pipeline.Candidate, 0, len(scored))
	for _, c := range scored {
		if c.Relevant && c.Score > 0 {
			eligible = append(eligible, c)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Score > eligible[j].Score
	})
	if len(eligible) > shortlistSize {
		eligible = eligible[:shortlistSize]
	}
	ranked := make([]models.RankedTopic, len(eligible))
	for i, c := range eligible {
		ranked[i] = models.RankedTopic{Topic: c.Title, Score: c.Score}
	}
	return ranked
}
