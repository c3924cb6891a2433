package runner

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/banterworks/pitchside/internal/pipeline"
	"github.com/banterworks/pitchside/pkg/models"
)

const goodScripts = `[
	{"hook":"h1","premise":"p1","punchline":"x1"},
	{"hook":"h2","premise":"p2","punchline":"x2"},
	{"hook":"h3","premise":"p3","punchline":"x3"}
]`

type fakeTrends struct {
	trends []models.Trend
	err    error
}

func (f *fakeTrends) Fetch(ctx context.Context) ([]models.Trend, error) {
	return f.trends, f.err
}

type fakeNews struct {
	items []models.NewsItem
	err   error
}

func (f *fakeNews) Fetch(ctx context.Context) ([]models.NewsItem, error) {
	return f.items, f.err
}

type fakeWriter struct {
	relevant     bool
	classifyErr  error
	scripts      string
	generateErr  error
	classified   []string
	generatedFor []string
}

func (f *fakeWriter) Classify(ctx context.Context, topic, detail string) (bool, error) {
	f.classified = append(f.classified, topic)
	return f.relevant, f.classifyErr
}

func (f *fakeWriter) GenerateScripts(ctx context.Context, brief models.ScriptBrief) (string, error) {
	f.generatedFor = append(f.generatedFor, brief.Topic)
	return f.scripts, f.generateErr
}

type fakeSink struct {
	appended []models.RunResult
	err      error
}

func (f *fakeSink) AppendResult(ctx context.Context, result models.RunResult) error {
	f.appended = append(f.appended, result)
	return f.err
}

type fakeNotifier struct {
	progress []string
	errors   []string
}

func (f *fakeNotifier) Progress(m string) { f.progress = append(f.progress, m) }
func (f *fakeNotifier) Error(m string)    { f.errors = append(f.errors, m) }

func fixedClock() func() time.Time {
	now := time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC)
	return func() time.Time { return now }
}

func recentTrend(text string, mentions, rank int) models.Trend {
	return models.Trend{
		Text:       text,
		Mentions:   mentions,
		Rank:       rank,
		ObservedAt: time.Date(2026, 8, 31, 7, 0, 0, 0, time.UTC),
	}
}

func TestRunHappyPath(t *testing.T) {
	writer := &fakeWriter{relevant: true, scripts: goodScripts}
	sink := &fakeSink{}
	notifier := &fakeNotifier{}
	r := New(
		&fakeTrends{trends: []models.Trend{
			recentTrend("Chelsea sack manager after derby defeat", 5000, 1),
			recentTrend("Brentford quietly solid", 40, 9),
		}},
		&fakeNews{items: []models.NewsItem{{
			Headline:    "Chelsea sack manager after derby defeat at home",
			Body:        "The axe falls again at Stamford Bridge.",
			PublishedAt: time.Date(2026, 8, 31, 6, 0, 0, 0, time.UTC),
		}}},
		writer, zerolog.Nop(),
		WithSink(sink), WithNotifier(notifier), WithClock(fixedClock()),
	)

	result, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.Succeeded() {
		t.Fatal("want success")
	}
	if result.Topic != "Chelsea sack manager after derby defeat at home" {
		t.Errorf("topic = %q", result.Topic)
	}
	if result.TrendCount != 2 || result.NewsCount != 1 {
		t.Errorf("counts = %d trends, %d news", result.TrendCount, result.NewsCount)
	}
	if len(result.Scripts) != 3 {
		t.Errorf("scripts = %d, want 3", len(result.Scripts))
	}
	if len(result.Considered) == 0 || result.Considered[0].Topic != result.Topic {
		t.Errorf("considered = %v", result.Considered)
	}
	if len(sink.appended) != 1 {
		t.Fatalf("sink rows = %d, want 1", len(sink.appended))
	}
	if len(writer.generatedFor) != 1 {
		t.Errorf("generator called %d times", len(writer.generatedFor))
	}
	if result.ID == "" || result.Duration < 0 {
		t.Errorf("metadata not set: %+v", result)
	}
}

func TestRunNoTopicsIsDefinedOutcome(t *testing.T) {
	sink := &fakeSink{}
	r := New(&fakeTrends{}, &fakeNews{}, &fakeWriter{}, zerolog.Nop(),
		WithSink(sink), WithClock(fixedClock()))

	result, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.NoTopics {
		t.Error("want NoTopics set")
	}
	if len(sink.appended) != 0 {
		t.Error("quiet day must not write a sheet row")
	}
}

func TestRunFailClosedFilterLeadsToQuietDay(t *testing.T) {
	// No club mention, so every candidate goes through the classifier,
	// and the classifier is down.
	writer := &fakeWriter{classifyErr: errors.New("provider down")}
	r := New(
		&fakeTrends{trends: []models.Trend{recentTrend("some vague sports chatter", 100, 1)}},
		&fakeNews{}, writer, zerolog.Nop(), WithClock(fixedClock()),
	)

	result, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.NoTopics {
		t.Error("fail-closed filter with no survivors should be a quiet day")
	}
}

func TestRunDegradesWhenOneSourceFails(t *testing.T) {
	writer := &fakeWriter{relevant: true, scripts: goodScripts}
	r := New(
		&fakeTrends{err: errors.New("quota exhausted")},
		&fakeNews{items: []models.NewsItem{{
			Headline:    "Arsenal bottle 2-0 lead against Spurs",
			PublishedAt: time.Date(2026, 8, 31, 6, 0, 0, 0, time.UTC),
		}}},
		writer, zerolog.Nop(), WithClock(fixedClock()),
	)

	result, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Topic != "Arsenal bottle 2-0 lead against Spurs" {
		t.Errorf("topic = %q", result.Topic)
	}
}

func TestRunBothSourcesFailingIsQuietDay(t *testing.T) {
	notifier := &fakeNotifier{}
	sink := &fakeSink{}
	r := New(
		&fakeTrends{err: errors.New("down")},
		&fakeNews{err: errors.New("also down")},
		&fakeWriter{}, zerolog.Nop(),
		WithSink(sink), WithNotifier(notifier), WithClock(fixedClock()),
	)

	result, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.NoTopics {
		t.Error("both sources failing should end as a quiet day, not an error")
	}
	if len(sink.appended) != 0 {
		t.Error("quiet day must not write a sheet row")
	}
	if len(notifier.errors) != 0 {
		t.Errorf("no error notification expected on a quiet day: %v", notifier.errors)
	}
}

func TestRunNotifiesEachCheckpoint(t *testing.T) {
	writer := &fakeWriter{relevant: true, scripts: goodScripts}
	notifier := &fakeNotifier{}
	r := New(
		&fakeTrends{trends: []models.Trend{recentTrend("Chelsea sack manager after derby defeat", 5000, 1)}},
		&fakeNews{}, writer, zerolog.Nop(),
		WithNotifier(notifier), WithClock(fixedClock()),
	)

	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	wants := []string{
		"Collecting",
		"Found 1 trending",
		"Merged into 1",
		"passed the relevance check",
		"Today's drama",
		"Pipeline Complete",
	}
	if len(notifier.progress) != len(wants) {
		t.Fatalf("progress = %d messages, want %d: %q", len(notifier.progress), len(wants), notifier.progress)
	}
	for i, want := range wants {
		if !strings.Contains(notifier.progress[i], want) {
			t.Errorf("progress[%d] = %q, want substring %q", i, notifier.progress[i], want)
		}
	}
}

func TestRunMalformedGenerationKeepsTopic(t *testing.T) {
	writer := &fakeWriter{relevant: true, scripts: `[{"hook":"only one"}]`}
	sink := &fakeSink{}
	r := New(
		&fakeTrends{trends: []models.Trend{recentTrend("Liverpool crisis deepens", 900, 1)}},
		&fakeNews{}, writer, zerolog.Nop(),
		WithSink(sink), WithClock(fixedClock()),
	)

	result, err := r.Run(context.Background())
	if !errors.Is(err, pipeline.ErrMalformedOutput) {
		t.Fatalf("err = %v, want ErrMalformedOutput", err)
	}
	if result.Topic != "Liverpool crisis deepens" || result.Score == 0 {
		t.Errorf("failed run should keep topic and score: %+v", result)
	}
	if len(result.Scripts) != 0 {
		t.Error("no partial scripts on malformed output")
	}
	if len(sink.appended) != 0 {
		t.Error("failed run must not write a sheet row")
	}
}

func TestRunSinkFailureIsRunFailure(t *testing.T) {
	writer := &fakeWriter{relevant: true, scripts: goodScripts}
	r := New(
		&fakeTrends{trends: []models.Trend{recentTrend("Everton stun United", 700, 1)}},
		&fakeNews{}, writer, zerolog.Nop(),
		WithSink(&fakeSink{err: errors.New("permission denied")}),
		WithClock(fixedClock()),
	)

	_, err := r.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "archive") {
		t.Fatalf("err = %v, want archive failure", err)
	}
}

func TestRunClubShortcutSkipsClassifier(t *testing.T) {
	writer := &fakeWriter{relevant: true, scripts: goodScripts}
	r := New(
		&fakeTrends{trends: []models.Trend{recentTrend("Arsenal wobble in title race", 800, 1)}},
		&fakeNews{}, writer, zerolog.Nop(), WithClock(fixedClock()),
	)

	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(writer.classified) != 0 {
		t.Errorf("classifier called for club-mentioning topic: %v", writer.classified)
	}
}
