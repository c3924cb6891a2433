package news

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
<title>BBC Sport Football</title>
<item>
  <title>Everton appoint new manager</title>
  <description>&lt;p&gt;Everton have &lt;b&gt;confirmed&lt;/b&gt; the appointment.&lt;/p&gt;</description>
  <link>https://example.org/everton</link>
  <pubDate>Mon, 31 Aug 2026 09:00:00 GMT</pubDate>
</item>
</channel></rss>`

func TestFetchPrimaryAggregator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-RapidAPI-Key"); got != "test-key" {
			t.Errorf("X-RapidAPI-Key = %q", got)
		}
		if got := r.Header.Get("X-RapidAPI-Host"); got != "primary.test" {
			t.Errorf("X-RapidAPI-Host = %q", got)
		}
		fmt.Fprint(w, `[
			{"title":"Chelsea sack manager","description":"Gone by lunchtime.","source":"Goal","url":"https://example.org/1","publishedAt":"2026-08-31T10:00:00Z"},
			{"headline":"Spurs hold on","excerpt":"A rare clean sheet.","provider":"ESPN","link":"https://example.org/2"}
		]`)
	}))
	defer srv.Close()

	c := NewClient("test-key", zerolog.Nop(),
		WithPrimaryEndpoint(srv.URL, "primary.test"))
	got, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d articles, want 2", len(got))
	}
	if got[0].Headline != "Chelsea sack manager" || got[0].Source != "Goal" {
		t.Errorf("first article = %+v", got[0])
	}
	if got[0].PublishedAt.IsZero() {
		t.Error("publishedAt not parsed")
	}
	if got[1].Headline != "Spurs hold on" || got[1].Source != "ESPN" {
		t.Errorf("alternate field names not mapped: %+v", got[1])
	}
}

func TestFetchUnwrapsObjectResponses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"articles":[{"name":"Wolves stun City","content":"Late winner at Molineux."}]}`)
	}))
	defer srv.Close()

	c := NewClient("test-key", zerolog.Nop(),
		WithPrimaryEndpoint(srv.URL, "primary.test"))
	got, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 1 || got[0].Headline != "Wolves stun City" {
		t.Fatalf("got %v", got)
	}
	if got[0].Source != "Unknown" {
		t.Errorf("source = %q, want Unknown default", got[0].Source)
	}
}

func TestFetchFallsBackToAltHost(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer primary.Close()
	alt := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-RapidAPI-Host"); got != "alt.test" {
			t.Errorf("X-RapidAPI-Host = %q", got)
		}
		fmt.Fprint(w, `{"result":[{"title":"Villa edge thriller"}]}`)
	}))
	defer alt.Close()

	c := NewClient("test-key", zerolog.Nop(),
		WithPrimaryEndpoint(primary.URL, "primary.test"),
		WithAltEndpoint(alt.URL, "alt.test"))
	got, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 1 || got[0].Headline != "Villa edge thriller" {
		t.Fatalf("got %v", got)
	}
}

func TestFetchFallsBackToFeedsWithoutKey(t *testing.T) {
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssFixture)
	}))
	defer feed.Close()

	c := NewClient("", zerolog.Nop(), WithFeeds([]string{feed.URL}))
	got, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d articles, want 1", len(got))
	}
	if got[0].Headline != "Everton appoint new manager" {
		t.Errorf("headline = %q", got[0].Headline)
	}
	if got[0].Body != "Everton have confirmed the appointment." {
		t.Errorf("body = %q, want HTML stripped", got[0].Body)
	}
	if got[0].Source != "BBC Sport Football" {
		t.Errorf("source = %q", got[0].Source)
	}
	if got[0].PublishedAt.IsZero() {
		t.Error("pubDate not parsed")
	}
}

func TestFetchDedupesAndCaps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"title":"Big derby result"},
			{"title":"BIG DERBY RESULT"},
			{"title":"Keeper howler costs points"},
			{"title":"Transfer saga drags on"}
		]`)
	}))
	defer srv.Close()

	c := NewClient("test-key", zerolog.Nop(),
		WithPrimaryEndpoint(srv.URL, "primary.test"),
		WithMaxResults(2))
	got, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d articles, want dedupe then cap to 2", len(got))
	}
	if got[0].Headline != "Big derby result" || got[1].Headline != "Keeper howler costs points" {
		t.Errorf("got %v", got)
	}
}

func TestFetchServesFromCache(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `[{"title":"Cached story"}]`)
	}))
	defer srv.Close()

	c := NewClient("test-key", zerolog.Nop(),
		WithPrimaryEndpoint(srv.URL, "primary.test"))
	for i := 0; i < 3; i++ {
		if _, err := c.Fetch(context.Background()); err != nil {
			t.Fatalf("Fetch %d: %v", i, err)
		}
	}
	if calls != 1 {
		t.Errorf("upstream called %d times, want 1", calls)
	}
}

func TestFetchErrorsWhenEverythingFails(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer down.Close()

	c := NewClient("test-key", zerolog.Nop(),
		WithPrimaryEndpoint(down.URL, "primary.test"),
		WithAltEndpoint(down.URL, "alt.test"),
		WithFeeds([]string{down.URL}))
	c.cache.Invalidate("news:latest")
	if _, err := c.Fetch(context.Background()); err == nil {
		t.Fatal("want error when primary, alt, and feeds all fail")
	}
}

func TestFetchDefaultsUnparseableDateToFetchTime(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"title":"Wolves sign striker","date":"next tuesday"},
			{"title":"Fulham extend contract"}
		]`)
	}))
	defer srv.Close()

	before := time.Now()
	c := NewClient("test-key", zerolog.Nop(),
		WithPrimaryEndpoint(srv.URL, "primary.test"))
	got, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d articles, want 2", len(got))
	}
	for _, item := range got {
		if item.PublishedAt.Before(before) {
			t.Errorf("%q: PublishedAt = %v, want fetch time or later", item.Headline, item.PublishedAt)
		}
	}
}
