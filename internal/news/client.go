// Package news fetches Premier League news articles. The primary source
// is a RapidAPI news aggregator with an alternative host as fallback;
// when both are unavailable it falls back to public RSS feeds.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"

	"github.com/banterworks/pitchside/internal/infra"
	"github.com/banterworks/pitchside/pkg/models"
)

const (
	defaultPrimaryHost = "football-news-aggregator-live.p.rapidapi.com"
	defaultPrimaryPath = "/news/fourfourtwo/epl"
	defaultAltHost     = "football-news1.p.rapidapi.com"
	defaultAltPath     = "/news/premierleague"

	defaultMaxResults = 30
	cacheKey          = "news:latest"
	cacheTTL          = 15 * time.Minute
)

// defaultFeeds are public football RSS feeds used when the aggregator
// APIs are unreachable or no API key is configured.
var defaultFeeds = []string{
	"https://feeds.bbci.co.uk/sport/football/rss.xml",
	"https://www.skysports.com/rss/12040",
}

// Client fetches news articles.
type Client struct {
	apiKey      string
	httpClient  *http.Client
	primaryURL  string
	primaryHost string
	altURL      string
	altHost     string
	feeds       []string
	maxResults  int
	cache       *infra.Cache
	feedParser  *gofeed.Parser
	log         zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
		c.feedParser.Client = hc
	}
}

// WithPrimaryEndpoint overrides the primary aggregator URL and the host
// header sent with it.
func WithPrimaryEndpoint(url, host string) Option {
	return func(c *Client) {
		c.primaryURL = url
		c.primaryHost = host
	}
}

// WithAltEndpoint overrides the fallback aggregator URL and host header.
func WithAltEndpoint(url, host string) Option {
	return func(c *Client) {
		c.altURL = url
		c.altHost = host
	}
}

// WithFeeds overrides the RSS fallback feeds.
func WithFeeds(feeds []string) Option {
	return func(c *Client) { c.feeds = feeds }
}

// WithMaxResults caps the number of articles returned.
func WithMaxResults(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxResults = n
		}
	}
}

// WithCache overrides the response cache.
func WithCache(cache *infra.Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// NewClient creates a news client. An empty API key is allowed; the
// client then serves from RSS feeds only.
func NewClient(apiKey string, log zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		apiKey:      apiKey,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		primaryURL:  "https://" + defaultPrimaryHost + defaultPrimaryPath,
		primaryHost: defaultPrimaryHost,
		altURL:      "https://" + defaultAltHost + defaultAltPath,
		altHost:     defaultAltHost,
		feeds:       defaultFeeds,
		maxResults:  defaultMaxResults,
		cache:       infra.NewCache(cacheTTL),
		feedParser:  gofeed.NewParser(),
		log:         log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns recent articles, deduplicated by title. Results are
// cached for a short window so a manual trigger right after a scheduled
// run does not burn API quota.
func (c *Client) Fetch(ctx context.Context) ([]models.NewsItem, error) {
	if cached, ok := c.cache.Get(cacheKey); ok {
		items := cached.([]models.NewsItem)
		c.log.Debug().Int("articles", len(items)).Msg("serving news from cache")
		return items, nil
	}

	var items []models.NewsItem
	if c.apiKey != "" {
		var err error
		items, err = c.fetchAggregator(ctx, c.primaryURL, c.primaryHost)
		if err != nil {
			c.log.Warn().Err(err).Msg("primary news API failed, trying alternative")
			items, err = c.fetchAggregator(ctx, c.altURL, c.altHost)
			if err != nil {
				c.log.Warn().Err(err).Msg("alternative news API failed, trying RSS")
			}
		}
	}
	if len(items) == 0 {
		feedItems, err := c.fetchFeeds(ctx)
		if err != nil && len(feedItems) == 0 {
			return nil, fmt.Errorf("all news sources failed: %w", err)
		}
		items = feedItems
	}

	unique := dedupeByTitle(items)
	if len(unique) > c.maxResults {
		unique = unique[:c.maxResults]
	}
	c.cache.Set(cacheKey, unique)
	c.log.Info().Int("articles", len(unique)).Msg("fetched news articles")
	return unique, nil
}

func (c *Client) fetchAggregator(ctx context.Context, url, host string) ([]models.NewsItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("news fetch: status %d: %s", resp.StatusCode, snippet)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("news fetch: %w", err)
	}

	articles, err := extractArticles(body)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	items := make([]models.NewsItem, 0, len(articles))
	for _, raw := range articles {
		item := parseArticle(raw, now)
		if item.Headline != "" {
			items = append(items, item)
		}
	}
	return items, nil
}

// extractArticles handles the response shapes the aggregators use: a
// bare array, or an object wrapping the array under one of several keys.
func extractArticles(body []byte) ([]map[string]any, error) {
	var asList []map[string]any
	if err := json.Unmarshal(body, &asList); err == nil {
		return asList, nil
	}

	var asObject map[string]json.RawMessage
	if err := json.Unmarshal(body, &asObject); err != nil {
		return nil, fmt.Errorf("news fetch: unexpected response shape: %w", err)
	}
	for _, key := range []string{"data", "articles", "news", "result"} {
		raw, ok := asObject[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &asList); err == nil {
			return asList, nil
		}
	}
	return nil, fmt.Errorf("news fetch: no article list in response")
}

// parseArticle maps an article to a NewsItem, tolerating the field
// names different aggregators use.
func parseArticle(raw map[string]any, now time.Time) models.NewsItem {
	title := firstString(raw, "title", "headline", "name")
	summary := firstString(raw, "summary", "description", "excerpt", "content")
	if len(summary) > 200 {
		summary = summary[:200]
	}
	source := firstString(raw, "source", "provider", "sourceName")
	if source == "" {
		source = "Unknown"
	}
	return models.NewsItem{
		Headline:    strings.TrimSpace(title),
		Body:        strings.TrimSpace(summary),
		Source:      source,
		URL:         firstString(raw, "url", "link", "originalUrl"),
		PublishedAt: parsePublished(firstString(raw, "publishedAt", "published_at", "date", "timestamp"), now),
	}
}

func firstString(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := raw[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// parsePublished parses an ISO timestamp. An unparseable or missing
// value falls back to the fetch time so the item still scores as fresh.
func parsePublished(s string, now time.Time) time.Time {
	if s == "" {
		return now
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return now
}

func (c *Client) fetchFeeds(ctx context.Context) ([]models.NewsItem, error) {
	var (
		items   []models.NewsItem
		lastErr error
	)
	now := time.Now()
	for _, feedURL := range c.feeds {
		feed, err := c.feedParser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			lastErr = err
			c.log.Warn().Err(err).Str("feed", feedURL).Msg("feed fetch failed")
			continue
		}
		source := feed.Title
		for _, entry := range feed.Items {
			published := now
			if entry.PublishedParsed != nil {
				published = *entry.PublishedParsed
			}
			items = append(items, models.NewsItem{
				Headline:    strings.TrimSpace(entry.Title),
				Body:        stripHTML(entry.Description),
				Source:      source,
				URL:         entry.Link,
				PublishedAt: published,
			})
		}
	}
	return items, lastErr
}

// stripHTML reduces feed descriptions, which are often HTML fragments,
// to plain text.
func stripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(doc.Text())
}

func dedupeByTitle(items []models.NewsItem) []models.NewsItem {
	seen := make(map[string]bool, len(items))
	unique := items[:0:0]
	for _, item := range items {
		key := strings.ToLower(item.Headline)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, item)
	}
	return unique
}
