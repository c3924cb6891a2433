// Package trends fetches trending Premier League posts from the
// twitterapi.io advanced search endpoint and ranks them by engagement.
package trends

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/banterworks/pitchside/internal/infra"
	"github.com/banterworks/pitchside/pkg/models"
)

const (
	defaultBaseURL    = "https://api.twitterapi.io"
	searchPath        = "/twitter/tweet/advanced_search"
	defaultMaxResults = 40

	// Posts older than this are stale for a daily drama pipeline.
	maxPostAge = 72 * time.Hour
)

// ErrNoAPIKey is returned when the client is constructed without a key.
var ErrNoAPIKey = errors.New("trends: API key is required")

// defaultQueries target English-language Premier League chatter.
var defaultQueries = []string{
	"Premier League news lang:en",
	"Premier League lang:en",
	"EPL lang:en",
}

// Client queries the tweet search API. Searches are rate limited to one
// request per few seconds because the upstream plan is metered.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	queries    []string
	maxResults int
	limiter    *infra.RateLimiter
	log        zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithQueries overrides the search queries.
func WithQueries(queries []string) Option {
	return func(c *Client) {
		if len(queries) > 0 {
			c.queries = queries
		}
	}
}

// WithMaxResults caps the number of trends returned.
func WithMaxResults(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxResults = n
		}
	}
}

// WithRateLimiter overrides the inter-query rate limiter.
func WithRateLimiter(rl *infra.RateLimiter) Option {
	return func(c *Client) { c.limiter = rl }
}

// NewClient creates a trends client.
func NewClient(apiKey string, log zerolog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		queries:    defaultQueries,
		maxResults: defaultMaxResults,
		limiter:    infra.NewRateLimiter(1, 4*time.Second),
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type searchResponse struct {
	Tweets []tweet `json:"tweets"`
}

type tweet struct {
	Text         string `json:"text"`
	URL          string `json:"url"`
	TwitterURL   string `json:"twitterUrl"`
	CreatedAt    string `json:"createdAt"`
	IsReply      bool   `json:"isReply"`
	LikeCount    int    `json:"likeCount"`
	RetweetCount int    `json:"retweetCount"`
	QuoteCount   int    `json:"quoteCount"`
	Author       struct {
		UserName string `json:"userName"`
		Name     string `json:"name"`
	} `json:"author"`
}

// Fetch runs every configured query, merges the results, drops replies
// and stale posts, dedupes by text, and returns trends sorted by
// engagement with ranks assigned. Individual query failures are logged
// and skipped; an error is returned only when every query failed.
func (c *Client) Fetch(ctx context.Context) ([]models.Trend, error) {
	var (
		collected []models.Trend
		failures  int
		lastErr   error
	)
	now := time.Now()

	for _, query := range c.queries {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		tweets, err := c.search(ctx, query)
		if err != nil {
			failures++
			lastErr = err
			c.log.Warn().Err(err).Str("query", query).Msg("tweet search failed")
			continue
		}
		c.log.Debug().Str("query", query).Int("tweets", len(tweets)).Msg("tweet search done")

		for _, tw := range tweets {
			if tw.IsReply {
				continue
			}
			observed, ok := parseCreatedAt(tw.CreatedAt)
			if ok && now.Sub(observed) > maxPostAge {
				continue
			}
			if !ok {
				observed = now
			}
			text := strings.TrimSpace(tw.Text)
			if text == "" {
				continue
			}
			text = truncateRunes(text, 300)
			link := tw.URL
			if link == "" {
				link = tw.TwitterURL
			}
			collected = append(collected, models.Trend{
				Text:       text,
				Mentions:   tw.LikeCount + tw.RetweetCount + tw.QuoteCount,
				ObservedAt: observed,
				URL:        link,
				Author:     tw.Author.UserName,
			})
		}
	}

	if failures == len(c.queries) && lastErr != nil {
		return nil, fmt.Errorf("all tweet searches failed: %w", lastErr)
	}

	unique := dedupeByText(collected)
	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Mentions > unique[j].Mentions
	})
	if len(unique) > c.maxResults {
		unique = unique[:c.maxResults]
	}
	for i := range unique {
		unique[i].Rank = i + 1
	}

	c.log.Info().Int("trends", len(unique)).Msg("fetched trending posts")
	return unique, nil
}

func (c *Client) search(ctx context.Context, query string) ([]tweet, error) {
	params := url.Values{}
	params.Set("queryType", "Latest")
	params.Set("query", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+searchPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tweet search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("tweet search: status %d: %s", resp.StatusCode, snippet)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("tweet search: decode: %w", err)
	}
	return parsed.Tweets, nil
}

// parseCreatedAt parses the API's timestamp format, e.g.
// "Thu Jan 08 13:00:25 +0000 2026".
func parseCreatedAt(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RubyDate, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// dedupeByText keeps the first occurrence of each post, keyed by the
// lower-cased first 100 characters of the text.
func dedupeByText(trends []models.Trend) []models.Trend {
	seen := make(map[string]bool, len(trends))
	unique := trends[:0:0]
	for _, tr := range trends {
		key := truncateRunes(strings.ToLower(tr.Text), 100)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, tr)
	}
	return unique
}

// truncateRunes cuts s to at most n runes, never splitting a multi-byte
// character. Tweets are full of emoji.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
