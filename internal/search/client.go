// Package search wraps the external neural-search API used to gather
// evidence. With no API key configured it serves embedded fixture rows so a
// dry run can exercise the full pipeline offline.
package search

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/failsafe-go/failsafe-go"

	"metacbot/internal/clients"
	"metacbot/internal/config"
)

const (
	defaultBaseURL    = "https://api.exa.ai/search"
	defaultNumResults = 10
	defaultSearchType = "neural"
)

//go:embed fixtures/results.json
var fixtureJSON []byte

// Result is one normalized search row.
type Result struct {
	Title         string   `json:"title"`
	URL           string   `json:"url"`
	Text          string   `json:"text"`
	Highlights    []string `json:"highlights,omitempty"`
	Score         float64  `json:"score"`
	PublishedDate string   `json:"publishedDate,omitempty"`
	Author        string   `json:"author,omitempty"`
}

// Client talks to the search API with bounded retries and a per-run query
// cache.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	executor   failsafe.Executor[*http.Response]
	cache      *Cache
}

func NewClient(cfg *config.Settings) *Client {
	return &Client{
		apiKey:     cfg.ExaAPIKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		executor:   clients.NewHTTPExecutor(clients.DefaultExecutorConfig(cfg.Retries)),
		cache:      NewCache(10 * time.Minute),
	}
}

type searchRequest struct {
	Query      string          `json:"query"`
	NumResults int             `json:"numResults"`
	Type       string          `json:"type"`
	Contents   requestContents `json:"contents"`
}

type requestContents struct {
	Highlights highlightOpts `json:"highlights"`
	Text       textOpts      `json:"text"`
}

type highlightOpts struct {
	NumSentences int `json:"numSentences"`
}

type textOpts struct {
	MaxCharacters int `json:"maxCharacters"`
}

type searchResponse struct {
	Results []Result `json:"results"`
}

// Search returns normalized rows for a query. Repeat queries within one run
// hit the in-memory cache instead of the API. Without an API key the embedded
// fixture rows are returned.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	if rows, ok := c.cache.Get(query); ok {
		return rows, nil
	}

	if c.apiKey == "" {
		rows := fixtureResults()
		c.cache.Set(query, rows)
		return rows, nil
	}

	body, err := json.Marshal(searchRequest{
		Query:      query,
		NumResults: defaultNumResults,
		Type:       defaultSearchType,
		Contents: requestContents{
			Highlights: highlightOpts{NumSentences: 3},
			Text:       textOpts{MaxCharacters: 1000},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding search request: %w", err)
	}

	resp, err := clients.ExecuteHTTP(ctx, c.executor, func() (*http.Response, error) {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
		if reqErr != nil {
			return nil, reqErr
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-api-key", c.apiKey)
		return c.httpClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, clients.ClassifyStatus(resp.StatusCode, c.baseURL, "EXA_API_KEY", "the search endpoint")
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	c.cache.Set(query, parsed.Results)
	return parsed.Results, nil
}

// SearchRanked returns results explicitly sorted by descending score,
// independent of API ordering.
func (c *Client) SearchRanked(ctx context.Context, query string) ([]Result, error) {
	rows, err := c.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	sorted := make([]Result, len(rows))
	copy(sorted, rows)
	SortByScore(sorted)
	return sorted, nil
}

func fixtureResults() []Result {
	var parsed searchResponse
	if err := json.Unmarshal(fixtureJSON, &parsed); err != nil {
		slog.Warn("failed to load search fixture", "error", err)
		return nil
	}
	return parsed.Results
}
