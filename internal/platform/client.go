// Package platform is the question-source collaborator: tournament metadata,
// question listing, forecast submission and comments against a Metaculus-style
// HTTP API. Without a token it serves embedded fixture data; in dry-run mode
// transient upstream failures also degrade to fixtures instead of aborting.
package platform

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/failsafe-go/failsafe-go"

	"metacbot/internal/clients"
	"metacbot/internal/config"
	"metacbot/internal/forecast"
	"metacbot/internal/question"
)

const defaultBaseURL = "https://www.metaculus.com/api"

//go:embed fixtures/tournament.json
var tournamentFixture []byte

//go:embed fixtures/questions.json
var questionsFixture []byte

// Client talks to the question-source API.
type Client struct {
	baseURL      string
	token        string
	tournamentID string
	liveMode     bool
	httpClient   *http.Client
	executor     failsafe.Executor[*http.Response]
}

func NewClient(cfg *config.Settings) *Client {
	return &Client{
		baseURL:      defaultBaseURL,
		token:        cfg.MetaculusToken,
		tournamentID: cfg.TournamentID,
		liveMode:     cfg.LiveMode,
		httpClient:   &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		executor:     clients.NewHTTPExecutor(clients.DefaultExecutorConfig(cfg.Retries)),
	}
}

// TournamentMeta fetches the parent project's window metadata.
func (c *Client) TournamentMeta(ctx context.Context) (question.TournamentMeta, error) {
	var meta question.TournamentMeta
	if c.token == "" {
		err := json.Unmarshal(tournamentFixture, &meta)
		return meta, err
	}

	url := fmt.Sprintf("%s/projects/%s/", c.baseURL, c.tournamentID)
	if err := c.requestJSON(ctx, http.MethodGet, url, nil, &meta); err != nil {
		if !c.liveMode {
			slog.Warn("tournament request failed; falling back to fixture data", "error", err)
			meta = question.TournamentMeta{}
			ferr := json.Unmarshal(tournamentFixture, &meta)
			return meta, ferr
		}
		return meta, err
	}
	return meta, nil
}

type post struct {
	ID       int                `json:"id"`
	Question *question.Question `json:"question"`
}

type postsResponse struct {
	Results []post `json:"results"`
}

// Questions lists the tournament's forecastable questions, annotating each
// with the id of its parent post.
func (c *Client) Questions(ctx context.Context) ([]question.Question, error) {
	if c.token == "" {
		return parseQuestions(questionsFixture)
	}

	url := fmt.Sprintf(
		"%s/posts/?tournaments=%s&has_group=false&order_by=-hotness&forecast_type=all&project=%s&statuses=open,upcoming&include_description=true&limit=100",
		c.baseURL, c.tournamentID, c.tournamentID,
	)
	var parsed postsResponse
	if err := c.requestJSON(ctx, http.MethodGet, url, nil, &parsed); err != nil {
		if !c.liveMode {
			slog.Warn("question listing failed; falling back to fixture data", "error", err)
			return parseQuestions(questionsFixture)
		}
		return nil, err
	}
	return postsToQuestions(parsed), nil
}

func parseQuestions(data []byte) ([]question.Question, error) {
	var parsed postsResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing questions fixture: %w", err)
	}
	return postsToQuestions(parsed), nil
}

func postsToQuestions(parsed postsResponse) []question.Question {
	questions := make([]question.Question, 0, len(parsed.Results))
	for _, p := range parsed.Results {
		if p.Question == nil {
			continue
		}
		q := *p.Question
		q.PostID = p.ID
		questions = append(questions, q)
	}
	return questions
}

// Submit posts one forecast for a question. The body is a one-element array
// keyed by question id, merged with the type-specific payload.
func (c *Client) Submit(ctx context.Context, q question.Question, f forecast.Forecast, reasoning string) (map[string]any, error) {
	entry := map[string]any{"question": q.ID}
	for k, v := range FormatPayload(q, f) {
		entry[k] = v
	}
	body := []map[string]any{entry}

	var raw any
	url := c.baseURL + "/questions/forecast/"
	if err := c.requestJSON(ctx, http.MethodPost, url, body, &raw); err != nil {
		return nil, err
	}
	return coerceObject(raw), nil
}

// coerceObject keeps non-object API responses (arrays, nulls) usable for the
// audit log.
func coerceObject(raw any) map[string]any {
	if m, ok := raw.(map[string]any); ok {
		return m
	}
	if raw == nil {
		return map[string]any{}
	}
	return map[string]any{"response": raw}
}

// PostComment attaches a private comment carrying the reasoning text to a
// post.
func (c *Client) PostComment(ctx context.Context, postID int, text string) (map[string]any, error) {
	body := map[string]any{
		"text":              text,
		"parent":            nil,
		"included_forecast": true,
		"is_private":        true,
		"on_post":           postID,
	}

	var raw any
	url := c.baseURL + "/comments/create/"
	if err := c.requestJSON(ctx, http.MethodPost, url, body, &raw); err != nil {
		return nil, err
	}
	return coerceObject(raw), nil
}

func (c *Client) requestJSON(ctx context.Context, method, url string, body, target any) error {
	var encoded []byte
	if body != nil {
		var err error
		encoded, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
	}

	resp, err := clients.ExecuteHTTP(ctx, c.executor, func() (*http.Response, error) {
		var reader io.Reader
		if encoded != nil {
			reader = bytes.NewReader(encoded)
		}
		req, reqErr := http.NewRequestWithContext(ctx, method, url, reader)
		if reqErr != nil {
			return nil, reqErr
		}
		req.Header.Set("Content-Type", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Token "+c.token)
		}
		return c.httpClient.Do(req)
	})
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return clients.ClassifyStatus(resp.StatusCode, url, "METACULUS_TOKEN", "TOURNAMENT_ID")
	}

	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decoding response from %s: %w", url, err)
	}
	return nil
}
