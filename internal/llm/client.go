// Package llm wraps the reasoning backend behind role-based prompting. With
// no credential configured every call returns a fixed offline payload so a
// dry run can exercise the full pipeline.
package llm

import (
	"bytes"
	"context"
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
	defaultBaseURL    = "https://openrouter.ai/api/v1/chat/completions"
	structuredRetries = 2
)

// OfflineFallback returns the fixed payload served when no credential is
// configured or when a dry-run call exhausts its retries.
func OfflineFallback() map[string]any {
	return map[string]any{
		"summary":     "Offline mode fallback",
		"probability": 0.5,
		"confidence":  0.2,
	}
}

// Client talks to an OpenRouter-style chat completions API.
type Client struct {
	apiKey      string
	model       string
	temperature float64
	baseURL     string
	liveMode    bool
	httpClient  *http.Client
	executor    failsafe.Executor[*http.Response]
}

func NewClient(cfg *config.Settings) *Client {
	return &Client{
		apiKey:      cfg.OpenRouterAPIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		baseURL:     defaultBaseURL,
		liveMode:    cfg.LiveMode,
		httpClient:  &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		executor:    clients.NewHTTPExecutor(clients.DefaultExecutorConfig(cfg.Retries)),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Chat sends a prompt and returns the raw completion text. Offline mode
// returns the fallback summary; in live mode an exhausted retry budget
// propagates the error.
func (c *Client) Chat(ctx context.Context, prompt, systemPrompt string) (string, error) {
	if c.apiKey == "" {
		return OfflineFallback()["summary"].(string), nil
	}

	content, err := c.complete(ctx, prompt, systemPrompt, nil)
	if err != nil {
		if !c.liveMode {
			slog.Warn("reasoning backend failed; using offline fallback", "error", err)
			return OfflineFallback()["summary"].(string), nil
		}
		return "", err
	}
	return content, nil
}

// ChatJSON sends a prompt requesting a JSON object response and parses the
// completion as strict structured data, tolerating prose-wrapped payloads.
func (c *Client) ChatJSON(ctx context.Context, prompt, systemPrompt string) (map[string]any, error) {
	if c.apiKey == "" {
		return OfflineFallback(), nil
	}

	content, err := c.complete(ctx, prompt, systemPrompt, &responseFormat{Type: "json_object"})
	if err == nil {
		var obj map[string]any
		obj, err = ParseStrictJSON(content, structuredRetries)
		if err == nil {
			return obj, nil
		}
	}

	if !c.liveMode {
		slog.Warn("reasoning backend failed; using offline fallback", "error", err)
		return OfflineFallback(), nil
	}
	return nil, err
}

func (c *Client) complete(ctx context.Context, prompt, systemPrompt string, format *responseFormat) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(chatRequest{
		Model:          c.model,
		Messages:       messages,
		Temperature:    c.temperature,
		ResponseFormat: format,
	})
	if err != nil {
		return "", fmt.Errorf("encoding chat request: %w", err)
	}

	resp, err := clients.ExecuteHTTP(ctx, c.executor, func() (*http.Response, error) {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
		if reqErr != nil {
			return nil, reqErr
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		return c.httpClient.Do(req)
	})
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", clients.ClassifyStatus(resp.StatusCode, c.baseURL, "OPENROUTER_API_KEY", "the model name")
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("unexpected response format: no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
