package clients

import (
	"context"
	"net/http"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
)

// ShouldRetry reports whether an HTTP attempt should be retried. Network
// errors, server errors (5xx) and rate limits (429) are retryable; permanent
// client errors (401/403/404) are not.
func ShouldRetry(resp *http.Response, err error) bool {
	if err != nil {
		return true
	}
	if resp == nil {
		return true
	}
	switch resp.StatusCode {
	case http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
		http.StatusTooManyRequests:
		return true
	default:
		return false
	}
}

// ExecutorConfig configures the shared HTTP retry executor.
type ExecutorConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// DefaultExecutorConfig returns the retry settings used by all outbound clients.
func DefaultExecutorConfig(maxRetries int) ExecutorConfig {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return ExecutorConfig{
		MaxRetries: maxRetries,
		BaseDelay:  1 * time.Second,
		MaxDelay:   30 * time.Second,
	}
}

// NewHTTPExecutor builds a failsafe executor with exponential backoff and
// jitter for HTTP requests.
//
//nolint:bodyclose // [*http.Response] is a generic type parameter, not an actual response
func NewHTTPExecutor(cfg ExecutorConfig) failsafe.Executor[*http.Response] {
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 1 * time.Second
	}
	if cfg.MaxDelay < cfg.BaseDelay {
		cfg.MaxDelay = cfg.BaseDelay
	}
	retry := retrypolicy.NewBuilder[*http.Response]().
		WithBackoff(cfg.BaseDelay, cfg.MaxDelay).
		WithMaxRetries(cfg.MaxRetries).
		WithJitterFactor(0.1).
		HandleIf(func(resp *http.Response, err error) bool {
			return ShouldRetry(resp, err)
		}).
		Build()
	return failsafe.With(retry)
}

// ExecuteHTTP runs a request function through the executor. The function is
// rebuilt on every attempt so request bodies are fresh.
func ExecuteHTTP(ctx context.Context, executor failsafe.Executor[*http.Response], fn func() (*http.Response, error)) (*http.Response, error) {
	return executor.WithContext(ctx).Get(func() (*http.Response, error) {
		resp, err := fn()
		if err == nil && resp != nil && ShouldRetry(resp, nil) {
			// Drain retryable responses so the connection can be reused.
			resp.Body.Close()
		}
		return resp, err
	})
}
