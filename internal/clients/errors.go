package clients

import "fmt"

// ErrorKind classifies an upstream failure for retry and fallback decisions.
type ErrorKind string

const (
	// KindTransient covers timeouts, connection errors, 408/429 and 5xx
	// responses. These are retried and, in dry-run mode, may degrade to
	// fixture data.
	KindTransient ErrorKind = "transient"
	// KindPermanent covers all other 4xx responses. Never retried.
	KindPermanent ErrorKind = "permanent"
	// KindConfig covers missing credentials detected before any request.
	KindConfig ErrorKind = "config"
)

// APIError is the single error type for upstream API failures. Permanent
// errors carry a hint naming the credential or identifier to re-check.
type APIError struct {
	Kind   ErrorKind
	Status int
	URL    string
	Hint   string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("api error (%s)", e.Kind)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.Status)
	}
	if e.URL != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.URL)
	}
	if e.Hint != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Hint)
	}
	return msg
}

// ClassifyStatus maps a non-2xx HTTP status to an APIError. 401/403/404 get
// actionable hints; other 4xx statuses are permanent without one, except the
// retryable 408 and 429. 5xx stays transient.
func ClassifyStatus(status int, url, credentialHint, identifierHint string) *APIError {
	switch status {
	case 401:
		return &APIError{Kind: KindPermanent, Status: status, URL: url,
			Hint: "authentication failed; check " + credentialHint}
	case 403:
		return &APIError{Kind: KindPermanent, Status: status, URL: url,
			Hint: "access denied; verify " + credentialHint + " has permission"}
	case 404:
		return &APIError{Kind: KindPermanent, Status: status, URL: url,
			Hint: "not found; re-check " + identifierHint}
	case 408, 429:
		return &APIError{Kind: KindTransient, Status: status, URL: url}
	}
	if status >= 400 && status < 500 {
		return &APIError{Kind: KindPermanent, Status: status, URL: url}
	}
	return &APIError{Kind: KindTransient, Status: status, URL: url}
}
