package llm

import (
	"encoding/json"
	"errors"
	"regexp"
)

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// ParseStrictJSON decodes a JSON object from raw text, tolerating a backend
// that wraps the payload in explanatory prose: on a decode failure the first
// brace-delimited object in the text is extracted and parsing retried, up to
// the retry budget.
func ParseStrictJSON(raw string, retries int) (map[string]any, error) {
	candidate := raw
	for attempt := 0; attempt <= retries; attempt++ {
		var obj map[string]any
		if err := json.Unmarshal([]byte(candidate), &obj); err == nil {
			return obj, nil
		}
		match := jsonObjectPattern.FindString(candidate)
		if match == "" {
			continue
		}
		candidate = match
	}
	return nil, errors.New("could not parse strict JSON")
}
