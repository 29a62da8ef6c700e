// Package question holds the tournament question model and the open-window
// evaluation used to decide whether a forecast may be submitted.
package question

// Type is the answer shape of a question.
type Type string

const (
	TypeBinary         Type = "binary"
	TypeMultipleChoice Type = "multiple_choice"
	TypeDistribution   Type = "distribution"
	TypeNumeric        Type = "numeric"
	TypeDiscrete       Type = "discrete"
	TypeDate           Type = "date"
)

// IsChoice reports whether the question expects a category distribution.
func (t Type) IsChoice() bool {
	return t == TypeMultipleChoice || t == TypeDistribution
}

// IsQuantile reports whether the question expects a p10/p50/p90 triple.
func (t Type) IsQuantile() bool {
	return t == TypeNumeric || t == TypeDiscrete || t == TypeDate
}

// Question is an immutable per-run snapshot of one forecastable proposition.
// Boolean flags are pointers because the API omits them on older questions;
// absent means "no constraint". Timestamps stay as raw ISO-8601 strings and
// are parsed permissively at evaluation time.
type Question struct {
	ID                int      `json:"id"`
	PostID            int      `json:"post_id,omitempty"`
	Title             string   `json:"title"`
	Type              Type     `json:"type"`
	Status            string   `json:"status,omitempty"`
	Resolved          *bool    `json:"resolved,omitempty"`
	IsOpen            *bool    `json:"is_open,omitempty"`
	IsLocked          *bool    `json:"is_locked,omitempty"`
	OpenTime          string   `json:"open_time,omitempty"`
	CloseTime         string   `json:"close_time,omitempty"`
	PredictionEndTime string   `json:"prediction_end_time,omitempty"`
	ResolveTime       string   `json:"resolve_time,omitempty"`
	Options           []string `json:"options,omitempty"`
}

// TournamentMeta is the parent project's window metadata.
type TournamentMeta struct {
	ID                string `json:"id,omitempty"`
	Name              string `json:"name,omitempty"`
	IsOpen            *bool  `json:"is_open,omitempty"`
	IsLocked          *bool  `json:"is_locked,omitempty"`
	OpenTime          string `json:"open_time,omitempty"`
	StartTime         string `json:"start_time,omitempty"`
	CloseTime         string `json:"close_time,omitempty"`
	PredictionEndTime string `json:"prediction_end_time,omitempty"`
}
