package question

import "time"

// OpenStatus is the window classification for a tournament or question.
type OpenStatus string

const (
	StatusOpen         OpenStatus = "OPEN"
	StatusLocked       OpenStatus = "LOCKED"
	StatusResolved     OpenStatus = "RESOLVED"
	StatusNotYetOpen   OpenStatus = "NOT_YET_OPEN"
	StatusClosedWindow OpenStatus = "CLOSED_WINDOW"
)

var timestampLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTimestamp parses an ISO-8601 timestamp permissively. Zone-less values
// are taken as UTC. Unparseable or empty values mean "no constraint".
func parseTimestamp(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func firstTimestamp(values ...string) (time.Time, bool) {
	for _, v := range values {
		if t, ok := parseTimestamp(v); ok {
			return t, ok
		}
	}
	return time.Time{}, false
}

// IsTournamentOpen decides whether the tournament accepts forecasts at now.
// The caller passes an already-localized now so every comparison happens in
// one timezone.
func IsTournamentOpen(meta TournamentMeta, now time.Time) (bool, OpenStatus) {
	if meta.IsLocked != nil && *meta.IsLocked {
		return false, StatusLocked
	}
	if meta.IsOpen != nil && !*meta.IsOpen {
		return false, StatusClosedWindow
	}
	if start, ok := firstTimestamp(meta.OpenTime, meta.StartTime); ok && now.Before(start) {
		return false, StatusNotYetOpen
	}
	if end, ok := firstTimestamp(meta.CloseTime, meta.PredictionEndTime); ok && !now.Before(end) {
		return false, StatusClosedWindow
	}
	return true, StatusOpen
}

// IsQuestionOpen decides whether a single question accepts forecasts at now,
// using the same precedence chain as the tournament check: lock flag, then
// resolution state, then the explicit open flag, then the time window. The
// end time is the first of prediction-end, close and resolve timestamps.
func IsQuestionOpen(q Question, now time.Time) (bool, OpenStatus) {
	if q.IsLocked != nil && *q.IsLocked {
		return false, StatusLocked
	}
	if (q.Resolved != nil && *q.Resolved) || q.Status == "resolved" || q.Status == "closed" {
		return false, StatusResolved
	}
	if q.IsOpen != nil && !*q.IsOpen {
		return false, StatusClosedWindow
	}
	if start, ok := parseTimestamp(q.OpenTime); ok && now.Before(start) {
		return false, StatusNotYetOpen
	}
	if end, ok := firstTimestamp(q.PredictionEndTime, q.CloseTime, q.ResolveTime); ok && !now.Before(end) {
		return false, StatusClosedWindow
	}
	return true, StatusOpen
}
