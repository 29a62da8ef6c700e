package question

import (
	"sort"
	"time"
)

// Select filters out resolved questions and orders the rest for processing:
// questions without a parseable close time first, then by ascending close
// time, truncated to limit. Order is stable within ties.
func Select(questions []Question, now time.Time, limit int) []Question {
	eligible := make([]Question, 0, len(questions))
	for _, q := range questions {
		if q.Resolved != nil && *q.Resolved {
			continue
		}
		eligible = append(eligible, q)
	}

	type keyed struct {
		q        Question
		hasClose bool
		closesAt time.Time
	}
	keys := make([]keyed, len(eligible))
	for i, q := range eligible {
		closesAt, ok := firstTimestamp(q.CloseTime, q.PredictionEndTime)
		if !ok {
			closesAt = now
		}
		keys[i] = keyed{q: q, hasClose: ok, closesAt: closesAt}
	}

	sort.SliceStable(keys, func(i, j int) bool {
		if keys[i].hasClose != keys[j].hasClose {
			return !keys[i].hasClose
		}
		return keys[i].closesAt.Before(keys[j].closesAt)
	})

	if limit > len(keys) {
		limit = len(keys)
	}
	out := make([]Question, 0, limit)
	for _, k := range keys[:limit] {
		out = append(out, k.q)
	}
	return out
}
