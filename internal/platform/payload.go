package platform

import (
	"metacbot/internal/forecast"
	"metacbot/internal/question"
)

// FormatPayload converts a validated forecast into the platform's submission
// shape for the question's type: probability_yes for binary,
// probability_yes_per_category for choice types, a percentile array for
// numeric/discrete and the ISO p10/p50/p90 date quantiles for date questions
// (numeric scalars only when no date quantiles were produced).
func FormatPayload(q question.Question, f forecast.Forecast) map[string]any {
	switch {
	case q.Type.IsChoice():
		return map[string]any{"probability_yes_per_category": f.Distribution}
	case q.Type == question.TypeNumeric || q.Type == question.TypeDiscrete:
		return map[string]any{"percentiles": []float64{f.P10, f.P50, f.P90}}
	case q.Type == question.TypeDate:
		if dq := f.DateQuantiles; dq != nil {
			return map[string]any{"p10": dq.P10, "p50": dq.P50, "p90": dq.P90}
		}
		return map[string]any{"p10": f.P10, "p50": f.P50, "p90": f.P90}
	default:
		return map[string]any{"probability_yes": f.Probability}
	}
}
