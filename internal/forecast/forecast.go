// Package forecast defines the typed forecast shapes and the ensemble that
// merges baseline, statistical and model-derived estimates into one validated
// forecast per question.
package forecast

import (
	"metacbot/internal/stats"
)

// Kind tags the answer shape of a Forecast.
type Kind string

const (
	KindBinary       Kind = "binary"
	KindDistribution Kind = "distribution"
	KindQuantiles    Kind = "quantiles"
)

// Forecast is the canonical, validated forecast for one question. Exactly the
// fields matching Kind are meaningful; date questions additionally carry the
// ISO date quantiles for reporting.
type Forecast struct {
	Kind          Kind                 `json:"kind"`
	Probability   float64              `json:"probability,omitempty"`
	Distribution  []float64            `json:"distribution,omitempty"`
	P10           float64              `json:"p10,omitempty"`
	P50           float64              `json:"p50,omitempty"`
	P90           float64              `json:"p90,omitempty"`
	DateQuantiles *stats.DateQuantiles `json:"date_quantiles,omitempty"`
}

// Estimate is a partial forecast from a single source (baseline, statistical
// model or reasoning backend). Pointer fields distinguish "absent" from zero;
// the ensemble fills gaps per question type.
type Estimate struct {
	Probability   *float64             `json:"probability,omitempty"`
	Distribution  []float64            `json:"distribution,omitempty"`
	P10           *float64             `json:"p10,omitempty"`
	P50           *float64             `json:"p50,omitempty"`
	P90           *float64             `json:"p90,omitempty"`
	DateQuantiles *stats.DateQuantiles `json:"date_quantiles,omitempty"`
}

func floatPtr(v float64) *float64 { return &v }

// FromRole lifts a reasoning-backend role output into an Estimate. Only the
// recognised numeric keys are read; anything else in the object is ignored.
func FromRole(obj map[string]any) Estimate {
	var e Estimate
	if v, ok := asFloat(obj["probability"]); ok {
		e.Probability = floatPtr(v)
	}
	if v, ok := asFloat(obj["p10"]); ok {
		e.P10 = floatPtr(v)
	}
	if v, ok := asFloat(obj["p50"]); ok {
		e.P50 = floatPtr(v)
	}
	if v, ok := asFloat(obj["p90"]); ok {
		e.P90 = floatPtr(v)
	}
	if raw, ok := obj["distribution"].([]any); ok {
		dist := make([]float64, 0, len(raw))
		for _, item := range raw {
			if v, ok := asFloat(item); ok {
				dist = append(dist, v)
			}
		}
		if len(dist) > 0 {
			e.Distribution = dist
		}
	}
	return e
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
