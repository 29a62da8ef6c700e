package forecast

import (
	"time"

	"metacbot/internal/question"
	"metacbot/internal/stats"
)

const statsDaysOut = 30

// Baseline produces the naive prior for a question: an even split for binary
// and choice questions, a fixed quantile spread otherwise. Unknown types fall
// back to the binary prior.
func Baseline(q question.Question) Estimate {
	switch {
	case q.Type == question.TypeBinary:
		return Estimate{Probability: floatPtr(0.5)}
	case q.Type.IsChoice():
		if len(q.Options) == 0 {
			return Estimate{Distribution: []float64{1.0}}
		}
		p := 1.0 / float64(len(q.Options))
		dist := make([]float64, len(q.Options))
		for i := range dist {
			dist[i] = p
		}
		return Estimate{Distribution: dist}
	case q.Type.IsQuantile():
		return Estimate{P10: floatPtr(0.1), P50: floatPtr(0.5), P90: floatPtr(0.9)}
	default:
		return Estimate{Probability: floatPtr(0.5)}
	}
}

// Stats dispatches to the per-type statistical model. Date questions get the
// fixed quantile spread plus ISO date quantiles centered a month out.
func Stats(q question.Question, evidenceCount int, now time.Time) Estimate {
	switch {
	case q.Type == question.TypeBinary:
		posterior := stats.ForecastBinary(evidenceCount)
		return Estimate{Probability: floatPtr(posterior.Probability)}
	case q.Type.IsChoice():
		return Estimate{Distribution: stats.DirichletUpdate(len(q.Options), 1.0)}
	case q.Type == question.TypeNumeric || q.Type == question.TypeDiscrete:
		qs := stats.ForecastNumeric(nil)
		return Estimate{P10: floatPtr(qs.P10), P50: floatPtr(qs.P50), P90: floatPtr(qs.P90)}
	case q.Type == question.TypeDate:
		dq := stats.ForecastDate(now, statsDaysOut)
		return Estimate{
			P10:           floatPtr(0.2),
			P50:           floatPtr(0.5),
			P90:           floatPtr(0.8),
			DateQuantiles: &dq,
		}
	default:
		return Estimate{Probability: floatPtr(0.5)}
	}
}

// Features are the deterministic per-question inputs to the statistical
// models.
type Features struct {
	EvidenceCount int
	HasCloseTime  bool
}

// ExtractFeatures derives model features from a question and its evidence
// count.
func ExtractFeatures(q question.Question, evidenceCount int) Features {
	return Features{
		EvidenceCount: evidenceCount,
		HasCloseTime:  q.CloseTime != "" || q.PredictionEndTime != "",
	}
}
