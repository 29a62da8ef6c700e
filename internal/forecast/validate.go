package forecast

import (
	"sort"

	"metacbot/internal/question"
	"metacbot/internal/stats"
)

// Validate coerces a merged forecast into a legal shape for its question
// type: binary probabilities are clamped into [minProb, maxProb],
// distributions are floored at zero and renormalized to sum to 1, and
// quantile triples are sorted into ascending order regardless of input
// order. Validate is a fixed point: re-validating a valid forecast returns
// it unchanged.
func Validate(qtype question.Type, f Forecast, minProb, maxProb float64) Forecast {
	switch {
	case qtype.IsChoice():
		dist := make([]float64, len(f.Distribution))
		var total float64
		for i, v := range f.Distribution {
			if v < 0 {
				v = 0
			}
			dist[i] = v
			total += v
		}
		if total == 0 {
			total = 1.0
		}
		for i := range dist {
			dist[i] /= total
		}
		return Forecast{Kind: KindDistribution, Distribution: dist}
	case qtype.IsQuantile():
		ordered := []float64{f.P10, f.P50, f.P90}
		sort.Float64s(ordered)
		return Forecast{
			Kind:          KindQuantiles,
			P10:           ordered[0],
			P50:           ordered[1],
			P90:           ordered[2],
			DateQuantiles: f.DateQuantiles,
		}
	default:
		return Forecast{
			Kind:        KindBinary,
			Probability: stats.CalibrateProbability(f.Probability, minProb, maxProb),
		}
	}
}
