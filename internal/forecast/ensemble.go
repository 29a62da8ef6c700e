package forecast

import "metacbot/internal/question"

// Combine merges the three source estimates into one validated forecast.
// Binary questions take the arithmetic mean of the sources' probabilities,
// each defaulting to 0.5 when absent. Choice questions prefer the statistical
// distribution, then the baseline, then a single-point distribution. Quantile
// questions resolve each percentile independently: model output first, then
// statistical, then baseline.
func Combine(q question.Question, baseline, statistical, llm Estimate, minProb, maxProb float64) Forecast {
	var merged Forecast
	switch {
	case q.Type.IsChoice():
		dist := statistical.Distribution
		if len(dist) == 0 {
			dist = baseline.Distribution
		}
		if len(dist) == 0 {
			dist = []float64{1.0}
		}
		merged = Forecast{Kind: KindDistribution, Distribution: dist}
	case q.Type.IsQuantile():
		merged = Forecast{
			Kind: KindQuantiles,
			P10:  pick(0.1, llm.P10, statistical.P10, baseline.P10),
			P50:  pick(0.5, llm.P50, statistical.P50, baseline.P50),
			P90:  pick(0.9, llm.P90, statistical.P90, baseline.P90),
		}
		if statistical.DateQuantiles != nil {
			merged.DateQuantiles = statistical.DateQuantiles
		}
	default:
		sum := probOr(baseline, 0.5) + probOr(statistical, 0.5) + probOr(llm, 0.5)
		merged = Forecast{Kind: KindBinary, Probability: sum / 3.0}
	}
	return Validate(q.Type, merged, minProb, maxProb)
}

func pick(fallback float64, candidates ...*float64) float64 {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return fallback
}

func probOr(e Estimate, fallback float64) float64 {
	if e.Probability != nil {
		return *e.Probability
	}
	return fallback
}
