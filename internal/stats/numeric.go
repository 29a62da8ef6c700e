package stats

import "sort"

// Quantiles is a 10/50/90 percentile triple.
type Quantiles struct {
	P10 float64
	P50 float64
	P90 float64
}

// ForecastNumeric produces a quantile triple from a value set: sorted
// ascending, p10 is the minimum, p50 the middle index, p90 the maximum.
// A nil or empty set falls back to the default spread.
func ForecastNumeric(values []float64) Quantiles {
	if len(values) == 0 {
		values = []float64{0.2, 0.5, 0.8}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return Quantiles{
		P10: sorted[0],
		P50: sorted[len(sorted)/2],
		P90: sorted[len(sorted)-1],
	}
}
