package stats

import "math"

// Moments summarizes a value set by its mean and standard deviation.
type Moments struct {
	Mean float64
	Std  float64
}

// FitDistribution computes population moments of a value set. An empty set
// yields the neutral mean 0.5 with zero spread.
func FitDistribution(values []float64) Moments {
	if len(values) == 0 {
		return Moments{Mean: 0.5, Std: 0.0}
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return Moments{Mean: mean, Std: math.Sqrt(variance)}
}
