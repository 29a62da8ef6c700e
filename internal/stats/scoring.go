package stats

import "math"

// Brier returns the Brier score of a probability against a 0/1 outcome.
// Lower is better.
func Brier(prob float64, outcome int) float64 {
	diff := prob - float64(outcome)
	return diff * diff
}

// LogScore returns the negative log likelihood of the outcome under prob,
// with the probability pinned away from 0 and 1 to keep the score finite.
func LogScore(prob float64, outcome int) float64 {
	p := math.Max(1e-9, math.Min(1-1e-9, prob))
	if outcome != 0 {
		return -math.Log(p)
	}
	return -math.Log(1 - p)
}

// CalibrateProbability clamps a probability into [minProb, maxProb].
func CalibrateProbability(p, minProb, maxProb float64) float64 {
	return math.Max(minProb, math.Min(maxProb, p))
}
