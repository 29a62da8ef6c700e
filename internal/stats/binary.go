// Package stats implements the closed-form statistical baselines that anchor
// the forecast ensemble: conjugate posterior updates and quantile heuristics.
// They are deterministic and cheap to compute, not learned models.
package stats

// BetaPosterior is the result of a beta-binomial update.
type BetaPosterior struct {
	Alpha       float64
	Beta        float64
	Probability float64
}

// BetaUpdate applies positive/negative evidence counts to a beta prior and
// returns the posterior with its mean as the point probability.
func BetaUpdate(priorAlpha, priorBeta float64, positive, negative int) BetaPosterior {
	alpha := priorAlpha + float64(positive)
	beta := priorBeta + float64(negative)
	return BetaPosterior{
		Alpha:       alpha,
		Beta:        beta,
		Probability: alpha / (alpha + beta),
	}
}

// ForecastBinary derives a binary probability from a uniform prior and
// synthetic evidence counts: half the evidence counts as positive, the
// remainder as negative.
func ForecastBinary(evidenceCount int) BetaPosterior {
	if evidenceCount < 0 {
		evidenceCount = 0
	}
	pos := evidenceCount / 2
	neg := evidenceCount - pos
	return BetaUpdate(1.0, 1.0, pos, neg)
}
