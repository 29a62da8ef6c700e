package stats

// DirichletUpdate applies a symmetric Dirichlet update over k categories:
// every option receives equal posterior weight 1 + evidenceWeight, normalized
// to sum to 1. k is floored at 1 so the result is always a valid distribution.
func DirichletUpdate(k int, evidenceWeight float64) []float64 {
	if k < 1 {
		k = 1
	}
	weight := 1.0 + evidenceWeight
	total := weight * float64(k)
	dist := make([]float64, k)
	for i := range dist {
		dist[i] = weight / total
	}
	return dist
}
