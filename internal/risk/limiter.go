package risk

// RateLimiter permits at most max allowed asks per run. Every ask counts,
// allowed or not; state is in-memory and does not persist across runs.
type RateLimiter struct {
	max   int
	count int
}

func NewRateLimiter(max int) *RateLimiter {
	return &RateLimiter{max: max}
}

// Allow consumes one ask and reports whether it fits the budget.
func (r *RateLimiter) Allow() bool {
	r.count++
	return r.count <= r.max
}

// Used returns how many asks have been consumed so far.
func (r *RateLimiter) Used() int {
	return r.count
}
