// Package scheduler repeats the forecasting pass on a fixed interval for
// long-lived deployments. One-shot invocations bypass it entirely.
package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Scheduler reruns a forecasting pass until its context is cancelled.
type Scheduler struct {
	interval time.Duration
	run      func(ctx context.Context) int
}

func New(interval time.Duration, run func(ctx context.Context) int) *Scheduler {
	return &Scheduler{interval: interval, run: run}
}

// Run executes the first pass immediately, then once per interval. It returns
// the exit code of the last completed pass; a failing pass does not stop the
// loop, so a transient outage self-heals on the next tick.
func (s *Scheduler) Run(ctx context.Context) int {
	slog.Info("scheduler starting", "interval", s.interval)

	code := s.run(ctx)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("scheduler shutting down")
			return code
		case <-ticker.C:
			code = s.run(ctx)
		}
	}
}
