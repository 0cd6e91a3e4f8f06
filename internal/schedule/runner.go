// Package schedule runs the organize pipeline on a fixed interval.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Intervals accepted by ParseInterval.
const (
	Hourly = time.Hour
	Daily  = 24 * time.Hour
	Weekly = 7 * 24 * time.Hour
)

// ParseInterval maps a named interval to a duration. Anything else is
// parsed as a Go duration string.
func ParseInterval(s string) (time.Duration, error) {
	switch s {
	case "hourly":
		return Hourly, nil
	case "daily":
		return Daily, nil
	case "weekly":
		return Weekly, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid interval %q (want hourly, daily, weekly or a duration): %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("interval must be positive, got %s", d)
	}
	return d, nil
}

// Job is one scheduled pipeline invocation.
type Job func(ctx context.Context) error

// Runner invokes a job immediately and then on every tick.
type Runner struct {
	logger *slog.Logger
}

// NewRunner creates a Runner.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger}
}

// Run executes job now and then every interval until ctx is canceled.
// Job errors are logged and do not stop the schedule.
func (r *Runner) Run(ctx context.Context, every time.Duration, job Job) error {
	if every <= 0 {
		return fmt.Errorf("interval must be positive, got %s", every)
	}

	r.runOnce(ctx, job)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("scheduler stopping")
			return ctx.Err()
		case <-ticker.C:
			r.runOnce(ctx, job)
		}
	}
}

func (r *Runner) runOnce(ctx context.Context, job Job) {
	start := time.Now()
	if err := job(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		r.logger.Error("scheduled run failed", "error", err, "duration", time.Since(start))
		return
	}
	r.logger.Info("scheduled run complete", "duration", time.Since(start))
}
