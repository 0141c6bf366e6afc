package task

import (
	"context"

	"github.com/hibiken/asynq"
	"golang.org/x/time/rate"
)

// Per-queue task start rates, jobs per second. Concurrency caps how many
// jobs run at once; these cap how fast new ones start.
const (
	ImageRatePerSec    = 10
	VideoRatePerSec    = 5
	DocumentRatePerSec = 10
)

// RateLimited wraps a task handler with a token bucket so at most rps jobs
// per second enter it, whatever the server concurrency. A blocked task
// holds its worker slot until a token frees up or its context ends.
// rps < 1 disables the cap.
func RateLimited(rps int, next func(context.Context, *asynq.Task) error) func(context.Context, *asynq.Task) error {
	if rps < 1 {
		return next
	}
	limiter := rate.NewLimiter(rate.Limit(rps), rps)
	return func(ctx context.Context, t *asynq.Task) error {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		return next(ctx, t)
	}
}
