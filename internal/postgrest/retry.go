package postgrest

import (
	"context"
	"log/slog"
	"time"
)

// RetryOptions configures the fixed-delay retry policy applied to store calls.
type RetryOptions struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// Delay is the fixed wait between attempts.
	Delay time.Duration
}

// DefaultRetryOptions matches the store client's historical behaviour: three
// attempts, one second apart.
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{MaxAttempts: 3, Delay: time.Second}
}

// WithRetry runs op up to opts.MaxAttempts times with a fixed delay between
// attempts. Errors that IsRetryable rejects short-circuit immediately, since
// repeating a deterministic failure only adds latency. The returned error is
// the one from the final attempt.
func WithRetry[T any](ctx context.Context, logger *slog.Logger, opts RetryOptions, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return zero, err
		}
		if attempt == opts.MaxAttempts {
			break
		}

		logger.WarnContext(ctx, "store call failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", opts.MaxAttempts),
			slog.Duration("delay", opts.Delay),
			slog.String("error", err.Error()),
		)

		select {
		case <-time.After(opts.Delay):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}

	return zero, lastErr
}
