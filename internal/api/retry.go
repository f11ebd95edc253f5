package api

import (
	"context"
	"time"
)

// RetryPolicy is a data-driven description of how a call is retried. It is
// independent of any transport so it can be exercised in isolation.
type RetryPolicy struct {
	// MaxAttempts is the total attempt count, first try included.
	MaxAttempts int

	// BaseDelay is multiplied by the attempt number between attempts, so
	// inter-attempt delays grow strictly: base*1, base*2, ...
	BaseDelay time.Duration

	// Backoff overrides the delay schedule. attempt is 1-based and names
	// the attempt that just failed.
	Backoff func(attempt int) time.Duration

	// Retryable decides whether a failure is worth another attempt. Nil
	// means only connectivity failures (no response received) are retried.
	Retryable func(err error) bool
}

// DefaultRetryPolicy mirrors the wrapper's stock policy: three attempts with
// linearly growing backoff, connectivity failures only.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
	}
}

func (p RetryPolicy) delay(attempt int) time.Duration {
	if p.Backoff != nil {
		return p.Backoff(attempt)
	}
	return p.BaseDelay * time.Duration(attempt)
}

func (p RetryPolicy) retryable(err error) bool {
	if p.Retryable != nil {
		return p.Retryable(err)
	}
	return IsConnectivity(err)
}

// Retry runs fn under the policy. Attempts are strictly sequential: the next
// attempt starts only after the previous failure is observed and the backoff
// delay elapses. After exhausting attempts the last error is returned
// unmodified. The backoff wait honours ctx cancellation.
func Retry[T any](ctx context.Context, p RetryPolicy, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == attempts || !p.retryable(err) {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(p.delay(attempt)):
		}
	}

	return zero, lastErr
}
