package llm

import (
	"context"
	"math"
	"time"
)

// RetryPolicy is exponential backoff with jitter for network failures.
type RetryPolicy struct {
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	MaxRetries int
}

// DefaultRetryPolicy: 1s base, 10s cap, 3 retries after the first attempt.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		BaseDelay:  time.Second,
		MaxDelay:   10 * time.Second,
		MaxRetries: 3,
	}
}

// Delay returns the wait before retry number attempt (0-based) for a jitter
// sample r in [0,1): base * 2^attempt * (0.5 + r), capped at MaxDelay.
func (p RetryPolicy) Delay(attempt int, r float64) time.Duration {
	d := float64(p.BaseDelay) * math.Pow(2, float64(attempt)) * (0.5 + r)
	if d > float64(p.MaxDelay) {
		return p.MaxDelay
	}
	return time.Duration(d)
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
