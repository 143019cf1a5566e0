package llm

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// RetryProvider retries transient failures with exponential backoff.
// Rate-limit errors honor the provider's retry-after when given. Invalid
// responses are retried once, since a regenerate usually fixes them.
// Max-token truncation is never retried.
type RetryProvider struct {
	next        Provider
	maxAttempts int
	baseDelay   time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

// WithRetry wraps next with retry behavior. maxAttempts counts the first
// try; values below 1 are coerced to 1.
func WithRetry(next Provider, maxAttempts int) *RetryProvider {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetryProvider{
		next:        next,
		maxAttempts: maxAttempts,
		baseDelay:   time.Second,
		sleep:       sleepCtx,
	}
}

func (r *RetryProvider) ModelID() string { return r.next.ModelID() }

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	invalidRetried := false

	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		if attempt > 0 {
			if err := r.sleep(ctx, r.delayFor(attempt, lastErr)); err != nil {
				return nil, err
			}
		}

		resp, err := r.next.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		switch {
		case errors.Is(err, ErrRateLimit), errors.Is(err, ErrProviderUnavailable):
		case errors.Is(err, ErrInvalidResponse):
			if invalidRetried {
				return nil, err
			}
			invalidRetried = true
		default:
			return nil, err
		}
	}
	return nil, lastErr
}

// delayFor computes the backoff before the given attempt. A rate-limit
// retry-after overrides the exponential schedule.
func (r *RetryProvider) delayFor(attempt int, lastErr error) time.Duration {
	var rle *RateLimitError
	if errors.As(lastErr, &rle) && rle.RetryAfter > 0 {
		return rle.RetryAfter
	}

	d := r.baseDelay << (attempt - 1)
	// Jitter of plus or minus 20% keeps concurrent clients from retrying
	// in lockstep.
	jitter := time.Duration(rand.Int63n(int64(d)*2/5+1)) - d/5
	return d + jitter
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
