package llm

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for errors.Is checks. The structured error types below
// unwrap to these.
var (
	ErrRateLimit           = errors.New("rate limit exceeded")
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrInvalidResponse     = errors.New("invalid provider response")
	ErrMaxTokensExceeded   = errors.New("response truncated at max tokens")
)

// RateLimitError is returned when the provider throttles the request.
// RetryAfter is zero when the provider didn't say how long to wait.
type RateLimitError struct {
	Provider   string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s: rate limit exceeded, retry after %s", e.Provider, e.RetryAfter)
	}
	return fmt.Sprintf("%s: rate limit exceeded", e.Provider)
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimit }

// UnavailableError covers transport failures and 5xx responses.
type UnavailableError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *UnavailableError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: unavailable (status %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: unavailable: %v", e.Provider, e.Err)
}

func (e *UnavailableError) Unwrap() error { return ErrProviderUnavailable }

// InvalidResponseError is returned when the provider answered but the
// payload was unusable, for example an empty completion.
type InvalidResponseError struct {
	Provider string
	Reason   string
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("%s: invalid response: %s", e.Provider, e.Reason)
}

func (e *InvalidResponseError) Unwrap() error { return ErrInvalidResponse }

// MaxTokensError is returned when generation stopped because the token
// budget ran out. The partial text is preserved so callers can decide
// whether to use it.
type MaxTokensError struct {
	Provider string
	Partial  string
}

func (e *MaxTokensError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, ErrMaxTokensExceeded)
}

func (e *MaxTokensError) Unwrap() error { return ErrMaxTokensExceeded }
