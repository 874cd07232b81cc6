package retry

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
)

// StatusError is returned by provider clients for non-2xx responses.
// The retry policy uses the status code to decide whether a failure
// is transient.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, string(e.Body))
}

// Retryable reports whether err is a transient provider failure:
// rate limiting (429) or a server error (5xx). Everything else,
// including other 4xx and connection errors, is permanent.
func Retryable(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.StatusCode == http.StatusTooManyRequests || se.StatusCode >= 500
}

// Policy wraps an operation with bounded retries and linear backoff.
// The delay before attempt n+1 is BaseDelay * n.
type Policy struct {
	maxAttempts int
	baseDelay   time.Duration
	retryable   func(error) bool
	sleep       func(time.Duration)
}

// NewPolicy creates a retry policy. maxAttempts counts the initial call,
// so maxAttempts=5 means at most four retries.
func NewPolicy(maxAttempts int, baseDelay time.Duration) *Policy {
	return &Policy{
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		retryable:   Retryable,
		sleep:       time.Sleep,
	}
}

// SetSleepForTest replaces the backoff sleep so tests run instantly.
func (p *Policy) SetSleepForTest(sleep func(time.Duration)) {
	p.sleep = sleep
}

// SetRetryableForTest replaces the transient-failure predicate.
func (p *Policy) SetRetryableForTest(fn func(error) bool) {
	p.retryable = fn
}

// Do runs op, retrying transient failures up to the attempt bound.
// Non-transient failures propagate immediately; after exhausting the
// bound the last failure is returned.
func (p *Policy) Do(ctx context.Context, op func() error) error {
	var lastErr error

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := op()
		if err == nil {
			return nil
		}
		if !p.retryable(err) {
			return err
		}
		lastErr = err

		if attempt == p.maxAttempts {
			break
		}

		var se *StatusError
		if errors.As(err, &se) {
			log.Printf("[retry] transient status %d on attempt %d/%d, backing off", se.StatusCode, attempt, p.maxAttempts)
		} else {
			log.Printf("[retry] transient failure on attempt %d/%d, backing off: %v", attempt, p.maxAttempts, err)
		}
		p.sleep(p.baseDelay * time.Duration(attempt))
	}

	return fmt.Errorf("failed after %d attempts: %w", p.maxAttempts, lastErr)
}
