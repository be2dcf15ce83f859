package upstream

import (
	"context"
	"time"
)

// Retry runs fn until it succeeds, the policy is exhausted, retryable
// reports false, or ctx is done. A nil retryable treats every error as
// retryable.
func Retry(
	ctx context.Context,
	policy RetryPolicy,
	retryable func(error) bool,
	fn func() error,
) error {
	var attempt int
	backoff := policy.BaseBackoff

	for {
		err := fn()
		if err == nil {
			return nil
		}
		if retryable != nil && !retryable(err) {
			return err
		}

		attempt++
		if attempt > policy.MaxRetries {
			return err
		}

		delay := backoff
		if policy.JitterFn != nil {
			delay += policy.JitterFn(backoff)
		}
		if policy.MaxBackoff > 0 && delay > policy.MaxBackoff {
			delay = policy.MaxBackoff
		}

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
			backoff *= 2
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}
