package library

import (
	"context"
	"time"

	"github.com/fwojciec/blocklib"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// RetryFunc is called before every retry with the attempt about to be made
// and the error that caused it.
type RetryFunc func(url string, attempt int, err error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetryDelays fetches url, retrying transient failures once per
// entry in delays after waiting that long. Errors that a retry cannot fix
// (not found, unauthorized, invalid input) are returned immediately.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, onRetry RetryFunc, delays []time.Duration) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		if attempt > 0 {
			if onRetry != nil {
				onRetry(url, attempt+1, lastErr)
			}
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delays[attempt-1]):
			}
		}

		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if !retryable(err) || ctx.Err() != nil {
			break
		}
	}

	return "", lastErr
}

func retryable(err error) bool {
	switch blocklib.ErrorCode(err) {
	case blocklib.ENOTFOUND, blocklib.EINVALID, blocklib.EUNAUTHORIZED:
		return false
	}
	return true
}
