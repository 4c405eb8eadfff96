package http

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/sitechat"
)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// RetryDelays returns n exponential backoff delays starting at one second.
// Negative n yields no delays.
func RetryDelays(n int) []time.Duration {
	if n < 0 {
		n = 0
	}
	delays := make([]time.Duration, 0, n)
	d := time.Second
	for i := 0; i < n; i++ {
		delays = append(delays, d)
		d *= 2
	}
	return delays
}

// FetchWithRetry fetches url, retrying once per delay on failure.
// Errors that are not EFETCH, such as cancellation, and permanent HTTP
// statuses such as 404 are returned immediately.
// The logger, if provided, is called for each retry attempt.
func FetchWithRetry(ctx context.Context, fetcher sitechat.Fetcher, url string, delays []time.Duration, logger LogFunc) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetcher.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if sitechat.ErrorCode(err) != sitechat.EFETCH {
			return "", err
		}

		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Permanent() {
			return "", err
		}

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger("retry %s (attempt %d): %s", url, attempt+2, sitechat.ErrorMessage(err))
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
