package crawl

import (
	"context"
	"time"
)

// FetchFunc fetches a URL and returns its HTML.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc receives a printf-style progress line.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays is the backoff schedule used when an Auditor has none
// configured: three retries at 1s, 2s, and 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetryDelays calls fetch until it succeeds or the backoff schedule
// runs out. Each delay buys one retry, so three delays mean four attempts in
// total. Cancellation cuts the schedule short. logger, when non-nil, gets a
// line per retry.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (string, error) {
	var lastErr error
	for attempt := 0; ; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt == len(delays) {
			return "", lastErr
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if logger != nil {
			logger("  retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
}
