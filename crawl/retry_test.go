package crawl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/geolens/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	noDelays := []time.Duration{0, 0, 0}

	t.Run("returns immediately on success", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			attempts++
			return "<html></html>", nil
		}

		html, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, noDelays)

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 1, attempts)
	})

	t.Run("retries until a fetch succeeds", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			attempts++
			if attempts < 3 {
				return "", errors.New("connection reset")
			}
			return "<html></html>", nil
		}

		html, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, noDelays)

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 3, attempts)
	})

	t.Run("returns last error after exhausting retries", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			attempts++
			return "", errors.New("connection reset")
		}

		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, noDelays)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
		assert.Equal(t, 4, attempts, "1 initial + 3 retries")
	})

	t.Run("logs each retry attempt", func(t *testing.T) {
		t.Parallel()

		var logged []string
		logger := func(format string, args ...any) {
			logged = append(logged, format)
		}
		fetch := func(_ context.Context, _ string) (string, error) {
			return "", errors.New("boom")
		}

		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, logger, noDelays)

		require.Error(t, err)
		assert.Len(t, logged, 3, "one log line per retry")
	})

	t.Run("stops retrying when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		attempts := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			attempts++
			cancel()
			return "", errors.New("boom")
		}

		_, err := crawl.FetchWithRetryDelays(ctx, "https://example.com", fetch, nil, []time.Duration{time.Hour})

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts, "no retry after cancellation")
	})
}
