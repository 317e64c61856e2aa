package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/geolens/mock"
	geoslog "github.com/fwojciec/geolens/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capture returns a logger that writes logfmt lines into the returned buffer.
func capture() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("records url, size and latency", func(t *testing.T) {
		t.Parallel()

		logger, buf := capture()
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "<html><body>Pricing</body></html>", nil
			},
		}

		fetcher := geoslog.NewLoggingFetcher(inner, logger)
		html, err := fetcher.Fetch(context.Background(), "https://example.com/pricing")

		require.NoError(t, err)
		assert.Equal(t, "<html><body>Pricing</body></html>", html)
		assert.Contains(t, buf.String(), "fetch")
		assert.Contains(t, buf.String(), "url=https://example.com/pricing")
		assert.Contains(t, buf.String(), "bytes=33")
		assert.Contains(t, buf.String(), "duration=")
	})

	t.Run("records the error when the fetch fails", func(t *testing.T) {
		t.Parallel()

		logger, buf := capture()
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", errors.New("connect timeout")
			},
		}

		fetcher := geoslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://example.com/pricing")

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="connect timeout"`)
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	t.Run("closes the wrapped fetcher", func(t *testing.T) {
		t.Parallel()

		logger, _ := capture()
		closed := false
		inner := &mock.Fetcher{CloseFn: func() error {
			closed = true
			return nil
		}}

		require.NoError(t, geoslog.NewLoggingFetcher(inner, logger).Close())
		assert.True(t, closed)
	})
}
