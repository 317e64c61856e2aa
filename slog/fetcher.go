package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/geolens"
)

var _ geolens.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher logs every page fetch with its size and latency, so slow or
// failing hosts show up in an audit's log.
type LoggingFetcher struct {
	next   geolens.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher decorates next with per-request logging.
func NewLoggingFetcher(next geolens.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs one line per request.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	begin := time.Now()
	defer func() {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}()
	return f.next.Fetch(ctx, url)
}

// Close closes the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
