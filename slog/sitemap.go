package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/geolens"
)

var _ geolens.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService logs sitemap discovery, recording how many URLs a
// site exposes and how long discovery took.
type LoggingSitemapService struct {
	next   geolens.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService decorates next with discovery logging.
func NewLoggingSitemapService(next geolens.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs the outcome.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *geolens.URLFilter) (urls []string, err error) {
	begin := time.Now()
	defer func() {
		s.logger.Info("sitemap discovery",
			"url", baseURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}()
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}
