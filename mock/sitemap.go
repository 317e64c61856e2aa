package mock

import (
	"context"

	"github.com/fwojciec/geolens"
)

var _ geolens.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of geolens.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *geolens.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *geolens.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
