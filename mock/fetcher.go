package mock

import (
	"context"

	"github.com/fwojciec/geolens"
)

var _ geolens.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of geolens.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, ref string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, ref string) (string, error) {
	return f.FetchFn(ctx, ref)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ geolens.RobotsService = (*RobotsService)(nil)

// RobotsService is a mock implementation of geolens.RobotsService.
type RobotsService struct {
	CheckFn func(ctx context.Context, siteURL string) (*geolens.Robots, error)
}

func (s *RobotsService) Check(ctx context.Context, siteURL string) (*geolens.Robots, error) {
	return s.CheckFn(ctx, siteURL)
}
