package mock

import (
	"context"

	"github.com/fwojciec/geolens"
)

var _ geolens.JobService = (*JobService)(nil)

// JobService is a mock implementation of geolens.JobService.
type JobService struct {
	EnqueueJobFn  func(ctx context.Context, url string) (*geolens.Job, error)
	FindJobByIDFn func(ctx context.Context, id string) (*geolens.Job, error)
}

func (s *JobService) EnqueueJob(ctx context.Context, url string) (*geolens.Job, error) {
	return s.EnqueueJobFn(ctx, url)
}

func (s *JobService) FindJobByID(ctx context.Context, id string) (*geolens.Job, error) {
	return s.FindJobByIDFn(ctx, id)
}
