package mock

import (
	"context"

	"github.com/fwojciec/geolens"
)

var _ geolens.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of geolens.Summarizer.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, text string) (string, error)
}

func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	return s.SummarizeFn(ctx, text)
}
