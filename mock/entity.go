package mock

import (
	"context"

	"github.com/fwojciec/geolens"
)

var _ geolens.EntityExtractor = (*EntityExtractor)(nil)

// EntityExtractor is a mock implementation of geolens.EntityExtractor.
type EntityExtractor struct {
	EntitiesFn func(ctx context.Context, text string) ([]geolens.Entity, error)
}

func (e *EntityExtractor) Entities(ctx context.Context, text string) ([]geolens.Entity, error) {
	return e.EntitiesFn(ctx, text)
}
