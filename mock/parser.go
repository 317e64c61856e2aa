package mock

import (
	"context"

	"github.com/fwojciec/geolens"
)

var _ geolens.Parser = (*Parser)(nil)

// Parser is a mock implementation of geolens.Parser.
type Parser struct {
	ParseFn func(ctx context.Context, page *geolens.Page) (*geolens.Content, error)
}

func (p *Parser) Parse(ctx context.Context, page *geolens.Page) (*geolens.Content, error) {
	return p.ParseFn(ctx, page)
}
