package mock

import "github.com/fwojciec/geolens"

var _ geolens.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of geolens.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*geolens.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*geolens.ExtractResult, error) {
	return e.ExtractFn(html)
}
