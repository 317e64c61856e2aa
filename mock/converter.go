package mock

import "github.com/fwojciec/geolens"

var _ geolens.Converter = (*Converter)(nil)

// Converter is a mock implementation of geolens.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
