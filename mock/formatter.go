package mock

import (
	"io"

	"github.com/fwojciec/geolens"
)

var _ geolens.Formatter = (*Formatter)(nil)

// Formatter is a mock implementation of geolens.Formatter.
type Formatter struct {
	FormatFn func(w io.Writer, r *geolens.Report) error
}

func (f *Formatter) Format(w io.Writer, r *geolens.Report) error {
	return f.FormatFn(w, r)
}
