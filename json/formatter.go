// Package json renders reports as stable, indented JSON. This is the
// machine-readable output; the same struct tags define the API and
// storage encodings, so all three stay in sync by construction.
package json

import (
	"encoding/json"
	"io"

	"github.com/fwojciec/geolens"
)

// Ensure Formatter implements geolens.Formatter at compile time.
var _ geolens.Formatter = (*Formatter)(nil)

// Formatter writes a report as indented JSON. Field order follows the
// Report struct, so identical reports serialize identically.
type Formatter struct{}

// NewFormatter creates a new Formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format writes r to w as JSON.
func (f *Formatter) Format(w io.Writer, r *geolens.Report) error {
	if r == nil {
		return geolens.Errorf(geolens.EINVALID, "nil report")
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
