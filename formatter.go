package geolens

import "io"

// Formatter renders a report. Formatters perform no analysis; everything
// they print is already in the Report.
type Formatter interface {
	// Format writes the rendered report to w.
	Format(w io.Writer, r *Report) error
}
