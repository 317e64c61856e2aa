package geolens

import "context"

// Summarizer produces a short summary of prose. Implementations wrap a
// local model server or a hosted model. Absence of a summarizer is a
// valid configuration state, not an error; the pipeline degrades to
// rule-only output.
type Summarizer interface {
	// Summarize returns a summary of the given text.
	// Returns EUNAVAILABLE when the model backend is unreachable.
	Summarize(ctx context.Context, text string) (string, error)
}
