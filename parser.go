package geolens

import "context"

// Parser builds a Content from a fetched page. Implementations own all
// HTML and DOM handling; the analysis pipeline never touches raw HTML.
type Parser interface {
	// Parse normalizes the page into a Content. Optional fields
	// (entities, rendering, robots, page type) are populated only when
	// their upstream data is present on the page or the parser is
	// configured with the matching extractor.
	Parse(ctx context.Context, page *Page) (*Content, error)
}
