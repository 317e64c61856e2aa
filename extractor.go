package geolens

// ExtractResult holds the main content extracted from an HTML document.
type ExtractResult struct {
	// Title is the document title from page metadata.
	Title string

	// Description is the document description from page metadata.
	Description string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string

	// ContentText is the main content as plain text.
	ContentText string

	// Lang is the document language reported by the extractor, if any.
	Lang string
}

// Extractor extracts main content from HTML documents, removing
// boilerplate. The title and description come from page metadata
// (meta tags, JSON+LD, etc.).
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	Extract(html string) (*ExtractResult, error)
}
