// Package readability extracts main content with go-readability. It is the
// fallback extractor for pages trafilatura cannot segment.
package readability

import (
	"strings"

	"github.com/fwojciec/geolens"
	"github.com/go-shiori/go-readability"
)

var _ geolens.Extractor = (*Extractor)(nil)

// Extractor runs Mozilla's readability heuristics over raw HTML.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract strips boilerplate from rawHTML and returns the article content.
func (e *Extractor) Extract(rawHTML string) (*geolens.ExtractResult, error) {
	if rawHTML == "" {
		return nil, geolens.Errorf(geolens.EINVALID, "nothing to extract")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &geolens.ExtractResult{
		Title:       article.Title,
		Description: article.Excerpt,
		ContentHTML: article.Content,
		ContentText: article.TextContent,
		Lang:        article.Language,
	}, nil
}
