// Package trafilatura implements main content extraction using
// go-trafilatura, the primary extractor in the chain.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/geolens"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var _ geolens.Extractor = (*Extractor)(nil)

// Extractor segments pages with go-trafilatura and keeps the metadata it
// recovers along the way (title, description, language).
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the main content of rawHTML with boilerplate removed.
func (e *Extractor) Extract(rawHTML string) (*geolens.ExtractResult, error) {
	if rawHTML == "" {
		return nil, geolens.Errorf(geolens.EINVALID, "nothing to extract")
	}

	// Fallback mode routes difficult layouts to trafilatura's secondary
	// algorithms.
	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{EnableFallback: true})
	if err != nil {
		return nil, err
	}

	res := &geolens.ExtractResult{
		Title:       result.Metadata.Title,
		Description: result.Metadata.Description,
		ContentText: result.ContentText,
		Lang:        result.Metadata.Language,
	}
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		res.ContentHTML = buf.String()
	}
	return res, nil
}
