// Package prose provides named-entity extraction using the prose NLP
// library. Extraction is pure computation over the text; no model server
// and no network.
package prose

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/geolens"
	prose "github.com/jdkato/prose/v2"
)

// Ensure Extractor implements geolens.EntityExtractor at compile time.
var _ geolens.EntityExtractor = (*Extractor)(nil)

// Extractor finds named entities with prose's statistical NER model.
// Each mention is reported separately; the ambiguity heuristic needs to
// see "Smith" and "Jane Smith" as distinct mentions.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Entities returns the named entities in text, in document order.
func (e *Extractor) Entities(_ context.Context, text string) ([]geolens.Entity, error) {
	if strings.TrimSpace(text) == "" {
		return []geolens.Entity{}, nil
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, geolens.Errorf(geolens.EINTERNAL, "entity extraction: %v", err)
	}

	entities := []geolens.Entity{}
	from := 0
	for _, ent := range doc.Entities() {
		entities = append(entities, geolens.Entity{
			Text:     ent.Text,
			Type:     ent.Label,
			Position: runeOffset(text, ent.Text, &from),
		})
	}
	return entities, nil
}

// runeOffset locates mention starting the search at *from, advancing
// *from past the match so repeated mentions get increasing offsets.
func runeOffset(text, mention string, from *int) int {
	idx := strings.Index(text[*from:], mention)
	if idx < 0 {
		// Tokenization may have normalized the surface form; fall back
		// to the first occurrence anywhere.
		idx = strings.Index(text, mention)
		if idx < 0 {
			return 0
		}
		return utf8.RuneCountInString(text[:idx])
	}
	start := *from + idx
	*from = start + len(mention)
	return utf8.RuneCountInString(text[:start])
}
