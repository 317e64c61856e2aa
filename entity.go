package geolens

import "context"

// Entity is a named entity found in prose.
type Entity struct {
	// Text is the entity's surface form.
	Text string `json:"text"`

	// Type is the entity class (PERSON, ORG, GPE, ...).
	Type string `json:"type"`

	// Position is the rune offset at which this mention starts in the
	// text it was extracted from.
	Position int `json:"position"`
}

// EntityExtractor finds named entities in prose. The capability is
// optional: a parser without one produces Content with nil Entities, and
// the heuristics that need entities degrade explicitly rather than guess.
type EntityExtractor interface {
	// Entities returns the named entities in text, in document order.
	Entities(ctx context.Context, text string) ([]Entity, error)
}
