package geolens

import "context"

// TokenCounter estimates how many model tokens a piece of text costs.
// The simulator budgets its input window with it, and audits use it to
// report how much of a site an AI system would ingest.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
