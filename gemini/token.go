package gemini

import (
	"context"

	"github.com/fwojciec/geolens"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ geolens.TokenCounter = (*TokenCounter)(nil)

// TokenCounter estimates token costs with a local Gemini tokenizer. Counting
// stays offline, so audits can total up ingestion costs without API calls.
type TokenCounter struct {
	local *tokenizer.LocalTokenizer
}

// NewTokenCounter loads the tokenizer vocabulary for the given model.
func NewTokenCounter(model string) (*TokenCounter, error) {
	local, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, err
	}
	return &TokenCounter{local: local}, nil
}

// CountTokens returns how many tokens text occupies in the model's input
// window. Empty text is free.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	res, err := tc.local.CountTokens([]*genai.Content{genai.NewContentFromText(text, "user")}, nil)
	if err != nil {
		return 0, err
	}

	return int(res.TotalTokens), nil
}
