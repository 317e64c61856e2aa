// Package simulate runs content through a summarization model and checks
// the output for drift against the source's own claims. It estimates how
// an AI system would restate the page: which figures survive, which get
// dropped, and which come back changed.
package simulate

import (
	"context"
	"strings"

	"github.com/fwojciec/geolens"
)

// Input budget defaults applied when the caller leaves the
// corresponding field unset.
const (
	DefaultMaxInputTokens = 4096
	defaultMaxInputRunes  = 16384
)

// Ensure Simulator implements geolens.Simulator at compile time.
var _ geolens.Simulator = (*Simulator)(nil)

// Simulator drives an injected summarization model and derives drift
// flags from its output.
type Simulator struct {
	Summarizer geolens.Summarizer

	// Converter renders MainHTML to Markdown before summarization so the
	// model sees the page's structure. Optional; MainText is sent
	// directly when unset or when the page has no main HTML.
	Converter geolens.Converter

	// TokenCounter sizes the model input against MaxInputTokens.
	// Optional; a flat rune cap applies when unset, and counting errors
	// fall back to the same cap.
	TokenCounter   geolens.TokenCounter
	MaxInputTokens int
}

// Simulate summarizes the content and flags drift between the summary
// and the source claims. Returns EUNAVAILABLE when no summarizer is
// configured; model transport errors pass through unwrapped so callers
// can distinguish unavailability from bad input.
func (s *Simulator) Simulate(ctx context.Context, content *geolens.Content, claims []geolens.Claim) (*geolens.Simulation, error) {
	if s.Summarizer == nil {
		return nil, geolens.Errorf(geolens.EUNAVAILABLE, "no summarizer configured")
	}

	input := s.prepareInput(ctx, content)
	if strings.TrimSpace(input) == "" {
		return nil, geolens.Errorf(geolens.EINVALID, "no content to summarize")
	}

	summary, err := s.Summarizer.Summarize(ctx, input)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(summary) == "" {
		return nil, geolens.Errorf(geolens.EINTERNAL, "model returned an empty summary")
	}

	return &geolens.Simulation{
		Summary:    summary,
		DriftFlags: DetectDrift(summary, claims),
	}, nil
}

func (s *Simulator) prepareInput(ctx context.Context, content *geolens.Content) string {
	input := content.MainText
	if s.Converter != nil && content.MainHTML != "" {
		if md, err := s.Converter.Convert(content.MainHTML); err == nil && strings.TrimSpace(md) != "" {
			input = md
		}
	}

	if s.TokenCounter == nil {
		return truncateRunes(input, defaultMaxInputRunes)
	}

	budget := s.MaxInputTokens
	if budget <= 0 {
		budget = DefaultMaxInputTokens
	}
	count, err := s.TokenCounter.CountTokens(ctx, input)
	if err != nil {
		return truncateRunes(input, defaultMaxInputRunes)
	}
	if count <= budget {
		return input
	}

	// Tokenizers are not linear in runes, so cut proportionally with
	// headroom rather than iterating toward the exact budget.
	runes := []rune(input)
	keep := int(float64(len(runes)) * float64(budget) / float64(count) * 0.9)
	return truncateRunes(input, keep)
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
