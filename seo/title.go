package seo

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/geolens"
)

// Title length bounds in characters. Search engines truncate around 60
// and treat very short titles as low-signal.
const (
	minTitleLength = 30
	maxTitleLength = 60
)

func titlePresent() geolens.Rule {
	return geolens.Rule{
		ID:     "title-present",
		Axis:   geolens.AxisSEO,
		Weight: 12,
		Doc:    "the page declares a non-empty <title>",
		Evaluate: func(c *geolens.Content) geolens.RuleResult {
			if strings.TrimSpace(c.Title) == "" {
				return geolens.Fail("missing title")
			}
			return geolens.Pass("title present")
		},
	}
}

func titleLength() geolens.Rule {
	return geolens.Rule{
		ID:     "title-length",
		Axis:   geolens.AxisSEO,
		Weight: 4,
		Doc:    "title length is within the 30-60 character band",
		Evaluate: func(c *geolens.Content) geolens.RuleResult {
			title := strings.TrimSpace(c.Title)
			if title == "" {
				// Absence is title-present's finding; length has
				// nothing to measure.
				return geolens.Pass("not applicable: no title declared")
			}

			n := utf8.RuneCountInString(title)
			switch {
			case n < minTitleLength:
				return geolens.FailWith(title, "title too short: %d chars, want at least %d", n, minTitleLength)
			case n > maxTitleLength:
				return geolens.FailWith(title, "title too long: %d chars, want at most %d", n, maxTitleLength)
			}
			return geolens.Pass("title length %d chars", n)
		},
	}
}
