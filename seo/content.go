package seo

import "github.com/fwojciec/geolens"

// minContentWords is the thin-content bound.
const minContentWords = 300

func contentLength() geolens.Rule {
	return geolens.Rule{
		ID:     "content-length",
		Axis:   geolens.AxisSEO,
		Weight: 10,
		Doc:    "main text is at least 300 words",
		Evaluate: func(c *geolens.Content) geolens.RuleResult {
			words := geolens.CountWords(c.MainText)
			if words == 0 {
				return geolens.Fail("no main text extracted")
			}
			if words < minContentWords {
				return geolens.Fail("thin content: %d words, want at least %d", words, minContentWords)
			}
			return geolens.Pass("main text has %d words", words)
		},
	}
}
