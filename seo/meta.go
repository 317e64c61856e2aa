package seo

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/geolens"
)

// Meta description length bounds in characters. Snippets cut off near
// 160; below 70 the description rarely fills a result line.
const (
	minMetaLength = 70
	maxMetaLength = 160
)

func metaDescriptionPresent() geolens.Rule {
	return geolens.Rule{
		ID:     "meta-description-present",
		Axis:   geolens.AxisSEO,
		Weight: 8,
		Doc:    "the page declares a meta description",
		Evaluate: func(c *geolens.Content) geolens.RuleResult {
			if strings.TrimSpace(c.MetaDescription) == "" {
				return geolens.Fail("missing meta description")
			}
			return geolens.Pass("meta description present")
		},
	}
}

func metaDescriptionLength() geolens.Rule {
	return geolens.Rule{
		ID:     "meta-description-length",
		Axis:   geolens.AxisSEO,
		Weight: 4,
		Doc:    "meta description length is within the 70-160 character band",
		Evaluate: func(c *geolens.Content) geolens.RuleResult {
			desc := strings.TrimSpace(c.MetaDescription)
			if desc == "" {
				return geolens.Pass("not applicable: no meta description declared")
			}

			n := utf8.RuneCountInString(desc)
			switch {
			case n < minMetaLength:
				return geolens.FailWith(desc, "meta description too short: %d chars, want at least %d", n, minMetaLength)
			case n > maxMetaLength:
				return geolens.FailWith(geolens.Truncate(desc, 80), "meta description too long: %d chars, want at most %d", n, maxMetaLength)
			}
			return geolens.Pass("meta description length %d chars", n)
		},
	}
}
