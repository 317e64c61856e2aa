package seo

import (
	"fmt"

	"github.com/fwojciec/geolens"
)

func singleH1() geolens.Rule {
	return geolens.Rule{
		ID:     "single-h1",
		Axis:   geolens.AxisSEO,
		Weight: 8,
		Doc:    "the page has exactly one top-level heading",
		Evaluate: func(c *geolens.Content) geolens.RuleResult {
			if len(c.Headings) == 0 {
				return geolens.Fail("page has no headings")
			}

			var h1s []string
			for _, h := range c.Headings {
				if h.Level == 1 {
					h1s = append(h1s, h.Text)
				}
			}

			switch len(h1s) {
			case 0:
				return geolens.Fail("no h1 heading")
			case 1:
				return geolens.Pass("exactly one h1")
			}
			return geolens.FailWith(h1s[1], "%d h1 headings, want exactly one", len(h1s))
		},
	}
}

func headingOrder() geolens.Rule {
	return geolens.Rule{
		ID:     "heading-order",
		Axis:   geolens.AxisSEO,
		Weight: 8,
		Doc:    "heading levels never skip (no h1 followed directly by h3)",
		Evaluate: func(c *geolens.Content) geolens.RuleResult {
			if len(c.Headings) == 0 {
				return geolens.Fail("page has no headings")
			}

			prev := c.Headings[0].Level
			for _, h := range c.Headings[1:] {
				if h.Level > prev+1 {
					evidence := fmt.Sprintf("h%d %q follows h%d", h.Level, h.Text, prev)
					return geolens.FailWith(evidence, "heading hierarchy skipped level: h%d to h%d", prev, h.Level)
				}
				prev = h.Level
			}
			return geolens.Pass("heading levels descend without gaps")
		},
	}
}
