package seo

import (
	"strings"

	"github.com/fwojciec/geolens"
)

// genericAnchors are placeholder anchor texts that tell a crawler nothing
// about the link target.
var genericAnchors = map[string]bool{
	"click here": true,
	"here":       true,
	"link":       true,
	"read more":  true,
	"more":       true,
	"learn more": true,
	"this":       true,
}

func genericAnchorText() geolens.Rule {
	return geolens.Rule{
		ID:     "generic-anchor-text",
		Axis:   geolens.AxisSEO,
		Weight: 6,
		Doc:    "no link uses placeholder anchor text such as \"click here\"",
		Evaluate: func(c *geolens.Content) geolens.RuleResult {
			if len(c.Links) == 0 {
				return geolens.Pass("no links to check")
			}

			var offenders []string
			for _, l := range c.Links {
				anchor := strings.ToLower(strings.TrimSpace(l.AnchorText))
				if genericAnchors[anchor] {
					offenders = append(offenders, l.Href)
				}
			}
			if len(offenders) > 0 {
				return geolens.FailWith(strings.Join(offenders, ", "),
					"generic anchor text on %d of %d links", len(offenders), len(c.Links))
			}
			return geolens.Pass("all %d anchors are descriptive", len(c.Links))
		},
	}
}

func linkRatio() geolens.Rule {
	return geolens.Rule{
		ID:     "link-ratio",
		Axis:   geolens.AxisSEO,
		Weight: 4,
		Doc:    "the page links to its own site, not only outward",
		Evaluate: func(c *geolens.Content) geolens.RuleResult {
			if len(c.Links) == 0 {
				return geolens.Fail("page has no links")
			}

			internal := 0
			for _, l := range c.Links {
				if l.Internal {
					internal++
				}
			}
			if internal == 0 {
				return geolens.Fail("all %d links are external", len(c.Links))
			}
			return geolens.Pass("%d internal, %d external links", internal, len(c.Links)-internal)
		},
	}
}
