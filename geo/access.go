package geo

import (
	"strings"

	"github.com/fwojciec/geolens"
)

// renderGainThreshold mirrors the acquisition probe's bound for a
// significant rendering difference: rendered text more than 1.5x the
// statically served text means the page leans on JavaScript for its
// substance.
const renderGainThreshold = 1.5

// jsDependence checks whether the main content survives a plain HTTP
// fetch. Most AI crawlers do not execute JavaScript, so render-only
// content is invisible to them regardless of its quality.
func jsDependence() geolens.Rule {
	return geolens.Rule{
		ID:     "js-dependence",
		Axis:   geolens.AxisGEO,
		Weight: 12,
		Doc:    "main content is served without JavaScript execution",
		Evaluate: func(c *geolens.Content) geolens.RuleResult {
			r := c.Rendering
			if r == nil {
				return geolens.InsufficientData("rendering probe did not run")
			}
			if r.StaticWordCount == 0 && r.RenderedWordCount > 0 {
				return geolens.Fail("content is invisible without JavaScript (%d words render-only)", r.RenderedWordCount)
			}
			if float64(r.RenderedWordCount) > float64(r.StaticWordCount)*renderGainThreshold {
				return geolens.Fail("rendering adds %d words over the %d served statically",
					r.RenderedWordCount-r.StaticWordCount, r.StaticWordCount)
			}
			return geolens.Pass("static fetch carries the content (%d of %d words)",
				r.StaticWordCount, r.RenderedWordCount)
		},
	}
}

func aiCrawlerAccess() geolens.Rule {
	return geolens.Rule{
		ID:     "ai-crawler-access",
		Axis:   geolens.AxisGEO,
		Weight: 10,
		Doc:    "robots.txt admits the major AI crawlers",
		Evaluate: func(c *geolens.Content) geolens.RuleResult {
			if c.Robots == nil {
				return geolens.InsufficientData("robots.txt not checked")
			}
			blocked := c.Robots.Blocked()
			if len(blocked) > 0 {
				return geolens.FailWith(strings.Join(blocked, ", "),
					"%d of %d AI crawlers blocked by robots.txt", len(blocked), len(c.Robots.Agents))
			}
			return geolens.Pass("all %d AI crawlers allowed", len(c.Robots.Agents))
		},
	}
}
