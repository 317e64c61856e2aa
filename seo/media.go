package seo

import (
	"strings"

	"github.com/fwojciec/geolens"
)

func imageAltText() geolens.Rule {
	return geolens.Rule{
		ID:     "image-alt-text",
		Axis:   geolens.AxisSEO,
		Weight: 6,
		Doc:    "every content image carries alt text",
		Evaluate: func(c *geolens.Content) geolens.RuleResult {
			if len(c.Images) == 0 {
				return geolens.Pass("no images to check")
			}

			var missing []string
			for _, img := range c.Images {
				if strings.TrimSpace(img.Alt) == "" {
					missing = append(missing, img.Src)
				}
			}
			if len(missing) > 0 {
				return geolens.FailWith(strings.Join(missing, ", "),
					"%d of %d images missing alt text", len(missing), len(c.Images))
			}
			return geolens.Pass("all %d images have alt text", len(c.Images))
		},
	}
}

func canonicalPresent() geolens.Rule {
	return geolens.Rule{
		ID:     "canonical-present",
		Axis:   geolens.AxisSEO,
		Weight: 4,
		Doc:    "the page declares a canonical URL",
		Evaluate: func(c *geolens.Content) geolens.RuleResult {
			if strings.TrimSpace(c.Canonical) == "" {
				return geolens.Fail("no canonical link declared")
			}
			return geolens.Pass("canonical: %s", c.Canonical)
		},
	}
}

func htmlLang() geolens.Rule {
	return geolens.Rule{
		ID:     "html-lang",
		Axis:   geolens.AxisSEO,
		Weight: 4,
		Doc:    "the document declares its language",
		Evaluate: func(c *geolens.Content) geolens.RuleResult {
			if strings.TrimSpace(c.Lang) == "" {
				return geolens.Fail("no language declared or detected")
			}
			return geolens.Pass("language: %s", c.Lang)
		},
	}
}
