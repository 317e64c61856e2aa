package seo

import (
	"sort"
	"strings"

	"github.com/fwojciec/geolens"
)

// expectedSchemas maps a detected page type to schema.org types that
// would satisfy it. Any one match counts.
var expectedSchemas = map[string][]string{
	"article": {"Article", "NewsArticle", "BlogPosting", "TechArticle"},
	"product": {"Product", "Offer"},
	"faq":     {"FAQPage", "QAPage"},
	"howto":   {"HowTo"},
	"docs":    {"Article", "TechArticle", "APIReference"},
	"recipe":  {"Recipe"},
}

func structuredDataPresent() geolens.Rule {
	return geolens.Rule{
		ID:     "structured-data-present",
		Axis:   geolens.AxisSEO,
		Weight: 8,
		Doc:    "the page declares at least one JSON-LD block",
		Evaluate: func(c *geolens.Content) geolens.RuleResult {
			if len(c.StructuredData) == 0 {
				return geolens.Fail("no structured data declared")
			}
			types := make([]string, 0, len(c.StructuredData))
			for k := range c.StructuredData {
				types = append(types, k)
			}
			sort.Strings(types)
			return geolens.Pass("structured data present: %s", strings.Join(types, ", "))
		},
	}
}

func structuredDataType() geolens.Rule {
	return geolens.Rule{
		ID:     "structured-data-type",
		Axis:   geolens.AxisSEO,
		Weight: 6,
		Doc:    "structured data includes a schema matching the detected page type",
		Evaluate: func(c *geolens.Content) geolens.RuleResult {
			if c.PageType == "" {
				return geolens.InsufficientData("page type not detected")
			}

			expected, ok := expectedSchemas[c.PageType]
			if !ok {
				// Generic pages have no schema expectation.
				return geolens.Pass("no schema expected for page type %q", c.PageType)
			}

			for _, schema := range expected {
				if _, declared := c.StructuredData[schema]; declared {
					return geolens.Pass("%s schema matches page type %q", schema, c.PageType)
				}
			}
			return geolens.Fail("page type %q has none of its schemas (%s)",
				c.PageType, strings.Join(expected, ", "))
		},
	}
}
