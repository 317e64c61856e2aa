package seo_test

import (
	"testing"

	"github.com/fwojciec/geolens"
	"github.com/stretchr/testify/assert"
)

func TestStructuredDataPresent(t *testing.T) {
	t.Parallel()

	rule := ruleByID(t, "structured-data-present")

	t.Run("passes with a JSON-LD block", func(t *testing.T) {
		t.Parallel()

		res := rule.Evaluate(&geolens.Content{StructuredData: map[string][]map[string]any{
			"Article": {{"headline": "A"}},
		}})

		assert.True(t, res.Passed)
		assert.Contains(t, res.Message, "Article")
	})

	t.Run("fails with none", func(t *testing.T) {
		t.Parallel()

		res := rule.Evaluate(&geolens.Content{Title: "t"})

		assert.False(t, res.Passed)
	})
}

func TestStructuredDataType(t *testing.T) {
	t.Parallel()

	rule := ruleByID(t, "structured-data-type")

	t.Run("passes when a schema matches the page type", func(t *testing.T) {
		t.Parallel()

		res := rule.Evaluate(&geolens.Content{
			PageType: "article",
			StructuredData: map[string][]map[string]any{
				"BlogPosting": {{"headline": "A"}},
			},
		})

		assert.True(t, res.Passed)
	})

	t.Run("fails when the expected schema is missing", func(t *testing.T) {
		t.Parallel()

		res := rule.Evaluate(&geolens.Content{
			PageType: "faq",
			StructuredData: map[string][]map[string]any{
				"Article": {{"headline": "A"}},
			},
		})

		assert.False(t, res.Passed)
		assert.Contains(t, res.Message, "FAQPage")
	})

	t.Run("degrades when the page type was not detected", func(t *testing.T) {
		t.Parallel()

		res := rule.Evaluate(&geolens.Content{Title: "t"})

		assert.False(t, res.Passed)
		assert.Contains(t, res.Message, "insufficient data")
	})

	t.Run("generic pages have no schema expectation", func(t *testing.T) {
		t.Parallel()

		res := rule.Evaluate(&geolens.Content{PageType: "generic"})

		assert.True(t, res.Passed)
	})
}
