package seo_test

import (
	"testing"

	"github.com/fwojciec/geolens"
	"github.com/stretchr/testify/assert"
)

func TestSingleH1(t *testing.T) {
	t.Parallel()

	rule := ruleByID(t, "single-h1")

	t.Run("passes with exactly one h1", func(t *testing.T) {
		t.Parallel()

		res := rule.Evaluate(&geolens.Content{Headings: []geolens.Heading{
			{Level: 1, Text: "Main"},
			{Level: 2, Text: "Sub"},
		}})

		assert.True(t, res.Passed)
	})

	t.Run("fails with no h1", func(t *testing.T) {
		t.Parallel()

		res := rule.Evaluate(&geolens.Content{Headings: []geolens.Heading{
			{Level: 2, Text: "Sub"},
		}})

		assert.False(t, res.Passed)
	})

	t.Run("fails with two h1s and cites the second", func(t *testing.T) {
		t.Parallel()

		res := rule.Evaluate(&geolens.Content{Headings: []geolens.Heading{
			{Level: 1, Text: "First"},
			{Level: 1, Text: "Second"},
		}})

		assert.False(t, res.Passed)
		assert.Equal(t, "Second", res.Evidence)
	})

	t.Run("fails with no headings at all", func(t *testing.T) {
		t.Parallel()

		res := rule.Evaluate(&geolens.Content{Title: "t"})

		assert.False(t, res.Passed)
	})
}

func TestHeadingOrder(t *testing.T) {
	t.Parallel()

	rule := ruleByID(t, "heading-order")

	t.Run("passes a clean outline", func(t *testing.T) {
		t.Parallel()

		res := rule.Evaluate(&geolens.Content{Headings: []geolens.Heading{
			{Level: 1, Text: "A"},
			{Level: 2, Text: "B"},
			{Level: 3, Text: "C"},
			{Level: 2, Text: "D"},
		}})

		assert.True(t, res.Passed)
	})

	t.Run("fails an h1 followed directly by an h3", func(t *testing.T) {
		t.Parallel()

		res := rule.Evaluate(&geolens.Content{Headings: []geolens.Heading{
			{Level: 1, Text: "A"},
			{Level: 3, Text: "C"},
		}})

		assert.False(t, res.Passed)
		assert.Contains(t, res.Message, "heading hierarchy skipped level")
		assert.Contains(t, res.Evidence, "C")
	})

	t.Run("jumping back up is allowed", func(t *testing.T) {
		t.Parallel()

		res := rule.Evaluate(&geolens.Content{Headings: []geolens.Heading{
			{Level: 1, Text: "A"},
			{Level: 2, Text: "B"},
			{Level: 3, Text: "C"},
			{Level: 1, Text: "D"},
		}})

		assert.True(t, res.Passed)
	})
}
