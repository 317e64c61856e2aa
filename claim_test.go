package geolens_test

import (
	"testing"

	"github.com/fwojciec/geolens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractClaims(t *testing.T) {
	t.Parallel()

	t.Run("finds a percentage claim with its figure", func(t *testing.T) {
		t.Parallel()

		claims := geolens.ExtractClaims("Revenue grew 40%. The team was pleased.")

		require.Len(t, claims, 1)
		assert.Equal(t, "Revenue grew 40%.", claims[0].Text)
		assert.Equal(t, geolens.ClaimPercentage, claims[0].Kind)
		assert.Equal(t, 0, claims[0].Paragraph)
		assert.Contains(t, claims[0].Figures, "40%")
	})

	t.Run("classifies years and comparatives", func(t *testing.T) {
		t.Parallel()

		text := "The company was founded in 2014.\n\nIt ships faster than its rivals."

		claims := geolens.ExtractClaims(text)

		require.Len(t, claims, 2)
		assert.Equal(t, geolens.ClaimYear, claims[0].Kind)
		assert.Equal(t, 0, claims[0].Paragraph)
		assert.Equal(t, geolens.ClaimComparative, claims[1].Kind)
		assert.Equal(t, 1, claims[1].Paragraph)
	})

	t.Run("plain prose yields no claims", func(t *testing.T) {
		t.Parallel()

		claims := geolens.ExtractClaims("A gentle introduction to the topic. Nothing numeric here.")

		assert.Empty(t, claims)
	})

	t.Run("claims keep document order", func(t *testing.T) {
		t.Parallel()

		text := "Sales hit 120 units. Margins reached 30%."

		claims := geolens.ExtractClaims(text)

		require.Len(t, claims, 2)
		assert.Equal(t, "Sales hit 120 units.", claims[0].Text)
		assert.Equal(t, "Margins reached 30%.", claims[1].Text)
	})
}

func TestHasEvidence(t *testing.T) {
	t.Parallel()

	t.Run("attribution counts as evidence", func(t *testing.T) {
		t.Parallel()

		assert.True(t, geolens.HasEvidence("Revenue grew 40%, according to the Q3 filing."))
	})

	t.Run("qualifier counts as evidence", func(t *testing.T) {
		t.Parallel()

		assert.True(t, geolens.HasEvidence("Revenue grew approximately 40% last year."))
	})

	t.Run("a bald claim has no evidence", func(t *testing.T) {
		t.Parallel()

		assert.False(t, geolens.HasEvidence("Revenue grew 40%."))
	})
}
