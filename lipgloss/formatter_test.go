package lipgloss_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/fwojciec/geolens"
	"github.com/fwojciec/geolens/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *geolens.Report {
	return &geolens.Report{
		ContentRef: "https://example.com/pricing",
		SEO: geolens.AxisScore{
			Axis:  geolens.AxisSEO,
			Score: 92,
			Results: []geolens.RuleResult{
				{RuleID: "title-present", Passed: true, Message: "title found"},
				{RuleID: "meta-description", Passed: false, Message: "no meta description"},
			},
		},
		GEO: geolens.AxisScore{
			Axis:  geolens.AxisGEO,
			Score: 55,
			Results: []geolens.RuleResult{
				{RuleID: "claim-evidence-proximity", Passed: false, Message: "claim lacks nearby evidence", Evidence: "Revenue grew 40%."},
			},
		},
		GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestFormatter_Format(t *testing.T) {
	t.Parallel()

	t.Run("renders scores with grades", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := lipgloss.NewFormatter().Format(&buf, sampleReport())
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "https://example.com/pricing")
		assert.Contains(t, out, "92 A")
		assert.Contains(t, out, "55 D")
	})

	t.Run("marks each check and shows evidence", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := lipgloss.NewFormatter().Format(&buf, sampleReport())
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "✓")
		assert.Contains(t, out, "✗")
		assert.Contains(t, out, "title-present")
		assert.Contains(t, out, "no meta description")
		assert.Contains(t, out, "↳")
		assert.Contains(t, out, "Revenue grew 40%.")
		assert.Contains(t, out, "1 of 2 passed")
		assert.Contains(t, out, "0 of 1 passed")
	})

	t.Run("renders drift flags when the simulation has them", func(t *testing.T) {
		t.Parallel()

		r := sampleReport()
		r.AISimulation = &geolens.Simulation{
			Summary: "The company doubled revenue.",
			DriftFlags: []geolens.DriftFlag{
				{Kind: geolens.DriftContradicted, Claim: "Revenue grew 40%.", Detail: "summary says doubled"},
			},
		}

		var buf bytes.Buffer
		err := lipgloss.NewFormatter().Format(&buf, r)
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "AI simulation")
		assert.Contains(t, out, "The company doubled revenue.")
		assert.Contains(t, out, "contradicted")
		assert.Contains(t, out, "summary says doubled")
	})

	t.Run("notes a clean simulation", func(t *testing.T) {
		t.Parallel()

		r := sampleReport()
		r.AISimulation = &geolens.Simulation{Summary: "A faithful summary."}

		var buf bytes.Buffer
		err := lipgloss.NewFormatter().Format(&buf, r)
		require.NoError(t, err)

		assert.Contains(t, buf.String(), "no drift detected")
	})

	t.Run("omits the simulation section when absent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := lipgloss.NewFormatter().Format(&buf, sampleReport())
		require.NoError(t, err)

		assert.NotContains(t, buf.String(), "AI simulation")
	})

	t.Run("returns EINVALID for a nil report", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := lipgloss.NewFormatter().Format(&buf, nil)

		require.Error(t, err)
		assert.Equal(t, geolens.EINVALID, geolens.ErrorCode(err))
	})
}
