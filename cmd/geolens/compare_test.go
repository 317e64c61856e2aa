package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/geolens"
	main "github.com/fwojciec/geolens/cmd/geolens"
	"github.com/fwojciec/geolens/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// compareReportStore serves two fixed records by ID.
func compareReportStore(t *testing.T, baseline, current *geolens.ReportRecord) *mock.ReportService {
	t.Helper()
	return &mock.ReportService{
		FindReportByIDFn: func(_ context.Context, id string) (*geolens.ReportRecord, error) {
			switch id {
			case baseline.ID:
				return baseline, nil
			case current.ID:
				return current, nil
			default:
				return nil, geolens.Errorf(geolens.ENOTFOUND, "report not found")
			}
		},
	}
}

func comparisonRecord(id string, seoScore int, titlePassed, answerPassed bool) *geolens.ReportRecord {
	return &geolens.ReportRecord{
		ID:        id,
		URL:       "https://example.com/pricing",
		SEOScore:  seoScore,
		GEOScore:  60,
		CreatedAt: time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		Report: &geolens.Report{
			ContentRef: "https://example.com/pricing",
			SEO: geolens.AxisScore{
				Axis:  geolens.AxisSEO,
				Score: seoScore,
				Results: []geolens.RuleResult{
					{RuleID: "title-length", Passed: titlePassed, Message: "Title length check"},
					{RuleID: "single-h1", Passed: true, Message: "Exactly one h1"},
				},
			},
			GEO: geolens.AxisScore{
				Axis:  geolens.AxisGEO,
				Score: 60,
				Results: []geolens.RuleResult{
					{RuleID: "answer-structure", Passed: answerPassed, Message: "Answer structure check"},
				},
			},
		},
	}
}

func TestCompareCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints score deltas and flipped rules", func(t *testing.T) {
		t.Parallel()

		baseline := comparisonRecord("rec-old", 72, true, false)
		current := comparisonRecord("rec-new", 85, false, true)

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Reports: compareReportStore(t, baseline, current),
		}

		cmd := &main.CompareCmd{Baseline: "rec-old", Current: "rec-new"}
		err := cmd.Run(deps)
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "rec-old")
		assert.Contains(t, output, "rec-new")
		assert.Contains(t, output, "seo  72 -> 85  (+13)")

		assert.Contains(t, output, "Newly failing:")
		assert.Contains(t, output, "title-length")
		assert.Contains(t, output, "Newly passing:")
		assert.Contains(t, output, "answer-structure")
		// Unchanged rules never show up in the diff
		assert.NotContains(t, output, "single-h1")
	})

	t.Run("reports no changes for identical results", func(t *testing.T) {
		t.Parallel()

		baseline := comparisonRecord("rec-old", 72, true, false)
		current := comparisonRecord("rec-new", 72, true, false)

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Reports: compareReportStore(t, baseline, current),
		}

		cmd := &main.CompareCmd{Baseline: "rec-old", Current: "rec-new"}
		err := cmd.Run(deps)
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "No rule changes.")
		assert.Contains(t, output, "seo  72 -> 72  (+0)")
	})

	t.Run("flags a comparison across different URLs", func(t *testing.T) {
		t.Parallel()

		baseline := comparisonRecord("rec-old", 72, true, false)
		current := comparisonRecord("rec-new", 85, true, false)
		current.URL = "https://example.com/features"

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Reports: compareReportStore(t, baseline, current),
		}

		cmd := &main.CompareCmd{Baseline: "rec-old", Current: "rec-new"}
		err := cmd.Run(deps)
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "different URL")
	})

	t.Run("fails when either report is missing", func(t *testing.T) {
		t.Parallel()

		baseline := comparisonRecord("rec-old", 72, true, false)

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Reports: compareReportStore(t, baseline, baseline),
		}

		cmd := &main.CompareCmd{Baseline: "rec-old", Current: "rec-gone"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, geolens.ENOTFOUND, geolens.ErrorCode(err))
		assert.Contains(t, stderr.String(), `report "rec-gone" not found`)
	})
}
