package crawl_test

import (
	"context"
	"fmt"
	"regexp"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/geolens"
	"github.com/fwojciec/geolens/crawl"
	"github.com/fwojciec/geolens/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// linkPage builds parser output for a page with the given internal links.
func linkPage(page *geolens.Page, links ...string) *geolens.Content {
	content := &geolens.Content{
		Ref:      page.Ref,
		RawHTML:  page.HTML,
		Title:    "Page",
		MainText: "Body text.",
	}
	for _, href := range links {
		content.Links = append(content.Links, geolens.Link{Href: href, Internal: true})
	}
	return content
}

func TestAuditor_WalkSite(t *testing.T) {
	t.Parallel()

	t.Run("walks internal links when the sitemap is empty", func(t *testing.T) {
		t.Parallel()

		siteLinks := map[string][]string{
			"https://example.com/":  {"https://example.com/a", "https://example.com/b"},
			"https://example.com/a": {"https://example.com/a/x"},
		}

		a, m := newTestAuditor()
		m.Parser.ParseFn = func(_ context.Context, page *geolens.Page) (*geolens.Content, error) {
			return linkPage(page, siteLinks[page.Ref]...), nil
		}

		var events []crawl.ProgressEvent
		result, err := a.AuditSite(context.Background(), "https://example.com", nil, func(e crawl.ProgressEvent) {
			events = append(events, e)
		})

		require.NoError(t, err)
		assert.Equal(t, 4, result.Analyzed)
		assert.Equal(t, 0, result.Failed)

		// Shallower pages are audited first.
		var refs []string
		for _, report := range result.Reports {
			refs = append(refs, report.ContentRef)
		}
		assert.Equal(t, []string{
			"https://example.com/",
			"https://example.com/a",
			"https://example.com/b",
			"https://example.com/a/x",
		}, refs)

		// Walks have no known total, so no started event; the final
		// event marks the finish.
		require.NotEmpty(t, events)
		assert.Equal(t, crawl.ProgressCompleted, events[0].Type)
		assert.Equal(t, crawl.ProgressFinished, events[len(events)-1].Type)
	})

	t.Run("visits every page exactly once despite link cycles", func(t *testing.T) {
		t.Parallel()

		siteLinks := map[string][]string{
			"https://example.com/":  {"https://example.com/a", "https://example.com/"},
			"https://example.com/a": {"https://example.com/", "https://example.com/a"},
		}

		var fetches atomic.Int32
		a, m := newTestAuditor()
		m.Fetcher.FetchFn = func(_ context.Context, ref string) (string, error) {
			fetches.Add(1)
			return "<html><body>" + ref + "</body></html>", nil
		}
		m.Parser.ParseFn = func(_ context.Context, page *geolens.Page) (*geolens.Content, error) {
			return linkPage(page, siteLinks[page.Ref]...), nil
		}

		result, err := a.AuditSite(context.Background(), "https://example.com", nil, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Analyzed)
		assert.Equal(t, int32(2), fetches.Load())
	})

	t.Run("ignores fragment-only URL variants", func(t *testing.T) {
		t.Parallel()

		siteLinks := map[string][]string{
			"https://example.com/": {
				"https://example.com/a",
				"https://example.com/a#install",
				"https://example.com/a#usage",
			},
		}

		a, m := newTestAuditor()
		m.Parser.ParseFn = func(_ context.Context, page *geolens.Page) (*geolens.Content, error) {
			return linkPage(page, siteLinks[page.Ref]...), nil
		}

		result, err := a.AuditSite(context.Background(), "https://example.com", nil, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Analyzed)
	})

	t.Run("stays on the audited host and under the seed path", func(t *testing.T) {
		t.Parallel()

		siteLinks := map[string][]string{
			"https://example.com/blog/": {
				"https://example.com/blog/post-1",
				"https://example.com/blogging-tips", // shares the prefix, different segment
				"https://example.com/about",
				"https://other.com/blog/post-2",
			},
		}

		var fetched []string
		a, m := newTestAuditor()
		m.Fetcher.FetchFn = func(_ context.Context, ref string) (string, error) {
			fetched = append(fetched, ref)
			return "<html><body>ok</body></html>", nil
		}
		m.Parser.ParseFn = func(_ context.Context, page *geolens.Page) (*geolens.Content, error) {
			return linkPage(page, siteLinks[page.Ref]...), nil
		}

		result, err := a.AuditSite(context.Background(), "https://example.com/blog/", nil, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Analyzed)
		assert.Equal(t, []string{
			"https://example.com/blog/",
			"https://example.com/blog/post-1",
		}, fetched)
	})

	t.Run("applies the URL filter to discovered links", func(t *testing.T) {
		t.Parallel()

		siteLinks := map[string][]string{
			"https://example.com/": {
				"https://example.com/keep",
				"https://example.com/post-draft",
			},
		}

		a, m := newTestAuditor()
		m.Parser.ParseFn = func(_ context.Context, page *geolens.Page) (*geolens.Content, error) {
			return linkPage(page, siteLinks[page.Ref]...), nil
		}

		filter := &geolens.URLFilter{
			Exclude: []*regexp.Regexp{regexp.MustCompile(`-draft$`)},
		}

		result, err := a.AuditSite(context.Background(), "https://example.com", filter, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Analyzed)
		for _, report := range result.Reports {
			assert.NotContains(t, report.ContentRef, "-draft")
		}
	})

	t.Run("stops at the page cap", func(t *testing.T) {
		t.Parallel()

		var links []string
		for i := 0; i < 100; i++ {
			links = append(links, fmt.Sprintf("https://example.com/page-%d", i))
		}

		var fetches atomic.Int32
		a, m := newTestAuditor()
		a.MaxPages = 5
		a.Concurrency = 3
		m.Fetcher.FetchFn = func(_ context.Context, ref string) (string, error) {
			fetches.Add(1)
			return "<html><body>" + ref + "</body></html>", nil
		}
		m.Parser.ParseFn = func(_ context.Context, page *geolens.Page) (*geolens.Content, error) {
			if page.Ref == "https://example.com/" {
				return linkPage(page, links...), nil
			}
			return linkPage(page), nil
		}

		result, err := a.AuditSite(context.Background(), "https://example.com", nil, nil)

		require.NoError(t, err)
		assert.Equal(t, 5, result.Analyzed)
		assert.Equal(t, int32(5), fetches.Load())
	})

	t.Run("rate limits every walked page", func(t *testing.T) {
		t.Parallel()

		siteLinks := map[string][]string{
			"https://example.com/": {"https://example.com/a", "https://example.com/b"},
		}

		var waits atomic.Int32
		a, m := newTestAuditor()
		a.RateLimiter = &mock.DomainLimiter{
			WaitFn: func(_ context.Context, domain string) error {
				assert.Equal(t, "example.com", domain)
				waits.Add(1)
				return nil
			},
		}
		m.Parser.ParseFn = func(_ context.Context, page *geolens.Page) (*geolens.Content, error) {
			return linkPage(page, siteLinks[page.Ref]...), nil
		}

		result, err := a.AuditSite(context.Background(), "https://example.com", nil, nil)

		require.NoError(t, err)
		assert.Equal(t, 3, result.Analyzed)
		assert.Equal(t, int32(3), waits.Load())
	})

	t.Run("skipped pages still contribute their links to the walk", func(t *testing.T) {
		t.Parallel()

		const unchangedHTML = "<html><body>Unchanged page linking onward.</body></html>"
		stored := &geolens.Report{
			ContentRef:  "https://example.com/a",
			ContentHash: crawl.ComputeHash(unchangedHTML),
			SEO:         geolens.AxisScore{Axis: geolens.AxisSEO, Score: 90},
			GEO:         geolens.AxisScore{Axis: geolens.AxisGEO, Score: 85},
			GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		}

		siteLinks := map[string][]string{
			"https://example.com/":  {"https://example.com/a"},
			"https://example.com/a": {"https://example.com/b"},
		}

		a, m := newTestAuditor()
		a.SkipUnchanged = true
		a.Reports = &mock.ReportService{
			FindReportsFn: func(_ context.Context, filter geolens.ReportFilter) ([]*geolens.ReportRecord, error) {
				if filter.URL != nil && *filter.URL == "https://example.com/a" {
					return []*geolens.ReportRecord{{
						ID:          "rec-1",
						URL:         "https://example.com/a",
						ContentHash: stored.ContentHash,
						Report:      stored,
					}}, nil
				}
				return nil, nil
			},
			CreateReportFn: func(_ context.Context, _ *geolens.ReportRecord) error {
				return nil
			},
		}
		m.Fetcher.FetchFn = func(_ context.Context, ref string) (string, error) {
			if ref == "https://example.com/a" {
				return unchangedHTML, nil
			}
			return "<html><body>" + ref + "</body></html>", nil
		}
		m.Parser.ParseFn = func(_ context.Context, page *geolens.Page) (*geolens.Content, error) {
			return linkPage(page, siteLinks[page.Ref]...), nil
		}

		result, err := a.AuditSite(context.Background(), "https://example.com", nil, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Analyzed, "seed and the page behind the skipped one")
		assert.Equal(t, 1, result.Skipped)
		require.Len(t, result.Reports, 3)
	})
}
