// Package crawl runs site-wide audits. It discovers a site's pages,
// fetches and analyzes each one with bounded concurrency, and records
// the run as an audit with per-page reports.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fwojciec/geolens"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is how many pages are processed in parallel when
// Auditor.Concurrency is unset.
const DefaultConcurrency = 10

// Auditor orchestrates the audit of one site.
//
// Sitemaps, Fetcher, Parser, and Analyzer are required. The remaining
// services are optional: with Robots set, the site's robots.txt policy
// is checked once and attached to every page; with Reports set, each
// page's report is persisted; with Audits set, the run is recorded as
// an Audit; with RateLimiter set, fetches are throttled per host.
type Auditor struct {
	Sitemaps geolens.SitemapService
	Fetcher  geolens.Fetcher
	Parser   geolens.Parser
	Analyzer geolens.Analyzer

	Robots       geolens.RobotsService
	Reports      geolens.ReportService
	Audits       geolens.AuditService
	RateLimiter  geolens.DomainLimiter
	TokenCounter geolens.TokenCounter

	// Concurrency bounds how many pages are processed in parallel.
	// Defaults to DefaultConcurrency.
	Concurrency int

	// MaxPages caps how many pages one run visits. Zero means no cap
	// for sitemap audits and 1000 for link-walk audits.
	MaxPages int

	// SkipUnchanged reuses the stored report for pages whose fetched
	// HTML hashes to the same value as their latest stored report.
	// Requires Reports.
	SkipUnchanged bool

	// RetryDelays overrides the fetch retry backoff.
	RetryDelays []time.Duration
}

// Result summarizes a completed audit run.
type Result struct {
	// AuditID is the stored audit record's ID. Empty when the run was
	// not recorded.
	AuditID string

	Analyzed int
	Skipped  int
	Failed   int

	// AvgSEO and AvgGEO are the per-axis score means over every page
	// that produced a report, skipped pages included.
	AvgSEO int
	AvgGEO int

	// Bytes is the total HTML fetched and Tokens the estimated token
	// count of the analyzed main text.
	Bytes  int
	Tokens int

	// Reports holds the per-page reports. Sitemap audits preserve
	// discovery order; link-walk audits order by completion.
	Reports []*geolens.Report
}

// ProgressEvent reports progress during an audit run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	SEO       int
	GEO       int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting audit progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single page.
type pageResult struct {
	position int
	url      string
	report   *geolens.Report
	links    []string
	bytes    int
	tokens   int
	skipped  bool
	err      error
}

// AuditSite audits every discoverable page of a site. Pages come from
// the sitemap; sites without one are walked by following internal
// links. The progress callback, if provided, receives events as the
// audit proceeds.
func (a *Auditor) AuditSite(ctx context.Context, siteURL string, filter *geolens.URLFilter, progress ProgressFunc) (*Result, error) {
	site, err := url.Parse(siteURL)
	if err != nil || site.Host == "" {
		return nil, geolens.Errorf(geolens.EINVALID, "invalid site URL %q", siteURL)
	}
	if site.Scheme != "http" && site.Scheme != "https" {
		return nil, geolens.Errorf(geolens.EINVALID, "site URL must be http or https")
	}

	var auditID string
	if a.Audits != nil {
		audit := &geolens.Audit{SiteURL: siteURL}
		if err := a.Audits.CreateAudit(ctx, audit); err != nil {
			return nil, fmt.Errorf("create audit: %w", err)
		}
		auditID = audit.ID
	}

	// One robots.txt check covers every page of the site. A failed
	// check degrades the ai-crawler-access rule, nothing else.
	var robots *geolens.Robots
	if a.Robots != nil {
		if r, err := a.Robots.Check(ctx, siteURL); err == nil {
			robots = r
		}
	}

	urls, err := a.Sitemaps.DiscoverURLs(ctx, siteURL, filter)
	if err != nil {
		return nil, fmt.Errorf("sitemap discovery: %w", err)
	}

	if len(urls) == 0 {
		return a.walkSite(ctx, site, filter, robots, auditID, progress)
	}

	if a.MaxPages > 0 && len(urls) > a.MaxPages {
		urls = urls[:a.MaxPages]
	}

	concurrency := a.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan pageResult, len(urls))

	var completed atomic.Int64
	total := len(urls)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, pageURL := range urls {
			g.Go(func() error {
				resultCh <- a.processURL(gctx, i, pageURL, robots)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results in discovery order.
	results := make([]pageResult, len(urls))
	for res := range resultCh {
		completed.Add(1)
		results[res.position] = res
		emitProgress(progress, res, int(completed.Load()), total)
	}

	return a.finish(ctx, results, auditID, total, progress)
}

// processURL fetches and analyzes a single page.
func (a *Auditor) processURL(ctx context.Context, position int, pageURL string, robots *geolens.Robots) pageResult {
	result := pageResult{
		position: position,
		url:      pageURL,
	}

	if err := a.waitForHost(ctx, pageURL); err != nil {
		result.err = err
		return result
	}

	html, err := a.fetchWithRetry(ctx, pageURL)
	if err != nil {
		result.err = err
		return result
	}
	result.bytes = len(html)

	// An unchanged page keeps its stored report instead of being
	// re-analyzed.
	if a.SkipUnchanged && a.Reports != nil {
		if rec := a.latestReport(ctx, pageURL); rec != nil && rec.Report != nil && rec.ContentHash == ComputeHash(html) {
			result.report = rec.Report
			result.skipped = true
			return result
		}
	}

	content, err := a.Parser.Parse(ctx, &geolens.Page{
		Ref:       pageURL,
		HTML:      html,
		Robots:    robots,
		FetchedAt: time.Now().UTC(),
	})
	if err != nil {
		result.err = err
		return result
	}

	report, err := a.Analyzer.Analyze(ctx, content)
	if err != nil {
		result.err = err
		return result
	}
	result.report = report
	result.tokens = a.countTokens(ctx, content.MainText)

	return result
}

// finish persists the per-page reports, completes the audit record, and
// assembles the run summary.
func (a *Auditor) finish(ctx context.Context, results []pageResult, auditID string, total int, progress ProgressFunc) (*Result, error) {
	result := &Result{AuditID: auditID}

	var seoSum, geoSum, pages int
	for _, res := range results {
		if res.url == "" {
			// Slot never filled: the run stopped before this URL.
			continue
		}
		if res.err != nil {
			result.Failed++
			continue
		}

		if !res.skipped && a.Reports != nil {
			rec := &geolens.ReportRecord{
				AuditID: auditID,
				URL:     res.url,
				Report:  res.report,
			}
			if err := a.Reports.CreateReport(ctx, rec); err != nil {
				result.Failed++
				continue
			}
		}

		if res.skipped {
			result.Skipped++
		} else {
			result.Analyzed++
		}
		pages++
		seoSum += res.report.SEO.Score
		geoSum += res.report.GEO.Score
		result.Bytes += res.bytes
		result.Tokens += res.tokens
		result.Reports = append(result.Reports, res.report)
	}

	if pages > 0 {
		result.AvgSEO = (seoSum + pages/2) / pages
		result.AvgGEO = (geoSum + pages/2) / pages
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	if a.Audits != nil && auditID != "" {
		now := time.Now().UTC()
		upd := geolens.AuditUpdate{
			PageCount:   &pages,
			AvgSEOScore: &result.AvgSEO,
			AvgGEOScore: &result.AvgGEO,
			CompletedAt: &now,
		}
		if _, err := a.Audits.UpdateAudit(ctx, auditID, upd); err != nil {
			return nil, fmt.Errorf("complete audit: %w", err)
		}
	}

	return result, nil
}

// emitProgress reports one page's outcome to the progress callback.
func emitProgress(progress ProgressFunc, res pageResult, completed, total int) {
	if progress == nil {
		return
	}

	event := ProgressEvent{
		Completed: completed,
		Total:     total,
		URL:       res.url,
	}
	switch {
	case res.err != nil:
		event.Type = ProgressFailed
		event.Error = res.err
	case res.skipped:
		event.Type = ProgressSkipped
		event.SEO = res.report.SEO.Score
		event.GEO = res.report.GEO.Score
	default:
		event.Type = ProgressCompleted
		event.SEO = res.report.SEO.Score
		event.GEO = res.report.GEO.Score
	}
	progress(event)
}

// waitForHost applies per-domain rate limiting for the URL's host.
func (a *Auditor) waitForHost(ctx context.Context, pageURL string) error {
	if a.RateLimiter == nil {
		return nil
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return err
	}
	return a.RateLimiter.Wait(ctx, u.Host)
}

// fetchWithRetry fetches a page with the configured retry backoff.
func (a *Auditor) fetchWithRetry(ctx context.Context, pageURL string) (string, error) {
	delays := a.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	fetchFn := func(ctx context.Context, url string) (string, error) {
		return a.Fetcher.Fetch(ctx, url)
	}
	return FetchWithRetryDelays(ctx, pageURL, fetchFn, nil, delays)
}

// latestReport returns the most recent stored report for the URL, or nil.
func (a *Auditor) latestReport(ctx context.Context, pageURL string) *geolens.ReportRecord {
	recs, err := a.Reports.FindReports(ctx, geolens.ReportFilter{URL: &pageURL, Limit: 1})
	if err != nil || len(recs) == 0 {
		return nil
	}
	return recs[0]
}

// countTokens estimates the token count of analyzed text.
func (a *Auditor) countTokens(ctx context.Context, text string) int {
	if a.TokenCounter == nil {
		return 0
	}
	tokens, err := a.TokenCounter.CountTokens(ctx, text)
	if err != nil {
		return 0
	}
	return tokens
}
