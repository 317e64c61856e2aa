package crawl

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/geolens"
)

// Frontier sizing for link-walk audits.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
	// maxWalkPages limits link-walk audits to prevent runaway crawls.
	maxWalkPages = 1000
)

// walkItem is one unit of work dispatched to a walk worker.
type walkItem struct {
	position int
	url      string
}

// walkSite audits a site by following internal links, used when sitemap
// discovery returns nothing. Pages are analyzed as they are discovered;
// every internal link on the audited site within the seed URL's path
// scope joins the frontier until the page cap is reached.
func (a *Auditor) walkSite(ctx context.Context, site *url.URL, filter *geolens.URLFilter, robots *geolens.Robots, auditID string, progress ProgressFunc) (*Result, error) {
	pathPrefix := site.Path

	maxPages := a.MaxPages
	if maxPages <= 0 || maxPages > maxWalkPages {
		maxPages = maxWalkPages
	}

	// Seed with an explicit root path so the homepage dedupes against
	// links resolved to "/".
	seed := *site
	if seed.Path == "" {
		seed.Path = "/"
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(seed.String())

	concurrency := a.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	workCh := make(chan walkItem, concurrency)
	resultCh := make(chan pageResult)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range workCh {
				result := a.processWalkURL(ctx, item.position, item.url, robots)
				select {
				case resultCh <- result:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Close the result channel once all workers are done.
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]pageResult, 0, maxPages)
	dispatched := 0
	pending := 0
	completedCount := 0

	handle := func(res pageResult) {
		for _, link := range res.links {
			if inScope(link, site, pathPrefix, filter) {
				frontier.Push(link)
			}
		}
		completedCount++
		emitProgress(progress, res, completedCount, 0)
		results = append(results, res)
	}

	var next *walkItem
	if u, ok := frontier.Pop(); ok {
		next = &walkItem{position: dispatched, url: u}
	}

coordinatorLoop:
	for {
		if next == nil && pending == 0 {
			break
		}
		if ctx.Err() != nil {
			break
		}

		if next != nil && dispatched < maxPages {
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case workCh <- *next:
				dispatched++
				pending++
				next = nil
			case res := <-resultCh:
				pending--
				handle(res)
			}
		} else {
			// Nothing left to dispatch; just receive results.
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case res, ok := <-resultCh:
				if !ok {
					break coordinatorLoop
				}
				pending--
				handle(res)
			}
		}

		if next == nil && dispatched < maxPages {
			if u, ok := frontier.Pop(); ok {
				next = &walkItem{position: dispatched, url: u}
			}
		}
	}

	// Signal workers to stop and drain in-flight results.
	close(workCh)

	drainTimeout := time.After(5 * time.Second)
drainLoop:
	for {
		select {
		case res, ok := <-resultCh:
			if !ok {
				break drainLoop
			}
			handle(res)
		case <-drainTimeout:
			break drainLoop
		}
	}

	return a.finish(ctx, results, auditID, len(results), progress)
}

// processWalkURL fetches and analyzes one page during a link walk. It
// differs from processURL in reporting the page's internal links so the
// coordinator can grow the frontier, including for pages whose analysis
// was skipped as unchanged.
func (a *Auditor) processWalkURL(ctx context.Context, position int, pageURL string, robots *geolens.Robots) pageResult {
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

	page := &geolens.Page{
		Ref:       pageURL,
		HTML:      html,
		Robots:    robots,
		FetchedAt: time.Now().UTC(),
	}

	if a.SkipUnchanged && a.Reports != nil {
		if rec := a.latestReport(ctx, pageURL); rec != nil && rec.Report != nil && rec.ContentHash == ComputeHash(html) {
			result.report = rec.Report
			result.skipped = true
			// Still parse for links so the walk continues through
			// unchanged pages.
			if content, err := a.Parser.Parse(ctx, page); err == nil {
				result.links = internalLinks(content)
			}
			return result
		}
	}

	content, err := a.Parser.Parse(ctx, page)
	if err != nil {
		result.err = err
		return result
	}
	result.links = internalLinks(content)

	report, err := a.Analyzer.Analyze(ctx, content)
	if err != nil {
		result.err = err
		return result
	}
	result.report = report
	result.tokens = a.countTokens(ctx, content.MainText)

	return result
}

// inScope reports whether a discovered link stays on the audited host,
// under the seed URL's path, and passes the URL filter.
func inScope(link string, site *url.URL, pathPrefix string, filter *geolens.URLFilter) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	if u.Host != site.Host {
		return false
	}
	if !underPath(u.Path, pathPrefix) {
		return false
	}
	return filter.Match(link)
}

// underPath reports whether path sits at or below prefix, respecting
// segment boundaries: /blog covers /blog/post but not /blogging.
func underPath(path, prefix string) bool {
	if prefix == "" || prefix == "/" {
		return true
	}
	prefix = strings.TrimSuffix(prefix, "/")
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// internalLinks returns the hrefs of the content's same-host links.
func internalLinks(content *geolens.Content) []string {
	var links []string
	for _, l := range content.Links {
		if l.Internal {
			links = append(links, l.Href)
		}
	}
	return links
}
