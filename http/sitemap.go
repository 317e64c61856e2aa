package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/geolens"
)

var _ geolens.SitemapService = (*SitemapService)(nil)

// SitemapService discovers the URLs a site audit should cover, from
// the site's sitemaps.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs finds all URLs from a site's sitemap. The result is never
// nil; a site without sitemaps yields an empty slice.
//
// When baseURL has a non-root path (e.g., https://example.com/blog/),
// only URLs with paths under that prefix are returned, so an audit can
// be scoped to a site section.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *geolens.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	// Path prefix scopes the audit; "/" means the whole site.
	pathPrefix := base.Path
	if pathPrefix == "/" {
		pathPrefix = ""
	}

	// Sitemaps live at the domain root regardless of the audit scope.
	root := *base
	root.Path = ""

	sitemaps, err := s.findSitemapURLs(ctx, &root)
	if err != nil {
		return nil, err
	}

	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)
	found := []string{}

	for _, sm := range sitemaps {
		urls, err := s.walkSitemap(ctx, sm, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, u := range urls {
			if seenURLs[u] {
				continue
			}
			seenURLs[u] = true
			if pathPrefix != "" && !underPath(u, pathPrefix) {
				continue
			}
			if filter != nil && !filter.Match(u) {
				continue
			}
			found = append(found, u)
		}
	}

	return found, nil
}

// underPath reports whether a URL's path sits under prefix, respecting
// path boundaries. /blog covers /blog/ and /blog/post but not /blogging.
func underPath(rawURL, prefix string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(parsed.Path, prefix)
}

// findSitemapURLs reads Sitemap directives from robots.txt, falling back
// to probing /sitemap.xml when robots.txt names none.
func (s *SitemapService) findSitemapURLs(ctx context.Context, base *url.URL) ([]string, error) {
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"})
	if sitemaps, err := s.sitemapsFromRobots(ctx, robotsURL.String()); err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}

	fallback := base.ResolveReference(&url.URL{Path: "/sitemap.xml"})
	ok, err := s.headOK(ctx, fallback.String())
	if err != nil {
		// A failed probe means no sitemap, unless the context itself ended.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if ok {
		return []string{fallback.String()}, nil
	}
	return nil, nil
}

// sitemapsFromRobots extracts Sitemap: directives from robots.txt.
func (s *SitemapService) sitemapsFromRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	const directive = "sitemap:"

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) < len(directive) || !strings.EqualFold(line[:len(directive)], directive) {
			continue
		}
		if u := strings.TrimSpace(line[len(directive):]); u != "" {
			sitemaps = append(sitemaps, u)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}

	return sitemaps, nil
}

// walkSitemap fetches one sitemap and returns its page URLs, recursing
// through <sitemapindex> documents. seen guards against index cycles.
func (s *SitemapService) walkSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML")
	}

	if root.Tag != "sitemapindex" {
		return collectLocs(root, "url"), nil
	}

	var urls []string
	for _, child := range collectLocs(root, "sitemap") {
		nested, err := s.walkSitemap(ctx, child, seen)
		if err != nil {
			return nil, err
		}
		urls = append(urls, nested...)
	}
	return urls, nil
}

// collectLocs returns the trimmed <loc> values of root's tag children.
func collectLocs(root *etree.Element, tag string) []string {
	var locs []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if text := strings.TrimSpace(loc.Text()); text != "" {
			locs = append(locs, text)
		}
	}
	return locs
}

// get fetches target and returns the response body.
func (s *SitemapService) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, geolens.Errorf(geolens.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, target)
	}
	return resp.Body, nil
}

// headOK reports whether target answers a HEAD request with 200.
func (s *SitemapService) headOK(ctx context.Context, target string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return false, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}
