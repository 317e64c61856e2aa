package geolens

import (
	"context"
	"regexp"
)

// SitemapService discovers URLs from website sitemaps. The site auditor
// uses it to enumerate the pages of a site before analyzing them.
type SitemapService interface {
	// DiscoverURLs returns the page URLs a site advertises. Discovery
	// reads the Sitemap directives in robots.txt first and falls back
	// to /sitemap.xml; sitemap index files are followed recursively.
	//
	// A nil filter returns every URL found.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}

// URLFilter narrows an audit to URLs matching regular expressions.
type URLFilter struct {
	// Include, when non-empty, keeps only URLs matching at least one
	// pattern.
	Include []*regexp.Regexp

	// Exclude drops URLs matching any pattern. It is applied after
	// Include.
	Exclude []*regexp.Regexp
}

// Match reports whether the URL passes the filter. A nil filter passes
// everything.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}
	if len(f.Include) > 0 && !matchAny(f.Include, url) {
		return false
	}
	return !matchAny(f.Exclude, url)
}

func matchAny(patterns []*regexp.Regexp, url string) bool {
	for _, re := range patterns {
		if re.MatchString(url) {
			return true
		}
	}
	return false
}
