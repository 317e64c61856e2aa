// Package goquery implements HTML parsing into the content model. One
// parse pass extracts everything the rule batteries read: metadata,
// heading outline, links, images, structured data, and the main text
// via a pluggable extractor chain. Both batteries run over the result
// without ever touching HTML again.
package goquery

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/RadhiFadlillah/whatlanggo"
	"github.com/fwojciec/geolens"
)

// Ensure Parser implements geolens.Parser at compile time.
var _ geolens.Parser = (*Parser)(nil)

// Parser builds a Content from a fetched page.
type Parser struct {
	extractor geolens.Extractor
	fallback  geolens.Extractor
	entities  geolens.EntityExtractor
	detector  *Detector
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithEntityExtractor enables named entity extraction over the main
// text. Without it Content.Entities stays nil and the entity rule
// reports insufficient data.
func WithEntityExtractor(e geolens.EntityExtractor) ParserOption {
	return func(p *Parser) {
		p.entities = e
	}
}

// WithFallbackExtractor adds a second extractor consulted when the
// primary fails or finds no text.
func WithFallbackExtractor(e geolens.Extractor) ParserOption {
	return func(p *Parser) {
		p.fallback = e
	}
}

// NewParser creates a Parser. The extractor isolates the main content
// region; pass nil to fall back to a block-level text walk.
func NewParser(extractor geolens.Extractor, opts ...ParserOption) *Parser {
	p := &Parser{
		extractor: extractor,
		detector:  NewDetector(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse extracts the content model from the page.
func (p *Parser) Parse(ctx context.Context, page *geolens.Page) (*geolens.Content, error) {
	if page == nil || strings.TrimSpace(page.HTML) == "" {
		return nil, geolens.Errorf(geolens.EINVALID, "page HTML required")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, geolens.Errorf(geolens.EINVALID, "failed to parse HTML: %v", err)
	}

	content := &geolens.Content{
		Ref:     page.Ref,
		RawHTML: page.HTML,
		Robots:  page.Robots,
	}

	content.Title = strings.TrimSpace(doc.Find("title").First().Text())
	content.MetaDescription = metaDescription(doc)
	content.Canonical = strings.TrimSpace(doc.Find("link[rel='canonical']").First().AttrOr("href", ""))
	content.Lang = strings.TrimSpace(doc.Find("html").First().AttrOr("lang", ""))
	content.Headings = headings(doc)
	content.Links = links(doc, page.Ref)
	content.Images = images(doc)
	content.StructuredData = structuredData(doc)

	p.extractMain(content, page.HTML, doc)

	if content.Lang == "" && content.MainText != "" {
		if info := whatlanggo.Detect(content.MainText); info.IsReliable() {
			content.Lang = info.Lang.Iso6391()
		}
	}

	content.PageType = p.detector.Detect(doc, content)

	if page.RenderedHTML != "" {
		content.Rendering = &geolens.Rendering{
			StaticWordCount:   geolens.CountWords(content.MainText),
			RenderedWordCount: geolens.CountWords(p.extractText(page.RenderedHTML)),
		}
	}

	if p.entities != nil && content.MainText != "" {
		if ents, err := p.entities.Entities(ctx, content.MainText); err == nil {
			if ents == nil {
				ents = []geolens.Entity{}
			}
			content.Entities = ents
		}
	}

	return content, nil
}

// extractMain fills MainText and MainHTML, trying the extractor chain
// in order and falling back to a block-level walk of the parsed
// document. Extractor metadata backfills anything the document head did
// not declare.
func (p *Parser) extractMain(content *geolens.Content, html string, doc *goquery.Document) {
	for _, e := range []geolens.Extractor{p.extractor, p.fallback} {
		if e == nil {
			continue
		}
		res, err := e.Extract(html)
		if err != nil || res == nil || strings.TrimSpace(res.ContentText) == "" {
			continue
		}
		content.MainText = res.ContentText
		content.MainHTML = res.ContentHTML
		if content.Title == "" {
			content.Title = res.Title
		}
		if content.MetaDescription == "" {
			content.MetaDescription = res.Description
		}
		if content.Lang == "" {
			content.Lang = res.Lang
		}
		return
	}
	content.MainText = blockText(doc)
}

// extractText pulls plain text out of an HTML document, used to size
// the rendered variant of a page against the static one.
func (p *Parser) extractText(html string) string {
	for _, e := range []geolens.Extractor{p.extractor, p.fallback} {
		if e == nil {
			continue
		}
		if res, err := e.Extract(html); err == nil && res != nil && strings.TrimSpace(res.ContentText) != "" {
			return res.ContentText
		}
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return blockText(doc)
}

func metaDescription(doc *goquery.Document) string {
	if desc := strings.TrimSpace(doc.Find("meta[name='description']").First().AttrOr("content", "")); desc != "" {
		return desc
	}
	return strings.TrimSpace(doc.Find("meta[property='og:description']").First().AttrOr("content", ""))
}

func headings(doc *goquery.Document) []geolens.Heading {
	var out []geolens.Heading
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		name := goquery.NodeName(s)
		if len(name) != 2 {
			return
		}
		out = append(out, geolens.Heading{
			Level: int(name[1] - '0'),
			Text:  strings.TrimSpace(s.Text()),
		})
	})
	return out
}

func links(doc *goquery.Document, ref string) []geolens.Link {
	base, err := url.Parse(ref)
	if err != nil {
		base = nil
	}

	var out []geolens.Link
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") || isNonHTTPLink(href) {
			return
		}

		link := geolens.Link{Href: href, AnchorText: strings.TrimSpace(s.Text())}
		if base != nil {
			if resolved, ok := resolveURL(base, href); ok {
				link.Href = resolved
				link.Internal = sameHost(base, resolved)
			}
		} else {
			link.Internal = !strings.Contains(href, "://")
		}
		out = append(out, link)
	})
	return out
}

func images(doc *goquery.Document) []geolens.Image {
	var out []geolens.Image
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src := strings.TrimSpace(s.AttrOr("src", ""))
		if src == "" {
			src = strings.TrimSpace(s.AttrOr("data-src", ""))
		}
		if src == "" {
			return
		}
		out = append(out, geolens.Image{
			Src: src,
			Alt: strings.TrimSpace(s.AttrOr("alt", "")),
		})
	})
	return out
}

// blockText walks block-level elements and joins them with paragraph
// breaks, preserving the paragraph structure the heuristics segment on.
// Containers whose paragraphs are collected separately are skipped to
// avoid double counting.
func blockText(doc *goquery.Document) string {
	var parts []string
	doc.Find("p, pre, blockquote, li").Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) != "p" && s.Find("p").Length() > 0 {
			return
		}
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, "\n\n")
}

// resolveURL resolves href against base and strips the fragment so
// anchor variants of one URL compare equal.
func resolveURL(base *url.URL, href string) (string, bool) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String(), true
}

func sameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

func isNonHTTPLink(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
