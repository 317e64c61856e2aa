package geolens

// Content is the normalized representation of a single piece of web content,
// produced by a Parser before analysis begins. It is immutable once
// constructed and owned exclusively by the pipeline invocation that created
// it; concurrent analyses never share a Content.
type Content struct {
	// Ref identifies the analyzed content (URL or local file path).
	Ref string `json:"ref"`

	// RawHTML is the document as delivered by the Fetcher. It is owned
	// by the fetch step and never mutated downstream.
	RawHTML string `json:"-"`

	// Title is the document title.
	Title string `json:"title"`

	// MetaDescription is the meta description content.
	MetaDescription string `json:"metaDescription"`

	// Headings are the document headings in document order.
	Headings []Heading `json:"headings"`

	// MainText is cleaned prose from the main content area, with
	// boilerplate removed.
	MainText string `json:"mainText"`

	// MainHTML is the extractor's clean content HTML. It feeds the
	// Markdown conversion used by the simulator; rules read MainText.
	MainHTML string `json:"-"`

	// Links are the document links.
	Links []Link `json:"links"`

	// StructuredData maps schema.org type names to their JSON-LD payloads.
	// Empty when the document declares no structured data.
	StructuredData map[string][]map[string]any `json:"structuredData,omitempty"`

	// Entities are named entities found in MainText. Nil means entity
	// extraction did not run; an empty non-nil slice means it ran and
	// found nothing.
	Entities []Entity `json:"entities,omitempty"`

	// Images are the content images with their alt text.
	Images []Image `json:"images,omitempty"`

	// Canonical is the canonical URL declared by the document.
	Canonical string `json:"canonical,omitempty"`

	// Lang is the document language: the declared lang attribute when
	// present, otherwise the detected language of MainText.
	Lang string `json:"lang,omitempty"`

	// PageType is the detected content type (article, product, faq,
	// howto, docs, generic). Empty when detection did not run.
	PageType string `json:"pageType,omitempty"`

	// Rendering holds the JavaScript rendering probe measurements.
	// Nil when the probe did not run.
	Rendering *Rendering `json:"rendering,omitempty"`

	// Robots holds the site's AI crawler policy from robots.txt.
	// Nil when robots.txt was not fetched.
	Robots *Robots `json:"robots,omitempty"`
}

// Validate returns an error if the content cannot be analyzed. A content
// with no title, no main text, and no headings carries nothing for any
// rule to judge.
func (c *Content) Validate() error {
	if c.Title == "" && c.MainText == "" && len(c.Headings) == 0 {
		return Errorf(EINVALID, "content has no title, main text, or headings")
	}
	return nil
}

// Heading is one document heading.
type Heading struct {
	// Level is the heading level, 1 through 6.
	Level int `json:"level"`

	// Text is the heading text.
	Text string `json:"text"`
}

// Link is one document link.
type Link struct {
	// Href is the link target, resolved against the page URL.
	Href string `json:"href"`

	// AnchorText is the visible link text.
	AnchorText string `json:"anchorText"`

	// Internal marks links that stay on the page's host.
	Internal bool `json:"internal"`
}

// Image is one content image.
type Image struct {
	// Src is the image source URL.
	Src string `json:"src"`

	// Alt is the image's alternative text. Empty means missing.
	Alt string `json:"alt"`
}

// Rendering holds the JavaScript dependence probe measurements: the word
// count of content extracted from the static fetch versus the fetch after
// JavaScript execution.
type Rendering struct {
	// StaticWordCount is the extracted word count without JavaScript.
	StaticWordCount int `json:"staticWordCount"`

	// RenderedWordCount is the extracted word count after rendering.
	RenderedWordCount int `json:"renderedWordCount"`
}
