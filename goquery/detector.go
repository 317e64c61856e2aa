package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/geolens"
)

// Page types the detector can report. "generic" is the fallback for
// pages with no recognizable shape; rules with type-specific
// expectations treat it as having none.
const (
	TypeArticle = "article"
	TypeProduct = "product"
	TypeFAQ     = "faq"
	TypeHowTo   = "howto"
	TypeDocs    = "docs"
	TypeRecipe  = "recipe"
	TypeGeneric = "generic"
)

// schemaPrecedence maps declared schema.org types to page types,
// checked in order with specific types before the catch-all Article so
// multi-schema pages classify deterministically.
var schemaPrecedence = []struct {
	declared string
	pageType string
}{
	{"FAQPage", TypeFAQ},
	{"QAPage", TypeFAQ},
	{"Recipe", TypeRecipe},
	{"HowTo", TypeHowTo},
	{"Product", TypeProduct},
	{"APIReference", TypeDocs},
	{"TechArticle", TypeDocs},
	{"NewsArticle", TypeArticle},
	{"BlogPosting", TypeArticle},
	{"Article", TypeArticle},
}

// urlHints maps path segments to page types, checked in order.
var urlHints = []struct {
	segment  string
	pageType string
}{
	{"/blog/", TypeArticle},
	{"/news/", TypeArticle},
	{"/article", TypeArticle},
	{"/docs/", TypeDocs},
	{"/documentation/", TypeDocs},
	{"/reference/", TypeDocs},
	{"/product", TypeProduct},
	{"/shop/", TypeProduct},
	{"/faq", TypeFAQ},
	{"/how-to", TypeHowTo},
	{"/howto", TypeHowTo},
	{"/recipe", TypeRecipe},
}

// Detector classifies what kind of page the content is, which decides
// what structured data the page is expected to carry. Signals are
// checked from most to least reliable: declared schema types, then the
// og:type meta tag, then URL path conventions.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes the parsed document and returns the page type.
// Returns TypeGeneric when no signal matches.
func (d *Detector) Detect(doc *goquery.Document, content *geolens.Content) string {
	if t := d.detectFromSchema(content); t != "" {
		return t
	}
	if t := d.detectFromOGType(doc); t != "" {
		return t
	}
	if t := d.detectFromURL(content.Ref); t != "" {
		return t
	}
	return TypeGeneric
}

func (d *Detector) detectFromSchema(content *geolens.Content) string {
	for _, entry := range schemaPrecedence {
		if _, ok := content.StructuredData[entry.declared]; ok {
			return entry.pageType
		}
	}
	return ""
}

func (d *Detector) detectFromOGType(doc *goquery.Document) string {
	ogType := strings.ToLower(strings.TrimSpace(
		doc.Find("meta[property='og:type']").First().AttrOr("content", "")))
	switch {
	case ogType == "article" || strings.HasPrefix(ogType, "article:"):
		return TypeArticle
	case ogType == "product" || strings.HasPrefix(ogType, "product"):
		return TypeProduct
	}
	return ""
}

func (d *Detector) detectFromURL(ref string) string {
	lower := strings.ToLower(ref)
	for _, hint := range urlHints {
		if strings.Contains(lower, hint.segment) {
			return hint.pageType
		}
	}
	return ""
}
