// Package seo implements the mechanical SEO rule battery: presence and
// length bounds on metadata, heading structure, link hygiene, structured
// data, and media attributes. Every rule is pure and judges only the
// Content it is given.
package seo

import "github.com/fwojciec/geolens"

// Rules returns the SEO battery in its declared order. The order is part
// of the battery's contract: results are reported exactly in this
// sequence, and rule ids are stable across versions for report diffing.
func Rules() []geolens.Rule {
	return []geolens.Rule{
		titlePresent(),
		titleLength(),
		metaDescriptionPresent(),
		metaDescriptionLength(),
		singleH1(),
		headingOrder(),
		contentLength(),
		genericAnchorText(),
		linkRatio(),
		structuredDataPresent(),
		structuredDataType(),
		imageAltText(),
		canonicalPresent(),
		htmlLang(),
	}
}
