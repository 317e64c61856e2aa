// Package geo implements the GEO heuristic battery: checks that estimate
// how reliably AI systems can parse, summarize, and cite the content
// without misinterpretation. Unlike the mechanical SEO battery, these
// rules judge comprehension risk; each one degrades to an explicit
// "insufficient data" failure when the content is missing data the
// heuristic needs, never to a silent pass.
package geo

import "github.com/fwojciec/geolens"

// Rules returns the GEO battery in its declared order. The order is part
// of the battery's contract: results are reported exactly in this
// sequence, and rule ids are stable across versions for report diffing.
func Rules() []geolens.Rule {
	return []geolens.Rule{
		selfContainedness(),
		claimEvidenceProximity(),
		entityAmbiguity(),
		summarizability(),
		answerStructure(),
		quotableFacts(),
		jsDependence(),
		aiCrawlerAccess(),
	}
}
