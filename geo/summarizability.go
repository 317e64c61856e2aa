package geo

import (
	"strings"

	"github.com/fwojciec/geolens"
)

// A page is considered summarizable when its headings partition the
// prose into digestible runs and the lead paragraph restates the
// page's key terms, so a model reading top-down can produce a faithful
// abstract without scanning the whole body.
const (
	maxParagraphsPerHeading = 8.0
	minLeadTermOverlap      = 0.3
)

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"of": true, "to": true, "in": true, "for": true, "with": true,
	"on": true, "at": true, "is": true, "are": true, "how": true,
	"what": true, "why": true, "your": true, "you": true, "our": true,
	"from": true, "into": true, "about": true,
}

func summarizability() geolens.Rule {
	return geolens.Rule{
		ID:     "summarizability",
		Axis:   geolens.AxisGEO,
		Weight: 12,
		Doc:    "structure and lead support a faithful abstract",
		Evaluate: func(c *geolens.Content) geolens.RuleResult {
			paras := geolens.SplitParagraphs(c.MainText)
			if len(paras) == 0 {
				return geolens.InsufficientData("no main text to segment")
			}
			if len(c.Headings) == 0 {
				return geolens.Fail("no headings to anchor a summary")
			}

			perHeading := float64(len(paras)) / float64(len(c.Headings))
			if perHeading > maxParagraphsPerHeading {
				return geolens.Fail("%d paragraphs under %d headings, want at most %.0f per heading",
					len(paras), len(c.Headings), maxParagraphsPerHeading)
			}

			terms := keyTerms(c)
			if len(terms) > 0 {
				overlap := termOverlap(paras[0], terms)
				if overlap < minLeadTermOverlap {
					return geolens.FailWith(geolens.Truncate(paras[0], 120),
						"lead paragraph restates %.0f%% of the page's key terms, want at least %.0f%%",
						overlap*100, minLeadTermOverlap*100)
				}
			}
			return geolens.Pass("%.1f paragraphs per heading, lead restates key terms", perHeading)
		},
	}
}

// keyTerms collects the content words of the title and headings.
func keyTerms(c *geolens.Content) map[string]bool {
	terms := make(map[string]bool)
	add := func(text string) {
		for _, w := range strings.Fields(strings.ToLower(text)) {
			w = strings.Trim(w, ".,;:!?\"'()[]")
			if len(w) > 3 && !stopwords[w] {
				terms[w] = true
			}
		}
	}
	add(c.Title)
	for _, h := range c.Headings {
		add(h.Text)
	}
	return terms
}

// termOverlap reports the fraction of terms present in the paragraph.
func termOverlap(para string, terms map[string]bool) float64 {
	words := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(para)) {
		words[strings.Trim(w, ".,;:!?\"'()[]")] = true
	}
	found := 0
	for t := range terms {
		if words[t] {
			found++
		}
	}
	return float64(found) / float64(len(terms))
}
