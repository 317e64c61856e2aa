package geo

import "github.com/fwojciec/geolens"

// openingPronouns are anaphora that leave a paragraph's subject
// unresolved for a reader (or a model) that sees the paragraph in
// isolation, as retrieval-augmented systems typically do.
var openingPronouns = map[string]bool{
	"this":  true,
	"that":  true,
	"these": true,
	"those": true,
	"it":    true,
	"they":  true,
	"he":    true,
	"she":   true,
}

// maxPronounOpenRatio is the tolerated share of paragraphs that open
// with an unresolved pronoun.
const maxPronounOpenRatio = 0.25

func selfContainedness() geolens.Rule {
	return geolens.Rule{
		ID:     "self-containedness",
		Axis:   geolens.AxisGEO,
		Weight: 12,
		Doc:    "paragraphs make sense when read in isolation",
		Evaluate: func(c *geolens.Content) geolens.RuleResult {
			paras := geolens.SplitParagraphs(c.MainText)
			if len(paras) == 0 {
				return geolens.InsufficientData("no main text to segment")
			}

			var offending []string
			for _, p := range paras {
				if openingPronouns[geolens.FirstWord(p)] {
					offending = append(offending, p)
				}
			}

			ratio := float64(len(offending)) / float64(len(paras))
			if ratio > maxPronounOpenRatio {
				return geolens.FailWith(geolens.Truncate(offending[0], 120),
					"%d of %d paragraphs open with an unresolved pronoun", len(offending), len(paras))
			}
			return geolens.Pass("%d of %d paragraphs open with a pronoun", len(offending), len(paras))
		},
	}
}
