package geo

import (
	"strings"

	"github.com/fwojciec/geolens"
)

// claimEvidenceProximity scans the main text for factual claims and
// checks that each one shares a paragraph with a citation marker or
// hedging qualifier. A bald statistic is the single highest
// misquotation risk when a model lifts it out of context, which is why
// this rule carries the battery's largest weight.
func claimEvidenceProximity() geolens.Rule {
	return geolens.Rule{
		ID:     "claim-evidence-proximity",
		Axis:   geolens.AxisGEO,
		Weight: 14,
		Doc:    "factual claims sit near a citation or qualifier",
		Evaluate: func(c *geolens.Content) geolens.RuleResult {
			if strings.TrimSpace(c.MainText) == "" {
				return geolens.InsufficientData("no main text to scan for claims")
			}

			claims := geolens.ExtractClaims(c.MainText)
			if len(claims) == 0 {
				return geolens.Pass("no factual claims to source")
			}

			paras := geolens.SplitParagraphs(c.MainText)
			var bald []geolens.Claim
			for _, claim := range claims {
				if claim.Paragraph < len(paras) && geolens.HasEvidence(paras[claim.Paragraph]) {
					continue
				}
				bald = append(bald, claim)
			}

			if len(bald) > 0 {
				return geolens.FailWith(bald[0].Text,
					"%d of %d claims lack nearby evidence or qualification", len(bald), len(claims))
			}
			return geolens.Pass("all %d claims carry nearby evidence", len(claims))
		},
	}
}
