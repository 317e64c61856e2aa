package simulate

import (
	"fmt"
	"strings"

	"github.com/fwojciec/geolens"
)

// maxOmittedChecks bounds how many leading source claims are checked
// for omission. Summaries legitimately drop detail; only the page's
// front-loaded claims are expected to survive.
const maxOmittedChecks = 3

// minContradictionOverlap is the number of shared content words a
// summary sentence and a source claim need before a figure mismatch
// reads as a contradiction rather than an unsupported addition.
const minContradictionOverlap = 2

// DetectDrift compares a model summary against the source's extracted
// claims and reports where the summary departs from the source. The
// comparison is purely lexical over numeric figures; it runs without
// any model in the loop, so flags are deterministic for a given
// summary.
func DetectDrift(summary string, claims []geolens.Claim) []geolens.DriftFlag {
	var flags []geolens.DriftFlag

	sourceFigures := make(map[string]bool)
	for _, c := range claims {
		for _, f := range c.Figures {
			sourceFigures[normalizeFigure(f)] = true
		}
	}
	summaryFigures := make(map[string]bool)
	contradicted := make(map[string]bool)

	for _, sc := range geolens.ExtractClaims(summary) {
		for _, f := range sc.Figures {
			norm := normalizeFigure(f)
			summaryFigures[norm] = true
			if sourceFigures[norm] {
				continue
			}
			if src, ok := contradictedClaim(sc, claims); ok {
				contradicted[src.Text] = true
				flags = append(flags, geolens.DriftFlag{
					Kind:  geolens.DriftContradicted,
					Claim: sc.Text,
					Detail: fmt.Sprintf("summary states %s where the source states %s",
						f, strings.Join(src.Figures, ", ")),
				})
			} else {
				flags = append(flags, geolens.DriftFlag{
					Kind:   geolens.DriftUnsupported,
					Claim:  sc.Text,
					Detail: fmt.Sprintf("figure %s does not appear in the source", f),
				})
			}
		}
	}

	// A contradicted claim is already flagged; reporting it as omitted
	// too would double-count the same drift.
	checked := 0
	for _, c := range claims {
		if checked >= maxOmittedChecks {
			break
		}
		checked++
		if contradicted[c.Text] || anyFigurePresent(c.Figures, summaryFigures) {
			continue
		}
		flags = append(flags, geolens.DriftFlag{
			Kind:   geolens.DriftOmitted,
			Claim:  c.Text,
			Detail: fmt.Sprintf("figures %s are absent from the summary", strings.Join(c.Figures, ", ")),
		})
	}

	return flags
}

// contradictedClaim looks for a source claim about the same subject as
// the summary claim. Shared content words stand in for subject
// identity.
func contradictedClaim(summaryClaim geolens.Claim, claims []geolens.Claim) (geolens.Claim, bool) {
	for _, c := range claims {
		if len(c.Figures) == 0 {
			continue
		}
		if contentWordOverlap(summaryClaim.Text, c.Text) >= minContradictionOverlap {
			return c, true
		}
	}
	return geolens.Claim{}, false
}

func anyFigurePresent(figures []string, set map[string]bool) bool {
	for _, f := range figures {
		if set[normalizeFigure(f)] {
			return true
		}
	}
	return false
}

// normalizeFigure reduces a numeric token to its digits so "1,200",
// "1200" and "1200%" compare equal across phrasings.
func normalizeFigure(s string) string {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	return strings.TrimSuffix(s, ".")
}

var driftStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"of": true, "to": true, "in": true, "for": true, "with": true,
	"that": true, "this": true, "than": true, "from": true,
}

func contentWordOverlap(a, b string) int {
	wordsA := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(a)) {
		w = strings.Trim(w, ".,;:!?\"'()")
		if len(w) > 3 && !driftStopwords[w] {
			wordsA[w] = true
		}
	}
	overlap := 0
	for _, w := range strings.Fields(strings.ToLower(b)) {
		w = strings.Trim(w, ".,;:!?\"'()")
		if wordsA[w] {
			overlap++
			delete(wordsA, w)
		}
	}
	return overlap
}
