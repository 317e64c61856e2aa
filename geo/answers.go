package geo

import (
	"regexp"
	"strings"

	"github.com/fwojciec/geolens"
)

// Question-and-answer surfaces quote pages that mirror the question
// shape: a heading phrased as a question, or an opening that defines
// its subject outright.

var questionOpeners = map[string]bool{
	"what": true, "how": true, "why": true, "when": true,
	"where": true, "who": true, "which": true, "can": true,
	"does": true, "do": true, "is": true, "are": true, "should": true,
}

// definitionRe matches openings of the form "X is a ..." / "X are the
// ..." within the first clause of a paragraph.
var definitionRe = regexp.MustCompile(`(?i)^[^.!?]{1,80}\b(?:is|are)\s+(?:a|an|the)\b`)

func answerStructure() geolens.Rule {
	return geolens.Rule{
		ID:     "answer-structure",
		Axis:   geolens.AxisGEO,
		Weight: 8,
		Doc:    "content is organized to answer questions directly",
		Evaluate: func(c *geolens.Content) geolens.RuleResult {
			paras := geolens.SplitParagraphs(c.MainText)
			if len(c.Headings) == 0 && len(paras) == 0 {
				return geolens.InsufficientData("no headings or main text to assess")
			}

			for _, h := range c.Headings {
				if isQuestionHeading(h.Text) {
					return geolens.Pass("question heading %q invites a direct answer", h.Text)
				}
			}
			for i, p := range paras {
				if i >= 2 {
					break
				}
				if definitionRe.MatchString(p) {
					return geolens.Pass("opens with a definition: %s", geolens.Truncate(p, 80))
				}
			}
			return geolens.Fail("no question headings and no definitional opening")
		},
	}
}

func isQuestionHeading(text string) bool {
	t := strings.TrimSpace(text)
	if strings.HasSuffix(t, "?") {
		return true
	}
	return questionOpeners[geolens.FirstWord(t)]
}

// quotableFacts counts sentences that stand alone as citable
// statements: a statistic, a definition, or an explicit comparison,
// not anchored to unresolved context.
const minQuotableFacts = 2

var quotableDefinitionRe = regexp.MustCompile(`(?i)\b(?:is|are)\s+(?:a|an|the)\b|\brefers to\b|\bmeans\b|\bis defined as\b`)

func quotableFacts() geolens.Rule {
	return geolens.Rule{
		ID:     "quotable-facts",
		Axis:   geolens.AxisGEO,
		Weight: 8,
		Doc:    "standalone citable statements are present",
		Evaluate: func(c *geolens.Content) geolens.RuleResult {
			if strings.TrimSpace(c.MainText) == "" {
				return geolens.InsufficientData("no main text to scan")
			}

			sentences := geolens.SplitSentences(c.MainText)
			quotable := 0
			for _, s := range sentences {
				if isQuotable(s) {
					quotable++
				}
			}

			want := minQuotableFacts
			if len(sentences) < 10 {
				want = 1
			}
			if quotable < want {
				return geolens.Fail("%d quotable statements found, want at least %d", quotable, want)
			}
			return geolens.Pass("%d quotable statements found", quotable)
		},
	}
}

func isQuotable(sentence string) bool {
	if openingPronouns[geolens.FirstWord(sentence)] {
		return false
	}
	if geolens.ContainsFigure(sentence) {
		return true
	}
	if quotableDefinitionRe.MatchString(sentence) {
		return true
	}
	return geolens.ContainsComparison(sentence)
}
