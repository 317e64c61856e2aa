package geolens

import (
	"regexp"
	"strings"
)

// ClaimKind classifies what makes a sentence a factual assertion.
type ClaimKind string

// Claim kinds, in detection precedence order.
const (
	ClaimPercentage  ClaimKind = "percentage"
	ClaimYear        ClaimKind = "year"
	ClaimComparative ClaimKind = "comparative"
	ClaimNumber      ClaimKind = "number"
)

// Claim is a factual assertion extracted from prose. Claims drive the
// claim-evidence proximity heuristic and the simulator's drift check.
type Claim struct {
	// Text is the claim sentence.
	Text string `json:"text"`

	// Kind classifies the assertion.
	Kind ClaimKind `json:"kind"`

	// Paragraph is the zero-based index of the containing paragraph.
	Paragraph int `json:"paragraph"`

	// Figures are the numeric tokens the sentence asserts.
	Figures []string `json:"figures,omitempty"`
}

var (
	percentageRe  = regexp.MustCompile(`\b\d+(?:\.\d+)?\s*(?:%|percent\b)`)
	yearRe        = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	comparativeRe = regexp.MustCompile(`(?i)\b(?:more|less|fewer|faster|slower|higher|lower|better|worse)\s+than\b`)
	figureRe      = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?%?`)
)

// ExtractClaims finds factual assertions in prose: sentences carrying
// percentages, years, explicit comparisons, or other figures. Claims are
// returned in document order.
func ExtractClaims(text string) []Claim {
	var claims []Claim
	for pi, para := range SplitParagraphs(text) {
		for _, sentence := range SplitSentences(para) {
			kind, ok := classifyClaim(sentence)
			if !ok {
				continue
			}
			claims = append(claims, Claim{
				Text:      sentence,
				Kind:      kind,
				Paragraph: pi,
				Figures:   figureRe.FindAllString(sentence, -1),
			})
		}
	}
	return claims
}

func classifyClaim(sentence string) (ClaimKind, bool) {
	switch {
	case percentageRe.MatchString(sentence):
		return ClaimPercentage, true
	case yearRe.MatchString(sentence):
		return ClaimYear, true
	case comparativeRe.MatchString(sentence):
		return ClaimComparative, true
	case figureRe.MatchString(sentence):
		return ClaimNumber, true
	}
	return "", false
}

// ContainsFigure reports whether the sentence carries a numeric figure.
func ContainsFigure(sentence string) bool {
	return figureRe.MatchString(sentence)
}

// ContainsComparison reports whether the sentence makes an explicit
// comparison ("faster than", "more than").
func ContainsComparison(sentence string) bool {
	return comparativeRe.MatchString(sentence)
}

// evidenceMarkers are phrases that attribute or qualify a claim.
var evidenceMarkers = []string{
	"according to",
	"based on",
	"source",
	"study",
	"survey",
	"report",
	"research",
	"data from",
	"cited",
	"estimated",
	"approximately",
	"roughly",
	"about ",
	"around ",
	"as of",
	"per ",
}

// HasEvidence reports whether the paragraph contains a citation or
// qualifier for the claims it makes. Proximity is judged at paragraph
// granularity: a marker anywhere in the paragraph covers its claims.
func HasEvidence(paragraph string) bool {
	lower := strings.ToLower(paragraph)
	for _, marker := range evidenceMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
