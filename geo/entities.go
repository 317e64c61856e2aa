package geo

import (
	"strings"
	"unicode"

	"github.com/fwojciec/geolens"
)

// entityAmbiguity flags named entities whose surface form could refer
// to several real-world referents: bare acronyms with no expansion
// anywhere on the page, and single-token person or organization names
// with no fuller mention. Entity extraction is optional, so a nil
// entity list degrades to an insufficient-data failure rather than
// guessing.
func entityAmbiguity() geolens.Rule {
	return geolens.Rule{
		ID:     "entity-ambiguity",
		Axis:   geolens.AxisGEO,
		Weight: 10,
		Doc:    "named entities carry disambiguating context",
		Evaluate: func(c *geolens.Content) geolens.RuleResult {
			if c.Entities == nil {
				return geolens.InsufficientData("entity data unavailable")
			}
			if len(c.Entities) == 0 {
				return geolens.Pass("no named entities found")
			}

			seen := make(map[string]bool)
			var ambiguous []string
			for _, e := range c.Entities {
				if seen[e.Text] {
					continue
				}
				seen[e.Text] = true
				if isAmbiguous(e, c.Entities) {
					ambiguous = append(ambiguous, e.Text)
				}
			}

			if len(ambiguous) > 0 {
				return geolens.FailWith(strings.Join(ambiguous, ", "),
					"%d of %d entities lack disambiguating context", len(ambiguous), len(seen))
			}
			return geolens.Pass("all %d entities are contextualized", len(seen))
		},
	}
}

func isAmbiguous(e geolens.Entity, all []geolens.Entity) bool {
	if isAcronym(e.Text) {
		return !hasExpansion(e.Text, all)
	}
	if e.Type == "PERSON" || e.Type == "ORG" {
		if len(strings.Fields(e.Text)) == 1 {
			return !hasFullerMention(e.Text, all)
		}
	}
	return false
}

// isAcronym reports whether s is a short all-uppercase token such as
// "CMS" or "API".
func isAcronym(s string) bool {
	runes := []rune(s)
	if len(runes) < 2 || len(runes) > 5 {
		return false
	}
	for _, r := range runes {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// hasExpansion reports whether another entity reads as the spelled-out
// form of the acronym, matching initial letters word by word.
func hasExpansion(acronym string, all []geolens.Entity) bool {
	letters := []rune(acronym)
	for _, e := range all {
		words := strings.Fields(e.Text)
		if len(words) != len(letters) || len(words) < 2 {
			continue
		}
		match := true
		for i, w := range words {
			if !strings.EqualFold(string(letters[i]), string([]rune(w)[0])) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// hasFullerMention reports whether a multi-word entity elsewhere on the
// page contains name as one of its tokens, e.g. "Smith" resolved by
// "Jane Smith".
func hasFullerMention(name string, all []geolens.Entity) bool {
	for _, e := range all {
		words := strings.Fields(e.Text)
		if len(words) < 2 {
			continue
		}
		for _, w := range words {
			if strings.EqualFold(w, name) {
				return true
			}
		}
	}
	return false
}
