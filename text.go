package geolens

import (
	"strings"
	"unicode"
)

// SplitParagraphs splits prose into paragraphs on blank lines.
// Whitespace-only paragraphs are dropped and paragraphs are trimmed.
func SplitParagraphs(text string) []string {
	var paragraphs []string
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		paragraphs = append(paragraphs, block)
	}
	return paragraphs
}

// abbreviations are sentence-internal words ending in a period.
var abbreviations = map[string]bool{
	"e.g":  true,
	"i.e":  true,
	"etc":  true,
	"vs":   true,
	"mr":   true,
	"mrs":  true,
	"ms":   true,
	"dr":   true,
	"prof": true,
	"inc":  true,
	"ltd":  true,
	"fig":  true,
	"no":   true,
	"st":   true,
}

// SplitSentences splits a paragraph into sentences on terminal
// punctuation. Decimal points and common abbreviations do not end a
// sentence. The returned sentences keep their terminal punctuation.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	var sb strings.Builder
	runes := []rune(text)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		sb.WriteRune(r)

		if r != '.' && r != '!' && r != '?' {
			continue
		}

		// Decimal point: digits on both sides.
		if r == '.' && i > 0 && i+1 < len(runes) &&
			unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]) {
			continue
		}

		if r == '.' && endsInAbbreviation(sb.String()) {
			continue
		}

		// A sentence ends at end of text or before whitespace.
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}

		if s := strings.TrimSpace(sb.String()); s != "" {
			sentences = append(sentences, s)
		}
		sb.Reset()
		for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			i++
		}
	}

	if s := strings.TrimSpace(sb.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func endsInAbbreviation(prefix string) bool {
	trimmed := strings.TrimSuffix(prefix, ".")
	idx := strings.LastIndexFunc(trimmed, unicode.IsSpace)
	last := strings.ToLower(trimmed[idx+1:])
	return abbreviations[last]
}

// CountWords returns the number of whitespace-separated words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// FirstWord returns the first word of text, lowercased, with surrounding
// punctuation stripped. Returns the empty string for blank text.
func FirstWord(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	word := strings.TrimFunc(fields[0], func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.ToLower(word)
}

// Truncate shortens text to at most max runes, appending an ellipsis when
// anything was cut. Max values below 4 fall back to a hard cut.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	if max < 4 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
