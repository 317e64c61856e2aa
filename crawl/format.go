package crawl

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ComputeHash fingerprints fetched HTML with xxhash. It matches the
// ContentHash the analysis pipeline stamps on reports, which is what
// the unchanged-page check compares against.
func ComputeHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}

// TruncateURL shortens a URL for progress lines. The tail survives
// because the path is what distinguishes pages on the same host.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(url) <= maxLen {
		return url
	}
	if maxLen < 4 {
		return url[:maxLen]
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes renders a byte count for audit summaries.
func FormatBytes(n int) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
	)
	switch {
	case n >= mb:
		return fmt.Sprintf("%.1f MB", float64(n)/mb)
	case n >= kb:
		return fmt.Sprintf("%.1f KB", float64(n)/kb)
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// FormatTokens renders an estimated token count, rounded to the nearest
// thousand above 1k.
func FormatTokens(n int) string {
	if n < 1000 {
		return fmt.Sprintf("~%d tokens", n)
	}
	return fmt.Sprintf("~%dk tokens", (n+500)/1000)
}
