package lyrics

import (
	"strings"
	"unicode"
)

// FilterMetadata drops credit lines such as "作词: 张三" or "produced by: x".
// A line is metadata when its normalized text starts with a keyword followed
// by a colon; a keyword without the colon is sung content and kept.
func FilterMetadata(lines []Line, keywords []string) []Line {
	if len(lines) == 0 || len(keywords) == 0 {
		return lines
	}

	prefixes := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		if normalized := normalizeMeta(keyword); normalized != "" {
			prefixes = append(prefixes, normalized+":")
		}
	}

	kept := make([]Line, 0, len(lines))
	for _, line := range lines {
		if !isMetadata(line.Text, prefixes) {
			kept = append(kept, line)
		}
	}
	return kept
}

func isMetadata(text string, prefixes []string) bool {
	normalized := normalizeMeta(text)
	for _, prefix := range prefixes {
		if strings.HasPrefix(normalized, prefix) {
			return true
		}
	}
	return false
}

// normalizeMeta folds the full-width colon to ASCII, removes whitespace and
// lowercases, so "作词 ： 张三" and "作词:张三" compare equal.
func normalizeMeta(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '：':
			b.WriteRune(':')
		case unicode.IsSpace(r):
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
