// Package match scores user input against expected lyric lines and locates
// the position a user is singing from.
package match

import (
	"math"
	"strings"
	"unicode"
)

// Normalize strips everything that is not a letter, digit or underscore
// (whitespace and punctuation included) and lowercases the rest, so that
// "Hello, World!" and "helloworld" compare equal.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Score rates the similarity of two strings on a 0–100 scale: 100 for equal
// normalized text, 90 for a substring relation, otherwise a Levenshtein
// ratio over the longer string.
func Score(a, b string) int {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 100
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return 90
	}

	ra, rb := []rune(na), []rune(nb)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	distance := levenshtein(ra, rb)
	score := int(math.Round((1 - float64(distance)/float64(longest)) * 100))
	if score < 0 {
		return 0
	}
	return score
}

// IsMatch reports whether input clears the similarity threshold against the
// expected line.
func IsMatch(input, expected string, threshold int) bool {
	return Score(input, expected) >= threshold
}

// levenshtein computes the edit distance with the classic two-row dynamic
// program. The shorter string drives the row width, keeping memory at
// O(min(len(a), len(b))).
func levenshtein(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
