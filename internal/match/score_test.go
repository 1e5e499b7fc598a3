package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "helloworld", Normalize("Hello, World!"))
	assert.Equal(t, "晴天", Normalize(" 晴 天 "))
	assert.Equal(t, "dont_stop123", Normalize("don't stop_123"))
	assert.Equal(t, "", Normalize("!!! ... ---"))
	assert.Equal(t, "", Normalize(""))
}

func TestScoreIdentity(t *testing.T) {
	for _, text := range []string{"a", "hello world", "还没好好的感受", "MiXeD CaSe"} {
		assert.Equal(t, 100, Score(text, text), "score(%q, %q)", text, text)
	}
}

func TestScoreSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"hello", "hallo"},
		{"还没好好的感受", "还没感受"},
		{"abc", "xyz"},
		{"short", "a much longer line entirely"},
	}
	for _, pair := range pairs {
		assert.Equal(t, Score(pair[0], pair[1]), Score(pair[1], pair[0]),
			"score(%q, %q) not symmetric", pair[0], pair[1])
	}
}

func TestScoreBounds(t *testing.T) {
	pairs := [][2]string{
		{"", ""}, {"a", ""}, {"abc", "xyz"}, {"a", "aaaaaaaaaaaaaaaaaaaa"},
		{"totally different", "unrelated text here"},
	}
	for _, pair := range pairs {
		score := Score(pair[0], pair[1])
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
	}
}

func TestScoreEmpty(t *testing.T) {
	assert.Equal(t, 0, Score("", "hello"))
	assert.Equal(t, 0, Score("hello", ""))
	// Punctuation-only input normalizes to empty.
	assert.Equal(t, 0, Score("...", "hello"))
}

func TestScoreSubstring(t *testing.T) {
	assert.Equal(t, 90, Score("hello", "hello there my friend"))
	assert.Equal(t, 90, Score("还没好好的感受", "还没好好的"))
}

func TestScoreEditDistance(t *testing.T) {
	// distance 1 over length 4: (1 - 1/4) * 100 = 75
	assert.Equal(t, 75, Score("abcd", "abce"))
	// nothing in common: 0
	assert.Equal(t, 0, Score("abc", "xyz"))
}

func TestScoreIgnoresPunctuationAndCase(t *testing.T) {
	assert.Equal(t, 100, Score("Hello, World!", "hello world"))
	assert.Equal(t, 100, Score("还没好好的感受。", "还没好好的感受"))
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"same", "same", 0},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, levenshtein([]rune(tc.a), []rune(tc.b)),
			"levenshtein(%q, %q)", tc.a, tc.b)
	}
}

func TestIsMatch(t *testing.T) {
	assert.True(t, IsMatch("hello world", "Hello, World!", 75))
	assert.True(t, IsMatch("hello", "hello there", 90))
	assert.False(t, IsMatch("hello", "hello there", 91))
	assert.False(t, IsMatch("abc", "xyz", 1))
}
