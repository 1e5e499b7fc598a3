package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	out := Render("not quite ({similarity}%)\nyou sent: {user_input}\nexpected: {expected}",
		map[string]string{
			"similarity": "42",
			"user_input": "la la la",
			"expected":   "the real line",
		})
	assert.Equal(t, "not quite (42%)\nyou sent: la la la\nexpected: the real line", out)
}

func TestRenderNoVars(t *testing.T) {
	assert.Equal(t, "plain text", Render("plain text", nil))
}

func TestRenderUnknownPlaceholderKept(t *testing.T) {
	out := Render("hello {name}, {unknown}", map[string]string{"name": "world"})
	assert.Equal(t, "hello world, {unknown}", out)
}

func TestSplitKeywordsDefaults(t *testing.T) {
	keywords := SplitKeywords("")
	require.NotEmpty(t, keywords)
	assert.Contains(t, keywords, "作词")
	assert.Contains(t, keywords, "作曲")
}

func TestSplitKeywordsCustom(t *testing.T) {
	assert.Equal(t, []string{"foo", "bar"}, SplitKeywords(" foo , bar ,,"))
}

func TestDefaultMessagesPlaceholders(t *testing.T) {
	messages := DefaultMessages()
	assert.Contains(t, messages.MatchFailed, "{similarity}")
	assert.Contains(t, messages.MatchFailed, "{user_input}")
	assert.Contains(t, messages.MatchFailed, "{expected}")
	assert.Contains(t, messages.GameStart, "{song_name}")
	assert.Contains(t, messages.GameStart, "{first_line}")
	assert.Contains(t, messages.GameStart, "{threshold}")
	assert.Contains(t, messages.SongComplete, "{last_line}")
	assert.Contains(t, messages.InvalidNumber, "{count}")
}
