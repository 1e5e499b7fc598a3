package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/lyricduet/duetbot/internal/lyrics"
)

const testThreshold = 75

func makeLines(texts ...string) []lyrics.Line {
	lines := make([]lyrics.Line, len(texts))
	for i, text := range texts {
		lines[i] = lyrics.Line{Time: int64(i) * 1000, Text: text}
	}
	return lines
}

func TestLocateExpectedPosition(t *testing.T) {
	lines := makeLines("first line", "second line", "third line")
	assert.Equal(t, 1, Locate("second line", lines, 1, true, testThreshold))
}

func TestLocateExpectedPositionBeatsEarlierGlobalHit(t *testing.T) {
	// The same text appears at 0 and 1; the expected-position strategy must
	// win over the global scan's lower index.
	lines := makeLines("la la la", "la la la", "different line")
	assert.Equal(t, 1, Locate("la la la", lines, 1, true, testThreshold))
}

func TestLocateOneLineSkip(t *testing.T) {
	lines := makeLines("first line", "second line", "third line")
	assert.Equal(t, 2, Locate("third line", lines, 1, true, testThreshold))
}

func TestLocateLocalWindow(t *testing.T) {
	lines := makeLines(
		"line zero", "line one", "line two", "line three", "line four",
		"line five", "line six", "line seven",
	)
	// position 5, match behind at 2 — inside [position-3, position+10)
	assert.Equal(t, 2, Locate("line two", lines, 5, true, testThreshold))
}

func TestLocateGlobalScan(t *testing.T) {
	lines := makeLines(
		"aaaa", "bbbb", "cccc", "dddd", "eeee", "ffff", "gggg", "hhhh",
		"iiii", "jjjj", "kkkk", "llll", "mmmm", "target text", "oooo",
	)
	// position 0, target far outside the window: global scan finds it
	assert.Equal(t, 13, Locate("target text", lines, 0, true, testThreshold))
}

func TestLocateNotInSongUsesGlobalOnly(t *testing.T) {
	lines := makeLines("same line", "same line", "same line")
	// without a game in progress the position is ignored and the lowest
	// global index wins
	assert.Equal(t, 0, Locate("same line", lines, 2, false, testThreshold))
}

func TestLocateNoMatch(t *testing.T) {
	lines := makeLines("first line", "second line")
	assert.Equal(t, -1, Locate("nothing like it", lines, 0, true, testThreshold))
}

func TestLocateEmptyLines(t *testing.T) {
	assert.Equal(t, -1, Locate("anything", nil, 0, true, testThreshold))
}

func TestLocatePositionPastEnd(t *testing.T) {
	lines := makeLines("first line", "second line")
	// position beyond the sequence must not panic and still finds globally
	assert.Equal(t, 0, Locate("first line", lines, 5, true, testThreshold))
}

func TestLocateResultAlwaysInRange(t *testing.T) {
	lines := makeLines("first line", "second line", "third line")
	for position := -2; position < 6; position++ {
		for _, input := range []string{"first line", "third line", "garbage input"} {
			idx := Locate(input, lines, position, true, testThreshold)
			if idx != -1 {
				assert.GreaterOrEqual(t, idx, 0)
				assert.Less(t, idx, len(lines))
			}
		}
	}
}
