// Package lyrics turns raw timed-lyric text into an ordered line sequence.
//
// Two encodings are supported: the word-timed format (every line opens with
// [start,duration] and embeds (ms,dur,flag) markers before each word) and
// the classic line-timed format with [mm:ss.ff] tags. Both parsers are total:
// malformed input degrades to fewer lines, never to an error.
package lyrics

// Line is one sung lyric line with its start offset into the song.
type Line struct {
	Time int64  `json:"time"` // milliseconds from song start
	Text string `json:"text"`
}
