package lyrics

import (
	"sort"
	"strconv"
	"strings"
)

// ParseWordTimed parses the word-timed encoding. Lines starting with "{" are
// JSON metadata and skipped; everything else must look like
// [start,duration]text with per-word (ms,dur,flag) markers, which are
// stripped from the output text. Input lines already arrive in song order.
func ParseWordTimed(raw string) []Line {
	var lines []Line
	for _, physical := range strings.Split(raw, "\n") {
		physical = strings.TrimSpace(physical)
		if physical == "" || strings.HasPrefix(physical, "{") {
			continue
		}
		start, rest, ok := splitLineHeader(physical)
		if !ok {
			continue
		}
		text := strings.TrimSpace(stripWordMarkers(rest))
		if text == "" {
			continue
		}
		lines = append(lines, Line{Time: start, Text: text})
	}
	return lines
}

// splitLineHeader consumes a [start,duration] header and returns the start
// timestamp plus the remaining payload.
func splitLineHeader(line string) (int64, string, bool) {
	if line[0] != '[' {
		return 0, "", false
	}
	end := strings.IndexByte(line, ']')
	if end < 0 {
		return 0, "", false
	}
	header := line[1:end]
	comma := strings.IndexByte(header, ',')
	if comma < 0 || !allDigits(header[:comma]) || !allDigits(header[comma+1:]) {
		return 0, "", false
	}
	start, err := strconv.ParseInt(header[:comma], 10, 64)
	if err != nil {
		return 0, "", false
	}
	return start, line[end+1:], true
}

// stripWordMarkers removes every (ms,dur,flag) timing marker. Anything that
// only looks like one, e.g. "(hey,you,0)", is kept as text.
func stripWordMarkers(payload string) string {
	var b strings.Builder
	b.Grow(len(payload))
	for i := 0; i < len(payload); {
		if payload[i] == '(' {
			if next, ok := scanWordMarker(payload, i); ok {
				i = next
				continue
			}
		}
		b.WriteByte(payload[i])
		i++
	}
	return b.String()
}

// scanWordMarker reports the index just past a (digits,digits,digits) group
// starting at the "(" on position i.
func scanWordMarker(s string, i int) (int, bool) {
	j := i + 1
	for field := 0; field < 3; field++ {
		digits := j
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		if j == digits {
			return 0, false
		}
		if field < 2 {
			if j >= len(s) || s[j] != ',' {
				return 0, false
			}
			j++
		}
	}
	if j >= len(s) || s[j] != ')' {
		return 0, false
	}
	return j + 1, true
}

// ParseLineTimed parses the line-timed encoding. A physical line may carry
// several [mm:ss.ff] or [mm:ss.fff] tags, each owning the text up to the
// next tag or line end. Tag order in the file is not trusted: the result is
// sorted by timestamp, ties keeping file order.
func ParseLineTimed(raw string) []Line {
	var lines []Line
	for _, physical := range strings.Split(raw, "\n") {
		for i := 0; i < len(physical); {
			if physical[i] != '[' {
				i++
				continue
			}
			timestamp, end, ok := scanTimeTag(physical, i)
			if !ok {
				i++
				continue
			}
			text := physical[end:]
			if next := strings.IndexByte(text, '['); next >= 0 {
				text = text[:next]
				i = end + next
			} else {
				i = len(physical)
			}
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}
			lines = append(lines, Line{Time: timestamp, Text: text})
		}
	}
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Time < lines[j].Time })
	return lines
}

// scanTimeTag consumes a [minutes:seconds.fraction] tag starting at the "["
// on position i and returns its timestamp in milliseconds plus the index
// just past the closing bracket. A two-digit fraction means centiseconds
// and is scaled to milliseconds.
func scanTimeTag(s string, i int) (int64, int, bool) {
	j := i + 1
	minutes, j, ok := scanNumber(s, j)
	if !ok || j >= len(s) || s[j] != ':' {
		return 0, 0, false
	}
	seconds, j, ok := scanNumber(s, j+1)
	if !ok || j >= len(s) || s[j] != '.' {
		return 0, 0, false
	}
	fracStart := j + 1
	fraction, j, ok := scanNumber(s, fracStart)
	if !ok || j >= len(s) || s[j] != ']' {
		return 0, 0, false
	}
	millis := fraction
	if j-fracStart == 2 {
		millis *= 10
	}
	return (minutes*60+seconds)*1000 + millis, j + 1, true
}

func scanNumber(s string, i int) (int64, int, bool) {
	j := i
	var n int64
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		n = n*10 + int64(s[j]-'0')
		j++
	}
	if j == i {
		return 0, 0, false
	}
	return n, j, true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
