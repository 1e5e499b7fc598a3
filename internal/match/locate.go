package match

import "github.com/lyricduet/duetbot/internal/lyrics"

// Locate finds the index of the line the user is singing. Strategies run in
// strict order — expected position, one-line skip, a local window, then the
// whole song — and the first strategy with a hit wins even when a later one
// would find a lower index. Returns -1 when nothing clears the threshold.
func Locate(input string, lines []lyrics.Line, position int, inSong bool, threshold int) int {
	if len(lines) == 0 {
		return -1
	}

	if inSong && position >= 0 && position < len(lines) &&
		IsMatch(input, lines[position].Text, threshold) {
		return position
	}

	if inSong && position+1 >= 0 && position+1 < len(lines) &&
		IsMatch(input, lines[position+1].Text, threshold) {
		return position + 1
	}

	if inSong {
		start := position - 3
		if start < 0 {
			start = 0
		}
		end := position + 10
		if end > len(lines) {
			end = len(lines)
		}
		for i := start; i < end; i++ {
			if IsMatch(input, lines[i].Text, threshold) {
				return i
			}
		}
	}

	for i := range lines {
		if IsMatch(input, lines[i].Text, threshold) {
			return i
		}
	}
	return -1
}
