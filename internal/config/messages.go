package config

import (
	"strings"

	"github.com/lyricduet/duetbot/internal/utils"
)

// Messages holds every user-facing reply template. Placeholders use the
// {name} form and are expanded with Render.
type Messages struct {
	EmptyKeyword    string
	NoSongsFound    string
	SearchFailed    string
	SelectionPrefix string
	InvalidNumber   string // {count}
	NoLyrics        string
	GameStart       string // {song_name} {first_line} {threshold}
	MatchFailed     string // {similarity} {user_input} {expected}
	SongComplete    string // {last_line}
	StartNotFound   string
	ExitGame        string
	InternalError   string
	NotUnderstood   string
}

func DefaultMessages() Messages {
	return Messages{
		EmptyKeyword:    "please give me a song name or a lyric snippet, e.g. /sing 晴天",
		NoSongsFound:    "no songs found, try another keyword",
		SearchFailed:    "search failed, please try again",
		SelectionPrefix: "found these songs, send a number to pick one:",
		InvalidNumber:   "please send a number between 1 and {count}",
		NoLyrics:        "couldn't get lyrics for that one, try another song",
		GameStart:       "picked \"{song_name}\"\nyour line: {first_line}\n(i answer with the line after yours, match threshold {threshold}%)",
		MatchFailed:     "not quite ({similarity}% similar), try again!\nyou sent: {user_input}\nexpected: {expected}\nsend /exit to stop",
		SongComplete:    "{last_line}\n\n🎤 that was the whole song!",
		StartNotFound:   "couldn't find a line matching your starting point, game cancelled",
		ExitGame:        "left the duet. come back any time with /sing",
		InternalError:   "something went wrong, the game was reset",
		NotUnderstood:   "i don't get that one...\n\nstart a duet with /sing <song name>",
	}
}

func loadMessages() Messages {
	defaults := DefaultMessages()
	return Messages{
		EmptyKeyword:    utils.OptionalEnv("MSG_EMPTY_KEYWORD", defaults.EmptyKeyword),
		NoSongsFound:    utils.OptionalEnv("MSG_NO_SONGS_FOUND", defaults.NoSongsFound),
		SearchFailed:    utils.OptionalEnv("MSG_SEARCH_FAILED", defaults.SearchFailed),
		SelectionPrefix: utils.OptionalEnv("MSG_SONG_SELECTION_PREFIX", defaults.SelectionPrefix),
		InvalidNumber:   utils.OptionalEnv("MSG_INVALID_NUMBER", defaults.InvalidNumber),
		NoLyrics:        utils.OptionalEnv("MSG_NO_LYRICS", defaults.NoLyrics),
		GameStart:       utils.OptionalEnv("MSG_GAME_START", defaults.GameStart),
		MatchFailed:     utils.OptionalEnv("MSG_MATCH_FAILED", defaults.MatchFailed),
		SongComplete:    utils.OptionalEnv("MSG_SONG_COMPLETE", defaults.SongComplete),
		StartNotFound:   utils.OptionalEnv("MSG_START_NOT_FOUND", defaults.StartNotFound),
		ExitGame:        utils.OptionalEnv("MSG_EXIT_GAME", defaults.ExitGame),
		InternalError:   utils.OptionalEnv("MSG_INTERNAL_ERROR", defaults.InternalError),
		NotUnderstood:   utils.OptionalEnv("MSG_NOT_UNDERSTOOD", defaults.NotUnderstood),
	}
}

// Render expands {name} placeholders in a message template.
func Render(template string, vars map[string]string) string {
	if len(vars) == 0 {
		return template
	}
	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
