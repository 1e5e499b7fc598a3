// Package game drives the call-and-response lyric game: per-user sessions,
// the turn state machine, and the store that owns them.
package game

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/lyricduet/duetbot/internal/config"
	"github.com/lyricduet/duetbot/internal/logger"
	"github.com/lyricduet/duetbot/internal/lyrics"
	"github.com/lyricduet/duetbot/internal/match"
	"github.com/lyricduet/duetbot/internal/netease"
)

// Lookup is the song search / lyric download collaborator. Absence (nil)
// is the only failure signal it may produce.
type Lookup interface {
	Search(ctx context.Context, keyword string, limit int) []netease.Song
	FetchLyrics(ctx context.Context, songID string) *netease.RawLyrics
}

// LyricCache stores parsed line sequences keyed by song id, read-through
// before the Lookup is consulted.
type LyricCache interface {
	Get(ctx context.Context, songID string) ([]lyrics.Line, bool)
	Put(ctx context.Context, songID string, lines []lyrics.Line) error
}

// PlayRecorder counts song starts. Failures must not affect the game.
type PlayRecorder interface {
	RecordPlay(ctx context.Context, song netease.Song) error
}

// Engine is the state machine behind every game intent. Each entry point
// returns the reply text and whether there is a reply at all; ok=false means
// the message was not a game message and the host layer should fall through.
type Engine struct {
	store  *Store
	lookup Lookup
	cache  LyricCache
	plays  PlayRecorder
	cfg    *config.Config
}

// NewEngine wires the engine with its collaborators; cache and plays may be
// nil when the deployment runs without Redis or Turso.
func NewEngine(store *Store, lookup Lookup, cache LyricCache, plays PlayRecorder, cfg *config.Config) *Engine {
	return &Engine{
		store:  store,
		lookup: lookup,
		cache:  cache,
		plays:  plays,
		cfg:    cfg,
	}
}

// BeginSearch handles /sing: searches for candidate songs and puts the
// session into the selecting state.
func (e *Engine) BeginSearch(ctx context.Context, userID, keyword, startKeyword string) (string, bool) {
	return e.guard(userID, func() (string, bool) {
		sess := e.touch(userID)

		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			return e.cfg.Messages.EmptyKeyword, true
		}

		songs := e.lookup.Search(ctx, keyword, e.cfg.SearchLimit)
		if len(songs) == 0 {
			return e.cfg.Messages.NoSongsFound, true
		}

		sess.resetGame()
		sess.Selecting = true
		sess.Candidates = songs
		sess.StartKeyword = strings.TrimSpace(startKeyword)

		var b strings.Builder
		b.WriteString(e.cfg.Messages.SelectionPrefix)
		for i, song := range songs {
			b.WriteString(fmt.Sprintf("\n%d. %s - %s", i+1, song.Name, song.Artist))
		}
		return b.String(), true
	})
}

// ChooseCandidate handles a numeric selection while the session is in the
// selecting state. An out-of-range number re-prompts without state change.
func (e *Engine) ChooseCandidate(ctx context.Context, userID string, choice int) (string, bool) {
	return e.guard(userID, func() (string, bool) {
		sess := e.touch(userID)

		if !sess.Selecting || len(sess.Candidates) == 0 {
			return "", false
		}
		if choice < 1 || choice > len(sess.Candidates) {
			return config.Render(e.cfg.Messages.InvalidNumber, map[string]string{
				"count": strconv.Itoa(len(sess.Candidates)),
			}), true
		}

		song := sess.Candidates[choice-1]
		lines, ok := e.resolveLines(ctx, song.ID)
		if !ok {
			logger.Info(fmt.Sprintf("no usable lyrics for song %s (%s)", song.ID, song.Name))
			sess.resetGame()
			return e.cfg.Messages.NoLyrics, true
		}

		position := 0
		if sess.StartKeyword != "" {
			// Global scan only: the game hasn't started, so no position
			// context applies.
			idx := match.Locate(sess.StartKeyword, lines, 0, false, e.cfg.MatchThreshold)
			if idx < 0 {
				sess.resetGame()
				return e.cfg.Messages.StartNotFound, true
			}
			position = idx
		}

		sess.resetGame()
		sess.Song = &song
		sess.Lines = lines
		sess.Position = position
		sess.InSong = true
		e.store.Touch(userID) // fresh clock so the download time can't trip the timeout

		if e.plays != nil {
			if err := e.plays.RecordPlay(ctx, song); err != nil {
				logger.Error(fmt.Sprintf("failed to record play for song %s: %v", song.ID, err))
			}
		}
		logger.Success(fmt.Sprintf("user %s started %q at line %d of %d", userID, song.Name, position, len(lines)))

		return config.Render(e.cfg.Messages.GameStart, map[string]string{
			"song_name":  song.Name,
			"first_line": lines[position].Text,
			"threshold":  strconv.Itoa(e.cfg.MatchThreshold),
		}), true
	})
}

// SubmitLine handles one sung line. A located match answers with the next
// line and moves the position past it; a miss reports the similarity and
// holds position.
func (e *Engine) SubmitLine(ctx context.Context, userID, text string) (string, bool) {
	return e.guard(userID, func() (string, bool) {
		sess := e.touch(userID)

		if !sess.InSong {
			return "", false
		}

		if sess.Position >= len(sess.Lines) {
			return e.finishSong(sess), true
		}

		idx := match.Locate(text, sess.Lines, sess.Position, true, e.cfg.MatchThreshold)
		if idx < 0 {
			expected := sess.Lines[sess.Position].Text
			similarity := match.Score(text, expected)
			return config.Render(e.cfg.Messages.MatchFailed, map[string]string{
				"similarity": strconv.Itoa(similarity),
				"user_input": text,
				"expected":   expected,
			}), true
		}

		if idx+1 >= len(sess.Lines) {
			// The user sang the final line; nothing left to answer with.
			return e.finishSong(sess), true
		}

		reply := sess.Lines[idx+1].Text
		sess.Position = idx + 2
		if sess.Position >= len(sess.Lines) {
			// The answer was the final line: one combined message, not two.
			return reply + "\n" + e.finishSong(sess), true
		}
		return reply, true
	})
}

// Exit handles the explicit exit command, dropping the session entirely.
func (e *Engine) Exit(userID string) (string, bool) {
	return e.guard(userID, func() (string, bool) {
		if !e.store.Remove(userID) {
			return "", false
		}
		logger.Info(fmt.Sprintf("user %s left the game", userID))
		return e.cfg.Messages.ExitGame, true
	})
}

// finishSong transitions the session back to idle and renders the
// completion notice.
func (e *Engine) finishSong(sess *Session) string {
	lastLine := ""
	if len(sess.Lines) > 0 {
		lastLine = sess.Lines[len(sess.Lines)-1].Text
	}
	sess.resetGame()
	return config.Render(e.cfg.Messages.SongComplete, map[string]string{
		"last_line": lastLine,
	})
}

// touch fetches the session and lazily expires a stale game before the
// message is processed: past the timeout the game is over and the message
// counts as a fresh, non-game message.
func (e *Engine) touch(userID string) *Session {
	sess, idle := e.store.GetOrCreate(userID)
	if sess.InSong && idle > e.cfg.SessionTimeout {
		logger.Info(fmt.Sprintf("session for %s timed out after %s, leaving game", userID, idle.Round(0)))
		sess.resetGame()
	}
	return sess
}

// guard converts a panic during turn processing into a generic failure reply
// and an idle session, so a fault can never strand a user mid-game with an
// inconsistent position.
func (e *Engine) guard(userID string, fn func() (string, bool)) (reply string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(fmt.Sprintf("panic while handling message from %s: %v", userID, r))
			if sess, found := e.store.Peek(userID); found {
				sess.resetGame()
			}
			reply, ok = e.cfg.Messages.InternalError, true
		}
	}()
	return fn()
}

// resolveLines loads the parsed line sequence for a song: cache first, then
// the lookup collaborator, preferring the word-timed encoding and writing a
// successful parse back through the cache.
func (e *Engine) resolveLines(ctx context.Context, songID string) ([]lyrics.Line, bool) {
	if e.cache != nil {
		if lines, ok := e.cache.Get(ctx, songID); ok && len(lines) > 0 {
			logger.Debug(fmt.Sprintf("lyrics cache hit for song %s", songID))
			return lines, true
		}
	}

	raw := e.lookup.FetchLyrics(ctx, songID)
	if raw == nil {
		return nil, false
	}

	lines := lyrics.ParseWordTimed(raw.WordTimed)
	if len(lines) == 0 {
		lines = lyrics.ParseLineTimed(raw.LineTimed)
	}
	lines = lyrics.FilterMetadata(lines, e.cfg.MetadataKeywords)
	if len(lines) == 0 {
		return nil, false
	}

	if e.cache != nil {
		if err := e.cache.Put(ctx, songID, lines); err != nil {
			logger.Error(fmt.Sprintf("failed to cache lyrics for song %s: %v", songID, err))
		}
	}
	return lines, true
}
