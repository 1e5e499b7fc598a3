package game

import (
	"time"

	"github.com/lyricduet/duetbot/internal/lyrics"
	"github.com/lyricduet/duetbot/internal/netease"
)

// Session is one user's game progress. Position always points at the line
// the user is expected to sing next. Selecting and InSong are never both
// true. Fields are mutated only by the Engine, one message at a time.
type Session struct {
	UserID       string         `json:"user_id"`
	Song         *netease.Song  `json:"song,omitempty"`
	Lines        []lyrics.Line  `json:"-"`
	Position     int            `json:"position"`
	InSong       bool           `json:"in_song"`
	Selecting    bool           `json:"selecting"`
	Candidates   []netease.Song `json:"candidates,omitempty"`
	StartKeyword string         `json:"start_keyword,omitempty"`
	LastActive   time.Time      `json:"last_active"`
}

// Engaged reports whether the user is mid-game or choosing a song.
func (s *Session) Engaged() bool {
	return s.Selecting || s.InSong
}

// resetGame discards game progress while keeping the session record itself.
func (s *Session) resetGame() {
	s.Song = nil
	s.Lines = nil
	s.Position = 0
	s.InSong = false
	s.Selecting = false
	s.Candidates = nil
	s.StartKeyword = ""
}
