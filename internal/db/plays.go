package db

import (
	"context"
	"time"

	"github.com/lyricduet/duetbot/internal/netease"
	"github.com/lyricduet/duetbot/internal/utils/e"
)

// EnsureSchema creates the plays table when it doesn't exist yet.
func (m *Manager) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := `CREATE TABLE IF NOT EXISTS plays (
		song_id TEXT PRIMARY KEY,
		name    TEXT NOT NULL DEFAULT '',
		artist  TEXT NOT NULL DEFAULT '',
		counter INTEGER NOT NULL DEFAULT 0
	)`
	if _, err := m.db.ExecContext(ctx, query); err != nil {
		return e.Wrap("failed to create plays table", err)
	}
	return nil
}

// RecordPlay bumps the play counter for a song, inserting the row on the
// first play.
func (m *Manager) RecordPlay(ctx context.Context, song netease.Song) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `INSERT INTO plays (song_id, name, artist, counter) VALUES (?, ?, ?, 1)
		ON CONFLICT(song_id) DO UPDATE SET counter = counter + 1`
	if _, err := m.db.ExecContext(ctx, query, song.ID, song.Name, song.Artist); err != nil {
		return e.Wrap("failed to record play", err)
	}
	return nil
}
