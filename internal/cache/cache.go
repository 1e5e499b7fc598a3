// Package cache stores parsed lyric sequences in Redis, keyed by song id.
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	redisClient "github.com/go-redis/redis/v8"
	"github.com/lyricduet/duetbot/internal/logger"
	"github.com/lyricduet/duetbot/internal/lyrics"
	"github.com/lyricduet/duetbot/internal/utils/e"
)

type Manager struct {
	client *redisClient.Client
}

func New(redisURL, password string) (*Manager, error) {
	opt, err := redisClient.ParseURL(fmt.Sprintf("rediss://default:%s@%s", password, redisURL))
	if err != nil {
		return nil, e.Wrap("failed to parse redis url", err)
	}
	return &Manager{client: redisClient.NewClient(opt)}, nil
}

func lyricsKey(songID string) string {
	return "lyrics:" + songID
}

// Get returns the cached line sequence for a song. A miss, an unreachable
// server and a corrupt entry all come back as ok=false.
func (m *Manager) Get(ctx context.Context, songID string) ([]lyrics.Line, bool) {
	data, err := m.client.Get(ctx, lyricsKey(songID)).Bytes()
	if err != nil {
		if err != redisClient.Nil {
			logger.Error(fmt.Sprintf("failed to read lyrics cache for song %s: %v", songID, err))
		}
		return nil, false
	}
	var lines []lyrics.Line
	if err := json.Unmarshal(data, &lines); err != nil {
		logger.Error(fmt.Sprintf("corrupt lyrics cache entry for song %s: %v", songID, err))
		return nil, false
	}
	return lines, true
}

// Put writes a parsed line sequence through to Redis, with no expiry: parsed
// lyrics never go stale.
func (m *Manager) Put(ctx context.Context, songID string, lines []lyrics.Line) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return e.Wrap("failed to marshal lyrics", err)
	}
	return m.client.Set(ctx, lyricsKey(songID), data, 0).Err()
}

func (m *Manager) Close() error {
	return m.client.Close()
}
