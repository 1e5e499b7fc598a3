package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lyricduet/duetbot/internal/logger"
)

// Store owns every active session, keyed by user id. Sessions are created
// lazily and evicted either explicitly (exit) or by the periodic sweep.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	timeout  time.Duration
}

func NewStore(timeout time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		timeout:  timeout,
	}
}

// GetOrCreate returns the session for a user, creating it on first contact,
// and stamps LastActive. The returned duration is how long the session had
// been idle before this touch, so the caller can expire a stale game.
func (s *Store) GetOrCreate(userID string) (*Session, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &Session{UserID: userID, LastActive: now}
		s.sessions[userID] = sess
		return sess, 0
	}
	idle := now.Sub(sess.LastActive)
	sess.LastActive = now
	return sess, idle
}

// Touch resets a session's activity clock, used after slow work (lyric
// download) so the wait can't count against the session timeout.
func (s *Store) Touch(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[userID]; ok {
		sess.LastActive = time.Now()
	}
}

// Peek returns the session without creating one or touching LastActive.
func (s *Store) Peek(userID string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	return sess, ok
}

// Remove deletes a session and reports whether one existed.
func (s *Store) Remove(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[userID]
	delete(s.sessions, userID)
	return ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Snapshot returns copies of all sessions, for diagnostics output.
func (s *Store) Snapshot() []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		snapshot = append(snapshot, *sess)
	}
	return snapshot
}

// Sweep removes every session that is not in a song and has been idle for
// more than twice the session timeout. Sessions mid-song are never evicted,
// however stale; a stuck game only ends through exit or another message.
// Returns the number of sessions removed.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.sessions))
	for userID := range s.sessions {
		keys = append(keys, userID)
	}

	removed := 0
	for _, userID := range keys {
		sess := s.sessions[userID]
		if !sess.InSong && now.Sub(sess.LastActive) > 2*s.timeout {
			delete(s.sessions, userID)
			removed++
		}
	}
	return removed
}

// StartSweeper runs the periodic sweep until ctx is cancelled.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if n := s.Sweep(now); n > 0 {
					logger.Debug(fmt.Sprintf("swept %d stale sessions", n))
				}
			}
		}
	}()
}
