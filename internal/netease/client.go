// Package netease talks to a NetEase-compatible music API (cloudsearch and
// lyric endpoints). Every failure mode — network error, timeout, non-200
// status, bad payload — collapses to an absent result; callers only ever see
// "nothing found".
package netease

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lyricduet/duetbot/internal/logger"
)

// Song is one search hit. Identity is ID; the rest is display metadata.
type Song struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
}

// RawLyrics carries the raw lyric text of a song in whichever encodings the
// API returned. WordTimed is preferred by callers when both are present.
type RawLyrics struct {
	WordTimed string // yrc: per-word timing markers
	LineTimed string // lrc: one tag per line
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type searchResponse struct {
	Code   int `json:"code"`
	Result struct {
		Songs []json.RawMessage `json:"songs"`
	} `json:"result"`
}

type searchSong struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"ar"`
	Album struct {
		Name string `json:"name"`
	} `json:"al"`
}

// Search queries /cloudsearch for single tracks. A nil result means nothing
// usable came back. Individual malformed entries are skipped, the rest kept.
func (c *Client) Search(ctx context.Context, keyword string, limit int) []Song {
	params := url.Values{}
	params.Set("keywords", keyword)
	params.Set("type", "1") // single tracks
	params.Set("limit", strconv.Itoa(limit))

	var payload searchResponse
	if !c.getJSON(ctx, "/cloudsearch", params, &payload) {
		return nil
	}
	if payload.Code != 200 || len(payload.Result.Songs) == 0 {
		logger.Debug(fmt.Sprintf("search returned no songs for %q (code %d)", keyword, payload.Code))
		return nil
	}

	songs := make([]Song, 0, len(payload.Result.Songs))
	for _, raw := range payload.Result.Songs {
		var entry searchSong
		if err := json.Unmarshal(raw, &entry); err != nil || entry.ID == 0 {
			continue
		}
		song := Song{
			ID:    strconv.FormatInt(entry.ID, 10),
			Name:  entry.Name,
			Album: entry.Album.Name,
		}
		if len(entry.Artists) > 0 {
			song.Artist = entry.Artists[0].Name
		}
		songs = append(songs, song)
	}
	if len(songs) == 0 {
		return nil
	}
	return songs
}

type lyricResponse struct {
	Code int `json:"code"`
	Yrc  struct {
		Lyric string `json:"lyric"`
	} `json:"yrc"`
	Lrc struct {
		Lyric string `json:"lyric"`
	} `json:"lrc"`
}

// FetchLyrics queries /lyric for a song id. A nil result means the song has
// no usable lyric text in either encoding.
func (c *Client) FetchLyrics(ctx context.Context, songID string) *RawLyrics {
	params := url.Values{}
	params.Set("id", songID)

	var payload lyricResponse
	if !c.getJSON(ctx, "/lyric", params, &payload) {
		return nil
	}
	if payload.Code != 200 {
		logger.Debug(fmt.Sprintf("lyric lookup failed for song %s (code %d)", songID, payload.Code))
		return nil
	}
	if payload.Yrc.Lyric == "" && payload.Lrc.Lyric == "" {
		return nil
	}
	return &RawLyrics{
		WordTimed: payload.Yrc.Lyric,
		LineTimed: payload.Lrc.Lyric,
	}
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) bool {
	requestURL := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to build request for %s: %v", path, err))
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error(fmt.Sprintf("request to %s failed: %v", path, err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error(fmt.Sprintf("request to %s returned status %d", path, resp.StatusCode))
		return false
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		logger.Error(fmt.Sprintf("failed to decode %s response: %v", path, err))
		return false
	}
	return true
}
