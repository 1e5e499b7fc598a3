package netease

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL)
}

func TestSearch(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cloudsearch", r.URL.Path)
		assert.Equal(t, "晴天", r.URL.Query().Get("keywords"))
		assert.Equal(t, "1", r.URL.Query().Get("type"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"code":200,"result":{"songs":[
			{"id":186016,"name":"晴天","ar":[{"name":"周杰伦"}],"al":{"name":"叶惠美"}},
			{"id":"not-a-number","name":"broken entry"},
			{"id":12345,"name":"No Artist","ar":[],"al":{}}
		]}}`))
	})

	songs := client.Search(context.Background(), "晴天", 5)
	require.Len(t, songs, 2, "malformed entries are skipped, not fatal")
	assert.Equal(t, Song{ID: "186016", Name: "晴天", Artist: "周杰伦", Album: "叶惠美"}, songs[0])
	assert.Equal(t, Song{ID: "12345", Name: "No Artist"}, songs[1])
}

func TestSearchNon200Status(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	assert.Nil(t, client.Search(context.Background(), "x", 5))
}

func TestSearchErrorCode(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":400,"result":{}}`))
	})
	assert.Nil(t, client.Search(context.Background(), "x", 5))
}

func TestSearchMalformedPayload(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	})
	assert.Nil(t, client.Search(context.Background(), "x", 5))
}

func TestSearchEmptyResult(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"result":{"songs":[]}}`))
	})
	assert.Nil(t, client.Search(context.Background(), "x", 5))
}

func TestFetchLyricsPrefersNothingLost(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/lyric", r.URL.Path)
		assert.Equal(t, "186016", r.URL.Query().Get("id"))
		w.Write([]byte(`{"code":200,
			"yrc":{"lyric":"[100,200](100,200,0)word timed"},
			"lrc":{"lyric":"[00:00.10]line timed"}}`))
	})

	raw := client.FetchLyrics(context.Background(), "186016")
	require.NotNil(t, raw)
	assert.Contains(t, raw.WordTimed, "word timed")
	assert.Contains(t, raw.LineTimed, "line timed")
}

func TestFetchLyricsLineTimedOnly(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"lrc":{"lyric":"[00:01.00]hello"}}`))
	})

	raw := client.FetchLyrics(context.Background(), "1")
	require.NotNil(t, raw)
	assert.Empty(t, raw.WordTimed)
	assert.Equal(t, "[00:01.00]hello", raw.LineTimed)
}

func TestFetchLyricsErrorCode(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":404}`))
	})
	assert.Nil(t, client.FetchLyrics(context.Background(), "1"))
}

func TestFetchLyricsEmptyBoth(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"yrc":{"lyric":""},"lrc":{"lyric":""}}`))
	})
	assert.Nil(t, client.FetchLyrics(context.Background(), "1"))
}

func TestFetchLyricsServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(server.URL)
	server.Close()
	assert.Nil(t, client.FetchLyrics(context.Background(), "1"))
}
