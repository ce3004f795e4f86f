package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves a two-video playlist in the Data API v3 wire format.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	respond := func(w http.ResponseWriter, body any) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(body))
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/playlistItems"):
			respond(w, map[string]any{"items": []any{
				map[string]any{"contentDetails": map[string]any{"videoId": "v1"}},
				map[string]any{"contentDetails": map[string]any{"videoId": "v2"}},
			}})
		case strings.HasSuffix(r.URL.Path, "/playlists"):
			respond(w, map[string]any{"items": []any{
				map[string]any{"id": "PLcli", "snippet": map[string]any{"title": "CLI Course", "channelTitle": "Gophers"}},
			}})
		case strings.HasSuffix(r.URL.Path, "/videos"):
			respond(w, map[string]any{"items": []any{
				map[string]any{
					"id":             "v1",
					"snippet":        map[string]any{"title": "Part One"},
					"contentDetails": map[string]any{"duration": "PT1H"},
					"statistics":     map[string]any{"viewCount": "2500", "likeCount": "40"},
				},
				map[string]any{
					"id":             "v2",
					"snippet":        map[string]any{"title": "Part Two"},
					"contentDetails": map[string]any{"duration": "PT30M"},
					"statistics":     map[string]any{"viewCount": "900", "likeCount": "12"},
				},
			}})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func writeConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("YOUTUBE_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FILE", "")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAnalyzeCommand(t *testing.T) {
	server := fakeAPI(t)
	writeConfig(t, "youtube:\n  endpoint: "+server.URL+"/\n")

	out, err := execute(t, "analyze", "--api-key", "test-key", "--hours", "1", "--minutes", "0",
		"https://www.youtube.com/playlist?list=PLcli")
	require.NoError(t, err)

	assert.Contains(t, out, "CLI Course")
	assert.Contains(t, out, "01:30:00")
	assert.Contains(t, out, "2,500")
	assert.Contains(t, out, "It will take you approx. 2 day(s) to finish.")
}

func TestAnalyzeCommandJSON(t *testing.T) {
	server := fakeAPI(t)
	writeConfig(t, "youtube:\n  api_key: file-key\n  endpoint: "+server.URL+"/\n")

	out, err := execute(t, "analyze", "--json", "https://www.youtube.com/playlist?list=PLcli")
	require.NoError(t, err)

	var doc struct {
		Result struct {
			PlaylistID string `json:"playlist_id"`
			Stats      struct {
				VideoCount   int `json:"video_count"`
				TotalSeconds int `json:"total_seconds"`
			} `json:"stats"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "PLcli", doc.Result.PlaylistID)
	assert.Equal(t, 2, doc.Result.Stats.VideoCount)
	assert.Equal(t, 5400, doc.Result.Stats.TotalSeconds)
}

func TestBingeCommand(t *testing.T) {
	server := fakeAPI(t)
	writeConfig(t, "youtube:\n  endpoint: "+server.URL+"/\n")

	out, err := execute(t, "binge", "--api-key", "k", "--minutes", "45", "https://www.youtube.com/playlist?list=PLcli")
	require.NoError(t, err)
	assert.Equal(t, "It will take you approx. 2 day(s) to finish.\n", out)

	_, err = execute(t, "binge", "--api-key", "k", "https://www.youtube.com/playlist?list=PLcli")
	require.Error(t, err)
	assert.Equal(t, "Please enter a valid watch time.", err.Error())
}

func TestAnalyzeCommandUserErrors(t *testing.T) {
	writeConfig(t, "")

	_, err := execute(t, "analyze", "https://www.youtube.com/playlist?list=PLcli")
	require.Error(t, err)
	assert.Equal(t, "Please provide both a playlist URL and a Google Cloud API key.", err.Error())

	_, err = execute(t, "analyze", "--api-key", "k", "https://www.youtube.com/watch?v=abc")
	require.Error(t, err)
	assert.Equal(t, "Invalid YouTube playlist URL. Please check the format.", err.Error())

	_, err = execute(t, "analyze", "--api-key", "k", "--insight", "poem", "https://www.youtube.com/playlist?list=PLcli")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown insight")
}

func TestWatchCommandRequiresPlaylists(t *testing.T) {
	writeConfig(t, "youtube:\n  api_key: k\n")

	_, err := execute(t, "watch", "--once")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch.playlists")
}
