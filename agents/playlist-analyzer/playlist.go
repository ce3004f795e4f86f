package playlistanalyzer

import (
	"regexp"
	"strings"

	"playlist-insights/shared/apperrors"
)

var playlistIDPattern = regexp.MustCompile(`list=([\w-]+)`)

// ExtractPlaylistID pulls the playlist token out of anything carrying a
// list= parameter: watch URLs, playlist URLs, or a bare query string.
func ExtractPlaylistID(playlistURL string) (string, error) {
	m := playlistIDPattern.FindStringSubmatch(strings.TrimSpace(playlistURL))
	if m == nil {
		return "", apperrors.NewValidationError("Invalid YouTube playlist URL. Please check the format.", "playlist_url", playlistURL)
	}
	return m[1], nil
}
