package models

import "time"

// VideoRecord is one playlist entry with the metadata needed for statistics.
type VideoRecord struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	ChannelTitle    string    `json:"channel_title"`
	PublishedAt     time.Time `json:"published_at"`
	Duration        string    `json:"duration"`
	DurationSeconds int       `json:"duration_seconds"`
	ViewCount       uint64    `json:"view_count"`
	LikeCount       uint64    `json:"like_count"`
	URL             string    `json:"url"`
}

// PlaylistSummary holds the playlist-level metadata. A nil *PlaylistSummary
// means the lookup found no playlist with that id.
type PlaylistSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channel_title"`
	Description  string `json:"description"`
}

type AnalysisResult struct {
	RunID       string           `json:"run_id"`
	PlaylistID  string           `json:"playlist_id"`
	Playlist    *PlaylistSummary `json:"playlist,omitempty"`
	Videos      []*VideoRecord   `json:"videos"`
	Stats       *AggregateStats  `json:"stats"`
	CompletedAt time.Time        `json:"completed_at"`
}

// PlaylistTitle returns the playlist title, or fallback when the lookup
// returned nothing.
func (r *AnalysisResult) PlaylistTitle(fallback string) string {
	if r == nil || r.Playlist == nil || r.Playlist.Title == "" {
		return fallback
	}
	return r.Playlist.Title
}
