package format

import "playlist-insights/internal/models"

const notAvailable = "Not available"

// InsightCard is one of the headline facts shown above the video list.
type InsightCard struct {
	Title string
	Video *models.VideoRecord
	Stat  string
}

// InsightCards returns the longest, shortest, most viewed and most liked
// videos with their formatted figure. Missing leaders keep a nil Video.
func InsightCards(s *models.AggregateStats) []InsightCard {
	if s == nil {
		s = &models.AggregateStats{}
	}

	card := func(title string, v *models.VideoRecord, stat func(*models.VideoRecord) string) InsightCard {
		c := InsightCard{Title: title, Video: v, Stat: notAvailable}
		if v != nil {
			c.Stat = stat(v)
		}
		return c
	}

	return []InsightCard{
		card("Longest Video", s.Longest, func(v *models.VideoRecord) string { return Clock(v.DurationSeconds) }),
		card("Shortest Video", s.Shortest, func(v *models.VideoRecord) string { return Clock(v.DurationSeconds) }),
		card("Most Popular", s.MostViewed, func(v *models.VideoRecord) string { return Count(v.ViewCount) + " views" }),
		card("Most Liked", s.MostLiked, func(v *models.VideoRecord) string { return Count(v.LikeCount) + " likes" }),
	}
}
