package stats

import "playlist-insights/internal/models"

// bucketUpperBounds are the exclusive upper bounds, in seconds, of every
// histogram bucket but the last.
var bucketUpperBounds = [models.HistogramBuckets - 1]int{5 * 60, 15 * 60, 30 * 60, 60 * 60}

// Aggregate computes playlist statistics in a single pass over videos.
//
// Leaders only change on a strictly greater (or, for Shortest, strictly
// smaller) value, so ties keep the earliest video in playlist order.
func Aggregate(videos []*models.VideoRecord) *models.AggregateStats {
	stats := &models.AggregateStats{}

	for _, video := range videos {
		if video == nil {
			continue
		}

		stats.VideoCount++
		stats.TotalSeconds += video.DurationSeconds
		stats.Histogram[BucketIndex(video.DurationSeconds)]++

		if stats.Longest == nil || video.DurationSeconds > stats.Longest.DurationSeconds {
			stats.Longest = video
		}
		if stats.Shortest == nil || video.DurationSeconds < stats.Shortest.DurationSeconds {
			stats.Shortest = video
		}
		if stats.MostViewed == nil || video.ViewCount > stats.MostViewed.ViewCount {
			stats.MostViewed = video
		}
		if stats.MostLiked == nil || video.LikeCount > stats.MostLiked.LikeCount {
			stats.MostLiked = video
		}
	}

	return stats
}

// BucketIndex returns the histogram bucket for a duration. Lower bounds are
// inclusive: exactly five minutes lands in the 5-15m bucket.
func BucketIndex(durationSeconds int) int {
	for i, upper := range bucketUpperBounds {
		if durationSeconds < upper {
			return i
		}
	}
	return models.HistogramBuckets - 1
}
