package models

// HistogramBuckets is the number of duration ranges in a Histogram.
const HistogramBuckets = 5

// HistogramLabels names each bucket, in bucket order.
var HistogramLabels = [HistogramBuckets]string{"0-5m", "5-15m", "15-30m", "30-60m", "60m+"}

// Histogram counts videos per duration range: [0,5), [5,15), [15,30),
// [30,60) and [60,inf) minutes.
type Histogram [HistogramBuckets]int

// AggregateStats is the result of one pass over a playlist's videos. The
// leader fields are nil when the input was empty and otherwise point into the
// slice the stats were computed from.
type AggregateStats struct {
	VideoCount   int          `json:"video_count"`
	TotalSeconds int          `json:"total_seconds"`
	Longest      *VideoRecord `json:"longest,omitempty"`
	Shortest     *VideoRecord `json:"shortest,omitempty"`
	MostViewed   *VideoRecord `json:"most_viewed,omitempty"`
	MostLiked    *VideoRecord `json:"most_liked,omitempty"`
	Histogram    Histogram    `json:"histogram"`
}

// AverageSeconds returns the mean video duration. ok is false for an empty
// playlist, where the average is undefined.
func (s *AggregateStats) AverageSeconds() (avg float64, ok bool) {
	if s == nil || s.VideoCount == 0 {
		return 0, false
	}
	return float64(s.TotalSeconds) / float64(s.VideoCount), true
}
