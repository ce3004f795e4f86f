package playlistanalyzer

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"playlist-insights/internal/models"
	"playlist-insights/shared/format"
)

// WriteReport renders a plain-text version of the dashboard: headline
// numbers, insight cards, the length histogram and the ordered video list.
func WriteReport(w io.Writer, result *models.AnalysisResult) error {
	if result == nil || result.Stats == nil {
		return fmt.Errorf("no analysis to report")
	}
	s := result.Stats
	avg, ok := s.AverageSeconds()

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Playlist:\t%s\n", result.PlaylistTitle("(untitled playlist)"))
	if result.Playlist != nil && result.Playlist.ChannelTitle != "" {
		fmt.Fprintf(tw, "Channel:\t%s\n", result.Playlist.ChannelTitle)
	}
	fmt.Fprintf(tw, "Videos:\t%d\n", s.VideoCount)
	fmt.Fprintf(tw, "Total duration:\t%s\n", format.Clock(s.TotalSeconds))
	fmt.Fprintf(tw, "Average duration:\t%s\n", format.Average(avg, ok))
	fmt.Fprintln(tw)

	for _, c := range format.InsightCards(s) {
		if c.Video == nil {
			fmt.Fprintf(tw, "%s:\t%s\n", c.Title, c.Stat)
			continue
		}
		fmt.Fprintf(tw, "%s:\t%s\t%s\n", c.Title, c.Video.Title, c.Stat)
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "Length distribution:")
	for i, label := range models.HistogramLabels {
		fmt.Fprintf(tw, "  %s\t%d\t%s\n", label, s.Histogram[i], strings.Repeat("#", s.Histogram[i]))
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "#\tTitle\tDuration\tViews\tLikes")
	for i, v := range result.Videos {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, v.Title,
			format.Clock(v.DurationSeconds), format.Count(v.ViewCount), format.Count(v.LikeCount))
	}

	return tw.Flush()
}
