package email

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"playlist-insights/internal/models"
	"playlist-insights/shared/config"
)

func sampleReport() *models.PlaylistReport {
	videos := []*models.VideoRecord{
		{ID: "a", Title: "Intro & Setup", URL: "https://www.youtube.com/watch?v=a", DurationSeconds: 240, ViewCount: 1234567, LikeCount: 42},
		{ID: "b", Title: "Channels", URL: "https://www.youtube.com/watch?v=b", DurationSeconds: 3600, ViewCount: 10, LikeCount: 3},
	}
	return &models.PlaylistReport{
		Date: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		Result: &models.AnalysisResult{
			PlaylistID: "PL1",
			Playlist:   &models.PlaylistSummary{Title: "Go Course", ChannelTitle: "Gophers"},
			Videos:     videos,
			Stats: &models.AggregateStats{
				VideoCount:   2,
				TotalSeconds: 3840,
				Longest:      videos[1],
				Shortest:     videos[0],
				MostViewed:   videos[0],
				MostLiked:    videos[0],
				Histogram:    models.Histogram{1, 0, 0, 0, 1},
			},
		},
		Insights: []*models.Insight{
			{Kind: models.InsightFAQ, Text: "**Q:** Is it free?\nA: Yes.", Provider: "Gemini", Model: "gemini-2.0-flash"},
		},
		BingeDays: 2,
		DailyTime: "0h 45m",
	}
}

func TestGenerateBody(t *testing.T) {
	body, err := GenerateBody(sampleReport())
	require.NoError(t, err)

	assert.Contains(t, body, "Go Course")
	assert.Contains(t, body, "Gophers")
	assert.Contains(t, body, "Mar 1, 2025")
	assert.Contains(t, body, "01:04:00")
	assert.Contains(t, body, "1,234,567")
	assert.Contains(t, body, "Intro &amp; Setup", "titles are HTML-escaped")
	assert.Contains(t, body, "2 day(s) at 0h 45m per day")
	assert.Contains(t, body, "<h3>FAQ</h3>")
	assert.Contains(t, body, "60m+")
	assert.NotContains(t, body, "Not available")
}

func TestGenerateBodyWithoutPlaylistMetadata(t *testing.T) {
	report := sampleReport()
	report.Result.Playlist = nil
	report.Insights = nil
	report.DailyTime = ""

	body, err := GenerateBody(report)
	require.NoError(t, err)
	assert.Contains(t, body, "Untitled playlist")
	assert.NotContains(t, body, "AI insights")
	assert.NotContains(t, body, "Binge estimate")
}

func TestSendPlaylistReport(t *testing.T) {
	cfg := &config.EmailConfig{
		SMTPServer: "smtp.example.com",
		SMTPPort:   587,
		FromEmail:  "bot@example.com",
		ToEmail:    "me@example.com",
	}
	sender := NewSender(cfg, zap.NewNop())

	var gotAddr string
	var gotTo []string
	var gotMsg string
	sender.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr = addr
		gotTo = to
		gotMsg = string(msg)
		return nil
	}

	require.NoError(t, sender.SendPlaylistReport(sampleReport()))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"me@example.com"}, gotTo)
	assert.True(t, strings.HasPrefix(gotMsg, "To: me@example.com\nFrom: bot@example.com\n"))
	assert.Contains(t, gotMsg, "Subject: Playlist Insights - Go Course: 2 videos, 01:04:00 (Mar 1, 2025)")
	assert.Contains(t, gotMsg, "Content-Type: text/html")
}

func TestSendPlaylistReportErrors(t *testing.T) {
	sender := NewSender(&config.EmailConfig{SMTPServer: "smtp.example.com", SMTPPort: 25}, zap.NewNop())
	sender.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	assert.Error(t, sender.SendPlaylistReport(nil))
	assert.Error(t, sender.SendPlaylistReport(&models.PlaylistReport{}))

	err := sender.SendPlaylistReport(sampleReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
