package email

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"playlist-insights/internal/models"
	"playlist-insights/shared/config"
	"playlist-insights/shared/format"
)

//go:embed templates/playlist_report.html
var reportTemplate string

var insightTitles = map[models.InsightKind]string{
	models.InsightSummary:      "Summary",
	models.InsightLearningPath: "Learning path",
	models.InsightFAQ:          "FAQ",
}

var tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"clock": format.Clock,
	"count": format.Count,
	"cards": format.InsightCards,
	"average": func(s *models.AggregateStats) string {
		return format.Average(s.AverageSeconds())
	},
	"label":   func(i int) string { return models.HistogramLabels[i] },
	"ordinal": func(i int) int { return i + 1 },
	"insightTitle": func(kind models.InsightKind) string {
		if title, ok := insightTitles[kind]; ok {
			return title
		}
		return string(kind)
	},
}).Parse(reportTemplate))

type Sender struct {
	config *config.EmailConfig
	logger *zap.Logger
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSender(cfg *config.EmailConfig, logger *zap.Logger) *Sender {
	return &Sender{
		config: cfg,
		logger: logger,
		send:   smtp.SendMail,
	}
}

// SendPlaylistReport emails one analyzed playlist.
func (s *Sender) SendPlaylistReport(report *models.PlaylistReport) error {
	if report == nil || report.Result == nil || report.Result.Stats == nil {
		return fmt.Errorf("report cannot be empty")
	}

	subject := fmt.Sprintf("Playlist Insights - %s: %d videos, %s (%s)",
		report.Result.PlaylistTitle("Untitled playlist"),
		report.Result.Stats.VideoCount,
		format.Clock(report.Result.Stats.TotalSeconds),
		report.Date.Format("Jan 2, 2006"))

	body, err := GenerateBody(report)
	if err != nil {
		return fmt.Errorf("failed to generate email body: %w", err)
	}

	if err := s.SendHTML(subject, body); err != nil {
		return err
	}

	s.logger.Info("Report emailed",
		zap.String("playlist_id", report.Result.PlaylistID),
		zap.String("to", s.config.ToEmail),
	)
	return nil
}

// SendHTML sends an email with custom HTML content
func (s *Sender) SendHTML(subject, htmlBody string) error {
	return s.sendViaSMTP(subject, htmlBody)
}

func (s *Sender) sendViaSMTP(subject, body string) error {
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.SMTPServer)

	to := []string{s.config.ToEmail}
	msg := []byte(fmt.Sprintf(`To: %s
From: %s
Subject: %s
MIME-Version: 1.0
Content-Type: text/html; charset=UTF-8

%s`, s.config.ToEmail, s.config.FromEmail, subject, body))

	addr := fmt.Sprintf("%s:%d", s.config.SMTPServer, s.config.SMTPPort)
	if err := s.send(addr, auth, s.config.FromEmail, to, msg); err != nil {
		return fmt.Errorf("failed to send email via %s: %w", addr, err)
	}
	return nil
}

// GenerateBody renders the HTML report.
func GenerateBody(report *models.PlaylistReport) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, report); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
