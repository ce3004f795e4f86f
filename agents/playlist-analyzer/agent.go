package playlistanalyzer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"playlist-insights/agents/playlist-analyzer/stats"
	"playlist-insights/agents/playlist-analyzer/youtube"
	"playlist-insights/internal/models"
	"playlist-insights/shared/ai"
	"playlist-insights/shared/apperrors"
	"playlist-insights/shared/config"
	"playlist-insights/shared/email"
	"playlist-insights/shared/format"
	"playlist-insights/shared/scheduler"
	"playlist-insights/shared/storage"
)

// VideoSource is the remote side of an analysis run.
type VideoSource interface {
	PlaylistDetails(ctx context.Context, playlistID string) (*models.PlaylistSummary, error)
	PlaylistItems(ctx context.Context, playlistID string) ([]string, error)
	VideoDetails(ctx context.Context, videoIDs []string) ([]*models.VideoRecord, error)
}

type InsightGenerator interface {
	GenerateInsight(ctx context.Context, kind models.InsightKind, result *models.AnalysisResult) (*models.Insight, error)
}

type ReportSender interface {
	SendPlaylistReport(report *models.PlaylistReport) error
}

// PlaylistAgent implements the scheduler.Agent interface
type PlaylistAgent struct {
	config   *config.Config
	logger   *zap.Logger
	session  *Session
	source   VideoSource
	insights InsightGenerator
	reports  ReportSender
	tracker  *storage.ReportTracker
	now      func() time.Time
}

var _ scheduler.Agent = (*PlaylistAgent)(nil)

type Option func(*PlaylistAgent)

func WithVideoSource(src VideoSource) Option {
	return func(p *PlaylistAgent) { p.source = src }
}

func WithInsightGenerator(gen InsightGenerator) Option {
	return func(p *PlaylistAgent) { p.insights = gen }
}

func WithReportSender(sender ReportSender) Option {
	return func(p *PlaylistAgent) { p.reports = sender }
}

func NewPlaylistAgent(cfg *config.Config, logger *zap.Logger, opts ...Option) *PlaylistAgent {
	p := &PlaylistAgent{
		config:  cfg,
		logger:  logger,
		session: NewSession(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *PlaylistAgent) Name() string {
	return "Playlist Analyzer"
}

// Session exposes the committed results for readers such as the HTTP surface.
func (p *PlaylistAgent) Session() *Session {
	return p.session
}

func (p *PlaylistAgent) Initialize() error {
	p.logger.Info("Initializing agent", zap.String("agent", p.Name()))

	if p.source == nil && p.config.YouTube.APIKey != "" {
		client, err := youtube.NewClient(context.Background(), &p.config.YouTube, p.logger)
		if err != nil {
			return fmt.Errorf("failed to create YouTube client: %w", err)
		}
		p.source = client
		p.logger.Info("YouTube client initialized")
	}

	if p.reports == nil && p.config.Email.Enabled() {
		p.reports = email.NewSender(&p.config.Email, p.logger)
		p.logger.Info("Email sender initialized", zap.String("to", p.config.Email.ToEmail))
	}

	if p.tracker == nil && p.config.Watch.StateDir != "" {
		maxAge := time.Duration(p.config.Watch.ResendAfterHours) * time.Hour
		tracker, err := storage.NewReportTracker(p.config.Watch.StateDir, maxAge)
		if err != nil {
			return fmt.Errorf("failed to create report tracker: %w", err)
		}
		p.tracker = tracker
		p.logger.Info("Report tracker initialized", zap.Int("tracked", tracker.Count()))
	}

	return nil
}

// Analyze runs the whole pipeline for one playlist URL: playlist lookup,
// item pagination, batched video details, then aggregation. The session is
// only updated when every step succeeds.
func (p *PlaylistAgent) Analyze(ctx context.Context, playlistURL string) (*models.AnalysisResult, error) {
	playlistURL = strings.TrimSpace(playlistURL)
	if playlistURL == "" || p.config.YouTube.APIKey == "" {
		return nil, apperrors.NewValidationError("Please provide both a playlist URL and a Google Cloud API key.", "playlist_url", playlistURL)
	}

	playlistID, err := ExtractPlaylistID(playlistURL)
	if err != nil {
		return nil, err
	}

	if p.source == nil {
		if err := p.Initialize(); err != nil {
			return nil, err
		}
	}

	start := p.now()
	log := p.logger.With(zap.String("playlist_id", playlistID))

	summary, err := p.source.PlaylistDetails(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist details: %w", err)
	}
	if summary == nil {
		log.Warn("Playlist lookup returned no match, continuing with items")
	}

	videoIDs, err := p.source.PlaylistItems(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist items: %w", err)
	}
	if len(videoIDs) == 0 {
		return nil, apperrors.NewEmptyResultError("This playlist is empty or private.", playlistID)
	}

	videos, err := p.source.VideoDetails(ctx, videoIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video details: %w", err)
	}
	if len(videos) == 0 {
		return nil, apperrors.NewEmptyResultError("Could not retrieve video details.", playlistID)
	}

	result := &models.AnalysisResult{
		RunID:       uuid.NewString(),
		PlaylistID:  playlistID,
		Playlist:    summary,
		Videos:      videos,
		Stats:       stats.Aggregate(videos),
		CompletedAt: p.now(),
	}

	p.session.Store(result)

	log.Info("Playlist analyzed",
		zap.String("run_id", result.RunID),
		zap.Int("items", len(videoIDs)),
		zap.Int("videos", result.Stats.VideoCount),
		zap.Int("total_seconds", result.Stats.TotalSeconds),
		zap.Duration("took", result.CompletedAt.Sub(start)),
	)

	return result, nil
}

// GenerateInsight produces one insight for the current session result.
func (p *PlaylistAgent) GenerateInsight(ctx context.Context, kind models.InsightKind) (*models.Insight, error) {
	result := p.session.Current()
	if result == nil {
		return nil, apperrors.NewValidationError("Analyze a playlist before generating insights.", "result", nil)
	}
	return p.generateInsight(ctx, kind, result)
}

func (p *PlaylistAgent) generateInsight(ctx context.Context, kind models.InsightKind, result *models.AnalysisResult) (*models.Insight, error) {
	if p.insights == nil {
		analyzer, err := ai.NewAnalyzer(ctx, &p.config.AI, p.logger)
		if err != nil {
			return nil, err
		}
		p.insights = analyzer
	}

	return p.insights.GenerateInsight(ctx, kind, result)
}

// RunOnce analyzes every watched playlist, generates the configured
// insights and emails one report per playlist.
func (p *PlaylistAgent) RunOnce(ctx context.Context, events *scheduler.AgentEvents) error {
	startTime := p.now()
	metrics := &PlaylistMetrics{Playlists: len(p.config.Watch.Playlists)}

	kinds, err := p.watchInsightKinds()
	if err != nil {
		return err
	}

	var failures []string
	for i, playlistURL := range p.config.Watch.Playlists {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		p.logger.Info("Analyzing watched playlist",
			zap.Int("index", i+1),
			zap.Int("total", len(p.config.Watch.Playlists)),
			zap.String("url", playlistURL),
		)

		result, err := p.Analyze(ctx, playlistURL)
		if err != nil {
			p.logger.Warn("Playlist analysis failed",
				zap.String("url", playlistURL),
				zap.String("message", apperrors.UserMessage(err)),
				zap.Error(err),
			)
			failures = append(failures, playlistURL)
			continue
		}

		metrics.Analyzed++
		metrics.Videos += result.Stats.VideoCount
		metrics.TotalSeconds += result.Stats.TotalSeconds

		if p.tracker != nil && p.tracker.IsUnchanged(result) {
			p.logger.Info("Playlist unchanged since last report, skipping", zap.String("playlist_id", result.PlaylistID))
			metrics.Unchanged++
			continue
		}

		report := p.buildReport(ctx, result, kinds, metrics)

		if p.reports != nil {
			if err := p.reports.SendPlaylistReport(report); err != nil {
				p.logger.Warn("Failed to send report", zap.String("playlist_id", result.PlaylistID), zap.Error(err))
				metrics.EmailErrors++
				continue
			}
			metrics.ReportsSent++

			if p.tracker != nil {
				if err := p.tracker.MarkReported(result); err != nil {
					p.logger.Warn("Failed to record report", zap.String("playlist_id", result.PlaylistID), zap.Error(err))
				}
			}
		}
	}

	duration := p.now().Sub(startTime)
	metrics.Failures = len(failures)

	if metrics.Playlists > 0 && metrics.Analyzed == 0 {
		return fmt.Errorf("all %d watched playlists failed", metrics.Playlists)
	}

	if events != nil {
		if len(failures) > 0 || metrics.InsightErrors > 0 || metrics.EmailErrors > 0 {
			if events.OnPartialFailure != nil {
				events.OnPartialFailure(fmt.Errorf("%d playlist failures, %d insight errors, %d email errors",
					len(failures), metrics.InsightErrors, metrics.EmailErrors), duration)
			}
		}
		if events.OnSuccess != nil {
			events.OnSuccess(metrics, duration)
		}
	}

	return nil
}

func (p *PlaylistAgent) buildReport(ctx context.Context, result *models.AnalysisResult, kinds []models.InsightKind, metrics *PlaylistMetrics) *models.PlaylistReport {
	report := &models.PlaylistReport{
		Date:   p.now(),
		Result: result,
	}

	daily := stats.ParseWatchBudget(p.config.Watch.DailyHours, p.config.Watch.DailyMinutes)
	if daily > 0 {
		days, err := stats.EstimateBingeDays(result.Stats.TotalSeconds, daily)
		if err == nil {
			report.BingeDays = days
			report.DailyTime = format.Budget(daily)
		}
	}

	for _, kind := range kinds {
		insight, err := p.generateInsight(ctx, kind, result)
		if err != nil {
			p.logger.Warn("Insight generation failed",
				zap.String("kind", string(kind)),
				zap.String("playlist_id", result.PlaylistID),
				zap.Error(err),
			)
			metrics.InsightErrors++
			continue
		}
		report.Insights = append(report.Insights, insight)
		metrics.Insights++
	}

	return report
}

func (p *PlaylistAgent) watchInsightKinds() ([]models.InsightKind, error) {
	kinds := make([]models.InsightKind, 0, len(p.config.Watch.Insights))
	for _, name := range p.config.Watch.Insights {
		kind, err := ai.ParseInsightKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// PlaylistMetrics summarizes one scheduled run.
type PlaylistMetrics struct {
	Playlists     int
	Analyzed      int
	Failures      int
	Videos        int
	TotalSeconds  int
	Insights      int
	InsightErrors int
	ReportsSent   int
	EmailErrors   int
	Unchanged     int
}

func (m *PlaylistMetrics) GetSummary() string {
	return fmt.Sprintf("analyzed %d/%d playlists, %d videos (%s), %d insights, %d reports sent",
		m.Analyzed, m.Playlists, m.Videos, format.Clock(m.TotalSeconds), m.Insights, m.ReportsSent)
}
