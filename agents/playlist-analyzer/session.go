package playlistanalyzer

import (
	"sync"

	"playlist-insights/agents/playlist-analyzer/stats"
	"playlist-insights/internal/models"
	"playlist-insights/shared/apperrors"
	"playlist-insights/shared/monitoring"
)

// Session holds the most recent successful analysis. Readers (the HTTP
// surface, the binge estimator) and the analysis run may use it concurrently.
type Session struct {
	mu      sync.RWMutex
	current *models.AnalysisResult
}

var _ monitoring.ResultSource = (*Session)(nil)

func NewSession() *Session {
	return &Session{}
}

// Store replaces the current result. Only completed runs are stored.
func (s *Session) Store(result *models.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = result
}

// Current returns the last stored result, or nil.
func (s *Session) Current() *models.AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// EstimateBinge applies a daily budget, given as free-form hours and minutes,
// to the current result.
func (s *Session) EstimateBinge(hours, minutes string) (*models.BingeEstimate, error) {
	result := s.Current()
	if result == nil || result.Stats == nil {
		return nil, apperrors.NewValidationError("Analyze a playlist before estimating watch time.", "result", nil)
	}

	daily := stats.ParseWatchBudget(hours, minutes)
	days, err := stats.EstimateBingeDays(result.Stats.TotalSeconds, daily)
	if err != nil {
		return nil, err
	}

	return &models.BingeEstimate{
		PlaylistID:   result.PlaylistID,
		TotalSeconds: result.Stats.TotalSeconds,
		DailySeconds: daily,
		Days:         days,
	}, nil
}
