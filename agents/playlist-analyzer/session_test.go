package playlistanalyzer

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"playlist-insights/internal/models"
	"playlist-insights/shared/apperrors"
	"playlist-insights/shared/monitoring"
)

func resultWithTotal(total int) *models.AnalysisResult {
	return &models.AnalysisResult{
		PlaylistID: "PLbinge",
		Stats:      &models.AggregateStats{VideoCount: 1, TotalSeconds: total},
	}
}

func TestSessionEstimateBinge(t *testing.T) {
	s := NewSession()
	s.Store(resultWithTotal(7200))

	estimate, err := s.EstimateBinge("1", "0")
	require.NoError(t, err)
	assert.Equal(t, 2, estimate.Days)
	assert.Equal(t, 3600, estimate.DailySeconds)
	assert.Equal(t, 7200, estimate.TotalSeconds)
	assert.Equal(t, "It will take you approx. 2 day(s) to finish.", estimate.Message())

	_, err = s.EstimateBinge("0", "0")
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "Please enter a valid watch time.", apperrors.UserMessage(err))

	_, err = s.EstimateBinge("", "")
	assert.True(t, apperrors.IsValidation(err))
}

func TestSessionEstimateBingeWithoutResult(t *testing.T) {
	_, err := NewSession().EstimateBinge("1", "0")
	assert.True(t, apperrors.IsValidation(err))
}

func TestSessionClear(t *testing.T) {
	s := NewSession()
	s.Store(resultWithTotal(60))
	require.NotNil(t, s.Current())

	s.Clear()
	assert.Nil(t, s.Current())

	_, err := s.EstimateBinge("1", "0")
	assert.True(t, apperrors.IsValidation(err))
}

func TestSessionClearedOverHTTP(t *testing.T) {
	s := NewSession()
	s.Store(resultWithTotal(60))
	router := monitoring.NewHealthServer(monitoring.NewMonitor(zap.NewNop()), "", s, zap.NewNop()).Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/latest", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Nil(t, s.Current())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/binge?hours=1", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionConcurrentAccess(t *testing.T) {
	s := NewSession()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(total int) {
			defer wg.Done()
			s.Store(resultWithTotal(total))
		}(3600 * (i + 1))
		go func() {
			defer wg.Done()
			if r := s.Current(); r != nil {
				_ = r.Stats.TotalSeconds
			}
		}()
	}
	wg.Wait()

	estimate, err := s.EstimateBinge("1", "0")
	require.NoError(t, err)
	assert.Positive(t, estimate.Days)
}
