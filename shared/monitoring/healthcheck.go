package monitoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"playlist-insights/internal/models"
	"playlist-insights/shared/apperrors"
)

// ResultSource exposes the latest committed analysis.
type ResultSource interface {
	Current() *models.AnalysisResult
	EstimateBinge(hours, minutes string) (*models.BingeEstimate, error)
	Clear()
}

type HealthServer struct {
	monitor *Monitor
	results ResultSource
	port    string
	logger  *zap.Logger
	server  *http.Server
}

// NewHealthServer serves /health and /status, plus the result endpoints
// when results is non-nil.
func NewHealthServer(monitor *Monitor, port string, results ResultSource, logger *zap.Logger) *HealthServer {
	if port == "" {
		port = "8080"
	}
	return &HealthServer{
		monitor: monitor,
		results: results,
		port:    port,
		logger:  logger,
	}
}

func (h *HealthServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", h.healthHandler)
	r.Get("/status", h.statusHandler)

	if h.results != nil {
		r.Route("/api", func(r chi.Router) {
			r.Get("/latest", h.latestHandler)
			r.Delete("/latest", h.clearHandler)
			r.Get("/binge", h.bingeHandler)
		})
	}

	return r
}

func (h *HealthServer) Start() {
	h.server = &http.Server{
		Addr:              ":" + h.port,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	h.logger.Info("Health check server starting", zap.String("port", h.port))
	go func() {
		if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.logger.Error("Health server error", zap.Error(err))
		}
	}()
}

func (h *HealthServer) Shutdown(ctx context.Context) error {
	if h.server == nil {
		return nil
	}
	return h.server.Shutdown(ctx)
}

func (h *HealthServer) healthHandler(w http.ResponseWriter, r *http.Request) {
	if h.monitor.IsHealthy() {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK - %s", h.monitor.GetStatusSummary())
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintf(w, "Service unhealthy - %s", h.monitor.GetStatusSummary())
	}
}

func (h *HealthServer) statusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "%s\nRuns: %d", h.monitor.GetStatusSummary(), h.monitor.Runs())
}

func (h *HealthServer) latestHandler(w http.ResponseWriter, r *http.Request) {
	result := h.results.Current()
	if result == nil {
		respondError(w, http.StatusNotFound, "No playlist has been analyzed yet.")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *HealthServer) clearHandler(w http.ResponseWriter, r *http.Request) {
	h.results.Clear()
	h.logger.Info("Latest result cleared", zap.String("request_id", middleware.GetReqID(r.Context())))
	w.WriteHeader(http.StatusNoContent)
}

func (h *HealthServer) bingeHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	estimate, err := h.results.EstimateBinge(q.Get("hours"), q.Get("minutes"))
	if err != nil {
		status := http.StatusInternalServerError
		if apperrors.IsValidation(err) {
			status = http.StatusBadRequest
		}
		respondError(w, status, apperrors.UserMessage(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"estimate": estimate,
		"message":  estimate.Message(),
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
