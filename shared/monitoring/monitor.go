package monitoring

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Monitor tracks the outcome of the latest scheduled run.
type Monitor struct {
	mu             sync.RWMutex
	lastRunSuccess bool
	lastRunTime    time.Time
	lastSummary    string
	runs           int
	logger         *zap.Logger
}

func NewMonitor(logger *zap.Logger) *Monitor {
	return &Monitor{logger: logger}
}

func (m *Monitor) RecordSuccess(summary string, duration time.Duration) {
	m.mu.Lock()
	m.lastRunSuccess = true
	m.lastRunTime = time.Now()
	m.lastSummary = summary
	m.runs++
	m.mu.Unlock()

	m.logger.Info("Run completed successfully", zap.String("summary", summary), zap.Duration("took", duration))
}

func (m *Monitor) RecordPartialFailure(err error, duration time.Duration) {
	// Partial failures leave the health status alone.
	m.logger.Warn("Partial failure", zap.Error(err), zap.Duration("took", duration))
}

func (m *Monitor) RecordCriticalFailure(err error, duration time.Duration) {
	m.mu.Lock()
	m.lastRunSuccess = false
	m.lastRunTime = time.Now()
	m.lastSummary = err.Error()
	m.runs++
	m.mu.Unlock()

	m.logger.Error("Critical failure", zap.Error(err), zap.Duration("took", duration))
}

func (m *Monitor) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.lastRunTime.IsZero() {
		return true // No runs yet, assume healthy
	}
	return m.lastRunSuccess
}

func (m *Monitor) GetStatusSummary() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.lastRunTime.IsZero() {
		return "No runs yet"
	}

	if m.lastRunSuccess {
		return fmt.Sprintf("Last run: %s (%s)", m.lastRunTime.Format("Jan 2 15:04"), m.lastSummary)
	}
	return fmt.Sprintf("Last run failed: %s (%s)", m.lastRunTime.Format("Jan 2 15:04"), m.lastSummary)
}

// Runs returns how many runs have been recorded, successful or not.
func (m *Monitor) Runs() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.runs
}
