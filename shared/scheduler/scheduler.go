package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"playlist-insights/shared/config"
	"playlist-insights/shared/monitoring"
)

// Metrics defines the common interface for agent metrics
type Metrics interface {
	// GetSummary returns a human-readable summary of the run
	GetSummary() string
}

// AgentEvents provides callbacks for monitoring agent execution
type AgentEvents struct {
	OnSuccess         func(metrics Metrics, duration time.Duration)
	OnPartialFailure  func(err error, duration time.Duration)
	OnCriticalFailure func(err error, duration time.Duration)
}

// Agent defines the interface that all agents must implement
type Agent interface {
	Name() string
	RunOnce(ctx context.Context, events *AgentEvents) error
	Initialize() error
}

// Scheduler manages the execution of agents on a schedule
type Scheduler struct {
	config  *config.Config
	monitor *monitoring.Monitor
	results monitoring.ResultSource
	agent   Agent
	cron    *cron.Cron
	logger  *zap.Logger
}

// New wires agent to the watch schedule. results may be nil, in which case
// the HTTP server only answers health checks.
func New(cfg *config.Config, agent Agent, results monitoring.ResultSource, logger *zap.Logger) *Scheduler {
	cl := cronLogger{logger.Sugar()}

	return &Scheduler{
		config:  cfg,
		monitor: monitoring.NewMonitor(logger),
		results: results,
		agent:   agent,
		logger:  logger,
		// Prevent overlapping runs
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
	}
}

func (s *Scheduler) Monitor() *monitoring.Monitor {
	return s.monitor
}

func (s *Scheduler) Start(ctx context.Context) error {
	if err := s.agent.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize agent: %w", err)
	}

	_, err := s.cron.AddFunc(s.config.Watch.Schedule, func() {
		if err := s.RunOnce(ctx); err != nil {
			s.logger.Error("Scheduled run failed", zap.String("agent", s.agent.Name()), zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	healthServer := monitoring.NewHealthServer(s.monitor, strconv.Itoa(s.config.Monitoring.HealthPort), s.results, s.logger)
	healthServer.Start()

	s.logger.Info("Scheduler started",
		zap.String("agent", s.agent.Name()),
		zap.String("schedule", s.config.Watch.Schedule),
	)
	s.cron.Start()

	<-ctx.Done()
	s.logger.Info("Scheduler stopping", zap.String("agent", s.agent.Name()))

	<-s.cron.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("Health server shutdown failed", zap.Error(err))
	}

	return ctx.Err()
}

func (s *Scheduler) RunOnce(ctx context.Context) error {
	startTime := time.Now()
	agentName := s.agent.Name()

	s.logger.Info("Starting run", zap.String("agent", agentName))

	events := &AgentEvents{
		OnSuccess: func(metrics Metrics, duration time.Duration) {
			s.monitor.RecordSuccess(metrics.GetSummary(), duration)
		},
		OnPartialFailure: func(err error, duration time.Duration) {
			s.monitor.RecordPartialFailure(fmt.Errorf("%s partial failure: %w", agentName, err), duration)
		},
		OnCriticalFailure: func(err error, duration time.Duration) {
			s.monitor.RecordCriticalFailure(fmt.Errorf("%s critical failure: %w", agentName, err), duration)
		},
	}

	if err := s.agent.RunOnce(ctx, events); err != nil {
		duration := time.Since(startTime)
		s.monitor.RecordCriticalFailure(fmt.Errorf("%s failed: %w", agentName, err), duration)
		return fmt.Errorf("%s run failed: %w", agentName, err)
	}

	return nil
}

// cronLogger routes cron's own messages through zap.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
