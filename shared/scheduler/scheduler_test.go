package scheduler

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"playlist-insights/shared/config"
)

type summary string

func (s summary) GetSummary() string { return string(s) }

type fakeAgent struct {
	initErr error
	runErr  error
	partial error
	runs    atomic.Int32
}

func (f *fakeAgent) Name() string      { return "Fake Agent" }
func (f *fakeAgent) Initialize() error { return f.initErr }

func (f *fakeAgent) RunOnce(_ context.Context, events *AgentEvents) error {
	f.runs.Add(1)
	if f.runErr != nil {
		return f.runErr
	}
	if f.partial != nil {
		events.OnPartialFailure(f.partial, time.Millisecond)
	}
	events.OnSuccess(summary("did the thing"), time.Millisecond)
	return nil
}

func testConfig(schedule string) *config.Config {
	return &config.Config{
		Watch: config.WatchConfig{Schedule: schedule},
	}
}

func TestRunOnceRecordsSuccess(t *testing.T) {
	agent := &fakeAgent{partial: errors.New("one playlist failed")}
	s := New(testConfig("0 0 9 * * *"), agent, nil, zap.NewNop())

	require.NoError(t, s.RunOnce(context.Background()))
	assert.True(t, s.Monitor().IsHealthy())
	assert.Contains(t, s.Monitor().GetStatusSummary(), "did the thing")
}

func TestRunOnceRecordsFailure(t *testing.T) {
	agent := &fakeAgent{runErr: errors.New("all watched playlists failed")}
	s := New(testConfig("0 0 9 * * *"), agent, nil, zap.NewNop())

	err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Fake Agent run failed"))
	assert.False(t, s.Monitor().IsHealthy())
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := New(testConfig("not a schedule"), &fakeAgent{}, nil, zap.NewNop())

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to add cron job")
}

func TestStartFailsWhenAgentCannotInitialize(t *testing.T) {
	s := New(testConfig("@every 1s"), &fakeAgent{initErr: errors.New("no key")}, nil, zap.NewNop())

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize agent")
}

func TestStartRunsOnScheduleUntilCancelled(t *testing.T) {
	agent := &fakeAgent{}
	s := New(testConfig("@every 1s"), agent, nil, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 2500*time.Millisecond)
	defer cancel()

	err := s.Start(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.GreaterOrEqual(t, agent.runs.Load(), int32(1))
}
