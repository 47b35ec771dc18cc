package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankmail-ledger-go/internal/config"
	"bankmail-ledger-go/internal/sync"
)

type noopRunner struct{}

func (noopRunner) RunCycle(ctx context.Context) (*sync.CycleResult, error) {
	return &sync.CycleResult{}, nil
}

func newTestScheduler() *Scheduler {
	return NewScheduler(&config.SyncConfig{IntervalMinutes: 5}, noopRunner{})
}

func TestSchedulerStartStop(t *testing.T) {
	s := newTestScheduler()

	assert.False(t, s.IsRunning())
	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	assert.False(t, s.GetNextRun().IsZero())

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
	assert.True(t, s.GetNextRun().IsZero())
}

func TestSchedulerDoubleStartFails(t *testing.T) {
	s := newTestScheduler()

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Error(t, s.Start())
}

func TestSchedulerStopWhenNotRunning(t *testing.T) {
	s := newTestScheduler()
	assert.NoError(t, s.Stop())
}

func TestSchedulerRestart(t *testing.T) {
	s := newTestScheduler()

	require.NoError(t, s.Start())
	require.NoError(t, s.Stop())

	// Stop cancels the internal context; a restart must recreate it so
	// subsequent cycles are not born cancelled.
	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	require.NoError(t, s.Stop())
}
