package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"boxoffice/internal/seats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct {
	runs atomic.Int64
	err  error
}

func (s *countingSweeper) Sweep(context.Context) (int, error) {
	s.runs.Add(1)
	return 0, s.err
}

func (s *countingSweeper) Stats() seats.ReaperStats {
	return seats.ReaperStats{TotalRuns: s.runs.Load()}
}

func TestJobProcessor_SweepsOnStart(t *testing.T) {
	sweeper := &countingSweeper{}
	jp, err := NewJobProcessor(sweeper, &JobConfig{ReaperInterval: time.Hour, StopTimeout: time.Second})
	require.NoError(t, err)

	jp.Start()
	assert.Eventually(t, func() bool { return sweeper.runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, jp.Stop())

	status := jp.GetJobStatus()
	assert.Equal(t, "1h0m0s", status["reaper_interval"])
	assert.Equal(t, false, status["distributed"])
	assert.Equal(t, int64(1), sweeper.runs.Load())
}

func TestJobProcessor_FailedSweepKeepsSchedule(t *testing.T) {
	sweeper := &countingSweeper{err: errors.New("db down")}
	jp, err := NewJobProcessor(sweeper, &JobConfig{ReaperInterval: 50 * time.Millisecond, StopTimeout: time.Second})
	require.NoError(t, err)

	jp.Start()
	assert.Eventually(t, func() bool { return sweeper.runs.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, jp.Stop())
}

func TestNewJobProcessor_Defaults(t *testing.T) {
	jp, err := NewJobProcessor(&countingSweeper{}, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, jp.config.ReaperInterval)

	jp.Start()
	require.NoError(t, jp.Stop())
}
