//go:build unit

package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"rental-booking/internal/infra/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_InvalidSpec(t *testing.T) {
	s := scheduler.New(time.Second)

	err := s.Register("completion-sweeper", "every now and then", func(context.Context) (int, error) {
		return 0, nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "completion-sweeper")
}

func TestScheduler_RunsJobsUntilStopped(t *testing.T) {
	s := scheduler.New(time.Second)
	var runs, failures atomic.Int32

	require.NoError(t, s.Register("ok", "@every 1s", func(ctx context.Context) (int, error) {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		runs.Add(1)
		return 1, nil
	}))
	require.NoError(t, s.Register("failing", "@every 1s", func(context.Context) (int, error) {
		failures.Add(1)
		return 0, errors.New("db down")
	}))

	s.Start()
	assert.Eventually(t, func() bool {
		return runs.Load() > 0 && failures.Load() > 0
	}, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)

	after := runs.Load()
	time.Sleep(1200 * time.Millisecond)
	assert.Equal(t, after, runs.Load(), "job ran after Stop")
}
