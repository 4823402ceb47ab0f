package background

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go-market-cache/internal/metrics"
)

func TestRunner_RunsTask(t *testing.T) {
	r := NewRunner(zaptest.NewLogger(t))

	done := make(chan struct{})
	require.NoError(t, r.Go("test-run", func(ctx context.Context) error {
		close(done)
		return nil
	}))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task did not run")
	}

	require.NoError(t, r.Shutdown(context.Background()))
}

func TestRunner_TaskContextIsLive(t *testing.T) {
	r := NewRunner(zaptest.NewLogger(t))

	var live atomic.Bool
	require.NoError(t, r.Go("detached", func(ctx context.Context) error {
		live.Store(ctx.Err() == nil)
		return nil
	}))

	require.NoError(t, r.Shutdown(context.Background()))
	assert.True(t, live.Load())
}

func TestRunner_ErrorsAndPanicsAreCounted(t *testing.T) {
	r := NewRunner(zaptest.NewLogger(t))

	before := testutil.ToFloat64(metrics.BackgroundTasks.WithLabelValues("failing-task", "error"))

	require.NoError(t, r.Go("failing-task", func(ctx context.Context) error {
		return errors.New("upstream 500")
	}))
	require.NoError(t, r.Go("failing-task", func(ctx context.Context) error {
		panic("boom")
	}))

	require.NoError(t, r.Shutdown(context.Background()))
	assert.Equal(t, before+2, testutil.ToFloat64(metrics.BackgroundTasks.WithLabelValues("failing-task", "error")))
}

func TestRunner_RejectsAfterShutdown(t *testing.T) {
	r := NewRunner(zaptest.NewLogger(t))
	require.NoError(t, r.Shutdown(context.Background()))

	err := r.Go("late", func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrStopped)
}

func TestRunner_ShutdownTimeoutCancelsTasks(t *testing.T) {
	r := NewRunner(zaptest.NewLogger(t))

	started := make(chan struct{})
	require.NoError(t, r.Go("slow", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := r.Shutdown(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
