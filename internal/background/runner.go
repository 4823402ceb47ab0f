package background

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"go-market-cache/internal/metrics"
)

// ErrStopped is returned by Go once Shutdown has begun
var ErrStopped = errors.New("background runner stopped")

// Runner executes fire-and-forget tasks detached from the request that
// scheduled them. Task errors and panics are logged and counted.
type Runner struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
	logger *zap.Logger
}

func NewRunner(logger *zap.Logger) *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
}

// Go schedules task under name. The task's context is cancelled on Shutdown.
func (r *Runner) Go(name string, task func(ctx context.Context) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		metrics.RecordBackgroundTask(name, "skipped")
		return ErrStopped
	}

	r.wg.Add(1)
	go r.run(name, task)
	return nil
}

func (r *Runner) run(name string, task func(ctx context.Context) error) {
	defer r.wg.Done()

	start := time.Now()
	err := r.safeCall(task)
	if err != nil {
		metrics.RecordBackgroundTask(name, "error")
		r.logger.Error("Background task failed",
			zap.String("task", name),
			zap.Duration("took", time.Since(start)),
			zap.Error(err))
		return
	}

	metrics.RecordBackgroundTask(name, "success")
	r.logger.Debug("Background task finished",
		zap.String("task", name),
		zap.Duration("took", time.Since(start)))
}

func (r *Runner) safeCall(task func(ctx context.Context) error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return task(r.ctx)
}

// Shutdown stops accepting tasks and waits for running ones. If ctx expires
// first the remaining tasks are cancelled and ctx.Err is returned.
func (r *Runner) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.cancel()
		return nil
	case <-ctx.Done():
		r.cancel()
		<-done
		return ctx.Err()
	}
}
