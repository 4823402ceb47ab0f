// Package procedure turns typed handlers into named, validated and cached procedures.
package procedure

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"go-market-cache/internal/interfaces"
	"go-market-cache/internal/models"
)

const storeResultTask = "store-procedure-result"

// Handler computes a procedure result from validated input
type Handler[In any, Out any] func(ctx context.Context, in In) (Out, error)

// TaskRunner schedules work detached from the calling request
type TaskRunner interface {
	Go(name string, task func(ctx context.Context) error) error
}

// Wrapper holds what Cached needs to serve procedures from the fast cache
type Wrapper struct {
	keys       interfaces.KeyBuilder
	cache      interfaces.FastCache
	classifier interfaces.CacheRulesClassifier
	runner     TaskRunner
	group      singleflight.Group
	logger     *zap.Logger
}

// NewWrapper creates a Wrapper. Computed results are stored through runner so
// callers never wait on the fast cache; a nil runner stores them inline.
func NewWrapper(
	keys interfaces.KeyBuilder,
	cache interfaces.FastCache,
	classifier interfaces.CacheRulesClassifier,
	runner TaskRunner,
	logger *zap.Logger,
) *Wrapper {
	return &Wrapper{
		keys:       keys,
		cache:      cache,
		classifier: classifier,
		runner:     runner,
		logger:     logger,
	}
}

// store writes a computed result to the fast cache. Set failures are logged
// by the cache itself and never reach the caller.
func (w *Wrapper) store(ctx context.Context, key string, value interface{}, tier models.CacheTier) {
	if w.runner != nil {
		err := w.runner.Go(storeResultTask, func(taskCtx context.Context) error {
			w.cache.Set(taskCtx, key, value, tier)
			return nil
		})
		if err == nil {
			return
		}
		w.logger.Debug("Storing procedure result inline", zap.String("key", key), zap.Error(err))
	}
	w.cache.Set(ctx, key, value, tier)
}

// Cached serves h through the fast cache under name and tier. A hit returns
// without calling h. On a miss concurrent callers with the same key share one
// call to h, whose successful result is stored in the background. Errors are
// never stored.
// Cache rules may move the procedure to another tier or bypass caching.
func Cached[In any, Out any](w *Wrapper, name string, tier models.CacheTier, h Handler[In, Out]) Handler[In, Out] {
	return func(ctx context.Context, in In) (Out, error) {
		var zero Out

		info := w.classifier.Classify(name, tier)
		if info.Bypass() {
			return h(ctx, in)
		}

		key, err := w.keys.Build(name, in)
		if err != nil {
			w.logger.Warn("Failed to derive cache key, serving uncached",
				zap.String("procedure", name),
				zap.Error(err))
			return h(ctx, in)
		}

		var cached Out
		if w.cache.Get(ctx, key, &cached) {
			return cached, nil
		}

		// The shared call outlives any single caller so the result still lands in the cache
		detached := context.WithoutCancel(ctx)
		ch := w.group.DoChan(key, func() (interface{}, error) {
			start := time.Now()
			out, err := h(detached, in)
			if err != nil {
				return nil, err
			}

			w.store(detached, key, out, info.Tier)
			w.logger.Debug("Procedure computed",
				zap.String("procedure", name),
				zap.String("key", key),
				zap.Duration("took", time.Since(start)))
			return out, nil
		})

		select {
		case res := <-ch:
			if res.Err != nil {
				return zero, res.Err
			}
			return res.Val.(Out), nil
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}
