// Package refresh keeps slow-moving datasets fresh with stale-while-revalidate reads.
package refresh

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"go-market-cache/internal/config"
	"go-market-cache/internal/interfaces"
	"go-market-cache/internal/models"
)

const (
	definitionsTask = "refresh-crypto-definitions"
	definitionsSort = "cmc_rank"
)

// TaskRunner schedules work detached from the calling request
type TaskRunner interface {
	Go(name string, task func(ctx context.Context) error) error
}

// DefinitionsRefresher serves the crypto definitions snapshot. Stale or absent
// snapshots are returned as-is while a single background refresh replaces them.
type DefinitionsRefresher struct {
	store    interfaces.DefinitionStore
	client   interfaces.CMCClient
	runner   TaskRunner
	maxAge   time.Duration
	maxLimit int
	timeout  time.Duration
	inFlight atomic.Bool
	logger   *zap.Logger
	now      func() time.Time
}

func NewDefinitionsRefresher(
	store interfaces.DefinitionStore,
	client interfaces.CMCClient,
	runner TaskRunner,
	cfg *config.DefinitionsConfig,
	maxAge time.Duration,
	logger *zap.Logger,
) *DefinitionsRefresher {
	return &DefinitionsRefresher{
		store:    store,
		client:   client,
		runner:   runner,
		maxAge:   maxAge,
		maxLimit: cfg.MaxLimit,
		timeout:  cfg.RefreshTimeout,
		logger:   logger,
		now:      time.Now,
	}
}

// Read returns the current snapshot, never nil on success. A snapshot that was
// never written, or that cannot be read back, comes back empty with a zero
// LastUpdatedAt and triggers a refresh that overwrites it.
func (r *DefinitionsRefresher) Read(ctx context.Context) (*models.CryptoDefinitionSnapshot, error) {
	start := time.Now()
	snap, err := r.store.ReadDefinitions(ctx)
	if err != nil {
		r.logger.Warn("Definitions snapshot unreadable, treating as absent", zap.Error(err))
		snap = nil
	}

	if snap != nil && r.isFresh(snap) {
		r.logger.Debug("Definitions snapshot fresh",
			zap.Int("count", len(snap.Definitions)),
			zap.Duration("took", time.Since(start)))
		return snap, nil
	}

	r.logger.Info("Definitions snapshot stale, scheduling refresh",
		zap.Bool("absent", snap == nil),
		zap.Duration("took", time.Since(start)))
	r.scheduleRefresh()

	if snap == nil {
		snap = &models.CryptoDefinitionSnapshot{Definitions: []models.CryptoDefinition{}}
	}
	return snap, nil
}

func (r *DefinitionsRefresher) isFresh(snap *models.CryptoDefinitionSnapshot) bool {
	return !snap.LastUpdatedAt.Before(r.now().Add(-r.maxAge))
}

func (r *DefinitionsRefresher) scheduleRefresh() {
	if !r.inFlight.CompareAndSwap(false, true) {
		r.logger.Debug("Definitions refresh already in flight")
		return
	}

	err := r.runner.Go(definitionsTask, func(ctx context.Context) error {
		defer r.inFlight.Store(false)

		if r.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, r.timeout)
			defer cancel()
		}
		return r.Refresh(ctx)
	})
	if err != nil {
		r.inFlight.Store(false)
		r.logger.Warn("Failed to schedule definitions refresh", zap.Error(err))
	}
}

// Refresh fetches the ranked definitions and replaces the stored snapshot
func (r *DefinitionsRefresher) Refresh(ctx context.Context) error {
	defs, err := r.client.Map(ctx, definitionsSort, r.maxLimit)
	if err != nil {
		return err
	}

	if err := r.store.ReplaceDefinitions(ctx, defs, r.now()); err != nil {
		return err
	}

	r.logger.Info("Definitions snapshot refreshed", zap.Int("count", len(defs)))
	return nil
}
