// Package market implements the dashboard's market data procedures on top of
// the snapshot store, the fast cache and the upstream clients.
package market

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"go-market-cache/internal/config"
	"go-market-cache/internal/interfaces"
	"go-market-cache/internal/models"
	"go-market-cache/internal/upstream/cmc"
	"go-market-cache/internal/utils"
)

// DefinitionsReader serves the stale-while-revalidate definitions snapshot
type DefinitionsReader interface {
	Read(ctx context.Context) (*models.CryptoDefinitionSnapshot, error)
}

// CMCService serves CoinMarketCap data
type CMCService struct {
	client       interfaces.CMCClient
	quotes       interfaces.QuoteSnapshotStore
	definitions  DefinitionsReader
	batchSize    int
	quotesMaxAge time.Duration
	logger       *zap.Logger
	now          func() time.Time
}

func NewCMCService(
	client interfaces.CMCClient,
	quotes interfaces.QuoteSnapshotStore,
	definitions DefinitionsReader,
	cfg *config.QuotesConfig,
	quotesMaxAge time.Duration,
	logger *zap.Logger,
) *CMCService {
	return &CMCService{
		client:       client,
		quotes:       quotes,
		definitions:  definitions,
		batchSize:    cfg.BatchSize,
		quotesMaxAge: quotesMaxAge,
		logger:       logger,
		now:          time.Now,
	}
}

// GetCryptoInfos returns the latest info of every requested coin quoted in
// every requested currency. Fresh snapshot rows are served without an
// upstream call. Otherwise the request is padded with top ranked coins up to
// the batch size, since a quotes call costs the same credits up to that size,
// and the whole padded batch is persisted.
func (s *CMCService) GetCryptoInfos(ctx context.Context, in CryptoInfosInput) (models.CryptoInfosResult, error) {
	ids := utils.CleanAndSortInts(in.IDs)
	convert := utils.CleanTickers(in.Convert)
	logKey := "getCryptoInfos:" + strings.Join(convert, ",") + ":" + utils.IntsToCSV(ids)

	if len(ids) == 0 {
		return models.CryptoInfosResult{}, nil
	}

	start := time.Now()
	result, found, err := s.quotes.ReadQuotes(ctx, ids, convert, s.quotesMaxAge)
	switch {
	case err != nil:
		s.logger.Warn("Snapshot read failed, fetching upstream", zap.String("key", logKey), zap.Error(err))
	case found:
		s.logger.Debug("Snapshot HIT", zap.String("key", logKey), zap.Duration("took", time.Since(start)))
		return result, nil
	default:
		s.logger.Debug("Snapshot MISS", zap.String("key", logKey), zap.Duration("took", time.Since(start)))
	}

	padded := s.padIDs(ctx, ids)

	infos, err := s.client.QuotesLatest(ctx, padded, convert)
	if err != nil {
		return nil, err
	}

	writeStart := time.Now()
	if err := s.quotes.WriteQuotes(ctx, infos, s.now()); err != nil {
		s.logger.Warn("Snapshot write failed", zap.String("key", logKey), zap.Error(err))
	} else {
		s.logger.Debug("Snapshot SET",
			zap.String("key", logKey),
			zap.Int("coins", len(infos)),
			zap.Duration("took", time.Since(writeStart)))
	}

	return shapeCryptoInfos(infos, ids), nil
}

func (s *CMCService) padIDs(ctx context.Context, ids []int) []int {
	if len(ids) >= s.batchSize {
		return ids
	}

	fillers, err := s.quotes.FillerIDs(ctx, s.batchSize-len(ids), ids)
	if err != nil {
		s.logger.Warn("Failed to load filler ids, fetching unpadded", zap.Error(err))
		return ids
	}

	padded := make([]int, 0, len(ids)+len(fillers))
	padded = append(padded, ids...)
	padded = append(padded, fillers...)
	return utils.CleanAndSortInts(padded)
}

// shapeCryptoInfos keeps only the requested coins
func shapeCryptoInfos(infos []models.CryptoInfo, ids []int) models.CryptoInfosResult {
	wanted := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	result := make(models.CryptoInfosResult, len(ids))
	for _, info := range infos {
		if _, ok := wanted[info.ID]; ok {
			result[info.ID] = info
		}
	}
	return result
}

// GetGlobalMetrics merges global totals with the fear and greed index
func (s *CMCService) GetGlobalMetrics(ctx context.Context, in GlobalMetricsInput) (models.GlobalMetrics, error) {
	var (
		metrics   *models.GlobalMetrics
		fearGreed *models.FearGreedIndex
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		metrics, err = s.client.GlobalMetrics(gctx, in.Convert)
		return err
	})
	g.Go(func() error {
		var err error
		fearGreed, err = s.client.FearAndGreed(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.GlobalMetrics{}, err
	}

	result := *metrics
	result.FearGreedIndex = *fearGreed
	return result, nil
}

// GetRankedCryptoList returns one page of coins ranked by market cap
func (s *CMCService) GetRankedCryptoList(ctx context.Context, in RankedListInput) (models.RankedCryptoList, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	start := (page-1)*cmc.ListingsPageSize + 1

	list, err := s.client.Listings(ctx, in.Convert, start, cmc.ListingsPageSize)
	if err != nil {
		return models.RankedCryptoList{}, err
	}
	if list == nil {
		list = []models.CoinListItem{}
	}
	return models.RankedCryptoList{CoinList: list}, nil
}

// GetCryptoDefinitions returns up to limit definitions in rank order. The
// snapshot may be stale or empty while a refresh runs in the background.
func (s *CMCService) GetCryptoDefinitions(ctx context.Context, in DefinitionsInput) (models.CryptoDefinitionSnapshot, error) {
	snap, err := s.definitions.Read(ctx)
	if err != nil {
		return models.CryptoDefinitionSnapshot{}, err
	}

	defs := snap.Definitions
	if in.Limit > 0 && len(defs) > in.Limit {
		defs = defs[:in.Limit]
	}
	return models.CryptoDefinitionSnapshot{
		Definitions:   defs,
		LastUpdatedAt: snap.LastUpdatedAt,
	}, nil
}
