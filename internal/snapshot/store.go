package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-market-cache/internal/config"
	"go-market-cache/internal/interfaces"
	"go-market-cache/internal/metrics"
	"go-market-cache/internal/models"
)

const definitionsRowID = 1

// Ensure Store implements the snapshot interfaces
var (
	_ interfaces.QuoteSnapshotStore = (*Store)(nil)
	_ interfaces.DefinitionStore    = (*Store)(nil)
)

// Store is the durable snapshot tier backed by database/sql
type Store struct {
	db           *sql.DB
	dialect      Dialect
	queryTimeout time.Duration
	logger       *zap.Logger
	now          func() time.Time
}

// Open migrates the schema and opens the store described by cfg
func Open(cfg *config.DatabaseConfig, logger *zap.Logger) (*Store, error) {
	dialect, err := ParseDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}

	if err := Migrate(dialect, cfg.DSN, logger); err != nil {
		return nil, err
	}

	db, err := sql.Open(dialect.DriverName(), cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}

	if dialect == DialectSQLite {
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), cfg.QueryTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w", dialect, err)
	}

	logger.Info("Snapshot store opened", zap.String("dialect", string(dialect)))

	return NewStore(db, dialect, cfg.QueryTimeout, logger), nil
}

// NewStore wraps an already migrated database
func NewStore(db *sql.DB, dialect Dialect, queryTimeout time.Duration, logger *zap.Logger) *Store {
	return &Store{
		db:           db,
		dialect:      dialect,
		queryTimeout: queryTimeout,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.db.PingContext(ctx)
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}

// ReadQuotes returns the stored quotes only when every (coin, ticker) pair
// has a row observed no earlier than now-maxAge. Any gap is a miss.
func (s *Store) ReadQuotes(ctx context.Context, coinIDs []int, tickers []string, maxAge time.Duration) (models.CryptoInfosResult, bool, error) {
	ids := uniqueInts(coinIDs)
	tks := uniqueStrings(tickers)
	if len(ids) == 0 || len(tks) == 0 {
		metrics.RecordSnapshotRead("quotes", "miss")
		return nil, false, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cutoff := s.now().Add(-maxAge).UnixMilli()

	args := make([]interface{}, 0, len(ids)+len(tks)+1)
	for _, id := range ids {
		args = append(args, id)
	}
	for _, t := range tks {
		args = append(args, t)
	}
	args = append(args, cutoff)

	query := fmt.Sprintf(`
		SELECT i.coin_id, i.name, i.symbol, i.slug, i.cmc_rank, i.circulating_supply,
		       i.total_supply, i.max_supply, i.last_updated,
		       q.currency_ticker, q.price, q.volume_24h, q.volume_change_24h,
		       q.percent_change_1h, q.percent_change_24h, q.percent_change_7d, q.percent_change_30d,
		       q.market_cap, q.market_cap_dominance, q.fully_diluted_market_cap, q.last_updated
		FROM cmc_quotes q
		JOIN cmc_crypto_infos i ON i.coin_id = q.coin_id
		WHERE q.coin_id IN (%s)
		  AND q.currency_ticker IN (%s)
		  AND q.observed_at >= %s`,
		s.dialect.Placeholders(1, len(ids)),
		s.dialect.Placeholders(len(ids)+1, len(tks)),
		s.dialect.Placeholder(len(ids)+len(tks)+1),
	)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		metrics.RecordSnapshotRead("quotes", "error")
		return nil, false, fmt.Errorf("failed to query quote snapshot: %w", err)
	}
	defer rows.Close()

	result := make(models.CryptoInfosResult, len(ids))
	pairs := 0
	for rows.Next() {
		var (
			info      models.CryptoInfo
			ticker    string
			quote     models.CryptoQuote
			maxSupply sql.NullFloat64
		)
		if err := rows.Scan(
			&info.ID, &info.Name, &info.Symbol, &info.Slug, &info.CMCRank, &info.CirculatingSupply,
			&info.TotalSupply, &maxSupply, &info.LastUpdated,
			&ticker, &quote.Price, &quote.Volume24h, &quote.VolumeChange24h,
			&quote.PercentChange1h, &quote.PercentChange24h, &quote.PercentChange7d, &quote.PercentChange30d,
			&quote.MarketCap, &quote.MarketCapDominance, &quote.FullyDilutedMarketCap, &quote.LastUpdated,
		); err != nil {
			metrics.RecordSnapshotRead("quotes", "error")
			return nil, false, fmt.Errorf("failed to scan quote snapshot row: %w", err)
		}

		existing, ok := result[info.ID]
		if !ok {
			if maxSupply.Valid {
				v := maxSupply.Float64
				info.MaxSupply = &v
			}
			info.Quote = make(map[string]models.CryptoQuote, len(tks))
			existing = info
		}
		existing.Quote[ticker] = quote
		result[info.ID] = existing
		pairs++
	}
	if err := rows.Err(); err != nil {
		metrics.RecordSnapshotRead("quotes", "error")
		return nil, false, fmt.Errorf("failed to iterate quote snapshot: %w", err)
	}

	if pairs != len(ids)*len(tks) {
		metrics.RecordSnapshotRead("quotes", "miss")
		s.logger.Debug("Quote snapshot incomplete",
			zap.Int("wanted_pairs", len(ids)*len(tks)),
			zap.Int("fresh_pairs", pairs))
		return nil, false, nil
	}

	metrics.RecordSnapshotRead("quotes", "hit")
	return result, true, nil
}

// WriteQuotes upserts every coin info and every (coin, ticker) quote in one transaction
func (s *Store) WriteQuotes(ctx context.Context, infos []models.CryptoInfo, observedAt time.Time) error {
	if len(infos) == 0 {
		return nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin quote snapshot transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	infoStmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
		INSERT INTO cmc_crypto_infos
			(coin_id, name, symbol, slug, cmc_rank, circulating_supply, total_supply, max_supply, last_updated, updated_at)
		VALUES (%s)
		ON CONFLICT (coin_id) DO UPDATE SET
			name = EXCLUDED.name,
			symbol = EXCLUDED.symbol,
			slug = EXCLUDED.slug,
			cmc_rank = EXCLUDED.cmc_rank,
			circulating_supply = EXCLUDED.circulating_supply,
			total_supply = EXCLUDED.total_supply,
			max_supply = EXCLUDED.max_supply,
			last_updated = EXCLUDED.last_updated,
			updated_at = EXCLUDED.updated_at`, s.dialect.Placeholders(1, 10)))
	if err != nil {
		return fmt.Errorf("failed to prepare info upsert: %w", err)
	}
	defer infoStmt.Close()

	quoteStmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
		INSERT INTO cmc_quotes
			(coin_id, currency_ticker, price, volume_24h, volume_change_24h,
			 percent_change_1h, percent_change_24h, percent_change_7d, percent_change_30d,
			 market_cap, market_cap_dominance, fully_diluted_market_cap, last_updated, observed_at)
		VALUES (%s)
		ON CONFLICT (coin_id, currency_ticker) DO UPDATE SET
			price = EXCLUDED.price,
			volume_24h = EXCLUDED.volume_24h,
			volume_change_24h = EXCLUDED.volume_change_24h,
			percent_change_1h = EXCLUDED.percent_change_1h,
			percent_change_24h = EXCLUDED.percent_change_24h,
			percent_change_7d = EXCLUDED.percent_change_7d,
			percent_change_30d = EXCLUDED.percent_change_30d,
			market_cap = EXCLUDED.market_cap,
			market_cap_dominance = EXCLUDED.market_cap_dominance,
			fully_diluted_market_cap = EXCLUDED.fully_diluted_market_cap,
			last_updated = EXCLUDED.last_updated,
			observed_at = EXCLUDED.observed_at`, s.dialect.Placeholders(1, 14)))
	if err != nil {
		return fmt.Errorf("failed to prepare quote upsert: %w", err)
	}
	defer quoteStmt.Close()

	observed := observedAt.UnixMilli()
	for _, info := range infos {
		var maxSupply interface{}
		if info.MaxSupply != nil {
			maxSupply = *info.MaxSupply
		}
		if _, err := infoStmt.ExecContext(ctx,
			info.ID, info.Name, info.Symbol, info.Slug, info.CMCRank,
			info.CirculatingSupply, info.TotalSupply, maxSupply, info.LastUpdated, observed,
		); err != nil {
			return fmt.Errorf("failed to upsert info for coin %d: %w", info.ID, err)
		}

		for ticker, q := range info.Quote {
			if _, err := quoteStmt.ExecContext(ctx,
				info.ID, strings.ToUpper(ticker), q.Price, q.Volume24h, q.VolumeChange24h,
				q.PercentChange1h, q.PercentChange24h, q.PercentChange7d, q.PercentChange30d,
				q.MarketCap, q.MarketCapDominance, q.FullyDilutedMarketCap, q.LastUpdated, observed,
			); err != nil {
				return fmt.Errorf("failed to upsert %s quote for coin %d: %w", ticker, info.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit quote snapshot: %w", err)
	}
	return nil
}

// FillerIDs returns up to limit ranked coin IDs not in exclude, best rank first
func (s *Store) FillerIDs(ctx context.Context, limit int, exclude []int) ([]int, error) {
	if limit <= 0 {
		return nil, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	excl := uniqueInts(exclude)
	args := make([]interface{}, 0, len(excl)+1)
	where := "cmc_rank > 0"
	if len(excl) > 0 {
		where += fmt.Sprintf(" AND coin_id NOT IN (%s)", s.dialect.Placeholders(1, len(excl)))
		for _, id := range excl {
			args = append(args, id)
		}
	}
	args = append(args, limit)

	query := fmt.Sprintf(`SELECT coin_id FROM cmc_crypto_infos WHERE %s ORDER BY cmc_rank ASC, coin_id ASC LIMIT %s`,
		where, s.dialect.Placeholder(len(excl)+1))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query filler ids: %w", err)
	}
	defer rows.Close()

	ids := make([]int, 0, limit)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan filler id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ReadDefinitions returns nil when no snapshot has been written yet
func (s *Store) ReadDefinitions(ctx context.Context) (*models.CryptoDefinitionSnapshot, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		raw       string
		updatedAt int64
	)
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT definitions, updated_at FROM cmc_crypto_definitions WHERE id = %s`, s.dialect.Placeholder(1)),
		definitionsRowID,
	).Scan(&raw, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.RecordSnapshotRead("definitions", "miss")
		return nil, nil
	}
	if err != nil {
		metrics.RecordSnapshotRead("definitions", "error")
		return nil, fmt.Errorf("failed to read definitions snapshot: %w", err)
	}

	var defs []models.CryptoDefinition
	if err := json.Unmarshal([]byte(raw), &defs); err != nil {
		metrics.RecordSnapshotRead("definitions", "error")
		return nil, fmt.Errorf("failed to decode definitions snapshot: %w", err)
	}

	metrics.RecordSnapshotRead("definitions", "hit")
	return &models.CryptoDefinitionSnapshot{
		Definitions:   defs,
		LastUpdatedAt: time.UnixMilli(updatedAt),
	}, nil
}

// ReplaceDefinitions overwrites the definitions snapshot and refreshes the
// ranking columns used by FillerIDs, atomically.
func (s *Store) ReplaceDefinitions(ctx context.Context, defs []models.CryptoDefinition, updatedAt time.Time) error {
	raw, err := json.Marshal(defs)
	if err != nil {
		return fmt.Errorf("failed to encode definitions: %w", err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin definitions transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO cmc_crypto_definitions (id, definitions, updated_at)
		VALUES (%s)
		ON CONFLICT (id) DO UPDATE SET
			definitions = EXCLUDED.definitions,
			updated_at = EXCLUDED.updated_at`, s.dialect.Placeholders(1, 3)),
		definitionsRowID, string(raw), updatedAt.UnixMilli(),
	); err != nil {
		return fmt.Errorf("failed to write definitions snapshot: %w", err)
	}

	rankStmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
		INSERT INTO cmc_crypto_infos (coin_id, name, symbol, slug, cmc_rank, updated_at)
		VALUES (%s)
		ON CONFLICT (coin_id) DO UPDATE SET
			name = EXCLUDED.name,
			symbol = EXCLUDED.symbol,
			slug = EXCLUDED.slug,
			cmc_rank = EXCLUDED.cmc_rank`, s.dialect.Placeholders(1, 6)))
	if err != nil {
		return fmt.Errorf("failed to prepare rank upsert: %w", err)
	}
	defer rankStmt.Close()

	for _, d := range defs {
		if _, err := rankStmt.ExecContext(ctx, d.ID, d.Name, d.Symbol, d.Slug, d.Rank, updatedAt.UnixMilli()); err != nil {
			return fmt.Errorf("failed to upsert rank for coin %d: %w", d.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit definitions snapshot: %w", err)
	}

	s.logger.Info("Definitions snapshot replaced", zap.Int("count", len(defs)))
	return nil
}

func uniqueInts(in []int) []int {
	seen := make(map[int]struct{}, len(in))
	out := make([]int, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.ToUpper(v)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
