package snapshot

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go-market-cache/internal/config"
	"go-market-cache/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := &config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          filepath.Join(t.TempDir(), "snapshot.db"),
		QueryTimeout: 5 * time.Second,
	}
	store, err := Open(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func info(id int, rank int, tickers ...string) models.CryptoInfo {
	maxSupply := 21_000_000.0
	quotes := make(map[string]models.CryptoQuote, len(tickers))
	for i, ticker := range tickers {
		quotes[ticker] = models.CryptoQuote{
			Price:       float64(id*1000 + i),
			MarketCap:   float64(id) * 1e9,
			LastUpdated: "2026-10-19T12:00:00.000Z",
		}
	}
	return models.CryptoInfo{
		ID:                id,
		Name:              "Coin",
		Symbol:            "C",
		Slug:              "coin",
		CMCRank:           rank,
		CirculatingSupply: 19_000_000,
		TotalSupply:       19_500_000,
		MaxSupply:         &maxSupply,
		LastUpdated:       "2026-10-19T12:00:00.000Z",
		Quote:             quotes,
	}
}

func TestStore_WriteAndReadQuotes(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	now := time.Now()
	require.NoError(t, store.WriteQuotes(ctx, []models.CryptoInfo{
		info(1, 1, "USD", "EUR"),
		info(1027, 2, "USD", "EUR"),
	}, now))

	result, found, err := store.ReadQuotes(ctx, []int{1, 1027}, []string{"USD", "EUR"}, time.Minute)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, result, 2)

	btc := result[1]
	assert.Equal(t, 1, btc.CMCRank)
	require.NotNil(t, btc.MaxSupply)
	assert.Equal(t, 21_000_000.0, *btc.MaxSupply)
	assert.Equal(t, 1000.0, btc.Quote["USD"].Price)
	assert.Equal(t, 1001.0, btc.Quote["EUR"].Price)
	assert.Equal(t, "2026-10-19T12:00:00.000Z", btc.Quote["USD"].LastUpdated)
}

func TestStore_ReadQuotes_AllOrNothing(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.WriteQuotes(ctx, []models.CryptoInfo{
		info(1, 1, "USD"),
		info(2, 2, "USD"),
	}, time.Now()))

	t.Run("missing coin", func(t *testing.T) {
		result, found, err := store.ReadQuotes(ctx, []int{1, 2, 3}, []string{"USD"}, time.Minute)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, result)
	})

	t.Run("missing currency", func(t *testing.T) {
		_, found, err := store.ReadQuotes(ctx, []int{1, 2}, []string{"USD", "EUR"}, time.Minute)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("subset is a hit", func(t *testing.T) {
		result, found, err := store.ReadQuotes(ctx, []int{2}, []string{"USD"}, time.Minute)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Len(t, result, 1)
	})

	t.Run("duplicates in request", func(t *testing.T) {
		_, found, err := store.ReadQuotes(ctx, []int{1, 1, 2}, []string{"USD", "usd"}, time.Minute)
		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("empty request", func(t *testing.T) {
		_, found, err := store.ReadQuotes(ctx, nil, []string{"USD"}, time.Minute)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestStore_ReadQuotes_AgeBoundary(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	now := time.UnixMilli(1_760_000_000_000)
	store.now = func() time.Time { return now }
	maxAge := 45 * time.Second

	require.NoError(t, store.WriteQuotes(ctx, []models.CryptoInfo{info(1, 1, "USD")}, now.Add(-maxAge-time.Millisecond)))
	_, found, err := store.ReadQuotes(ctx, []int{1}, []string{"USD"}, maxAge)
	require.NoError(t, err)
	assert.False(t, found, "one millisecond past the window is stale")

	require.NoError(t, store.WriteQuotes(ctx, []models.CryptoInfo{info(1, 1, "USD")}, now.Add(-maxAge+time.Millisecond)))
	_, found, err = store.ReadQuotes(ctx, []int{1}, []string{"USD"}, maxAge)
	require.NoError(t, err)
	assert.True(t, found, "one millisecond inside the window is fresh")
}

func TestStore_ReadQuotes_OneStalePairInvalidatesRead(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	now := time.Now()
	require.NoError(t, store.WriteQuotes(ctx, []models.CryptoInfo{info(1, 1, "USD")}, now.Add(-time.Hour)))
	require.NoError(t, store.WriteQuotes(ctx, []models.CryptoInfo{info(2, 2, "USD")}, now))

	_, found, err := store.ReadQuotes(ctx, []int{1, 2}, []string{"USD"}, time.Minute)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_WriteQuotes_Upsert(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first := info(1, 5, "USD")
	require.NoError(t, store.WriteQuotes(ctx, []models.CryptoInfo{first}, time.Now()))

	second := info(1, 1, "USD")
	second.Quote["USD"] = models.CryptoQuote{Price: 70_000}
	second.MaxSupply = nil
	require.NoError(t, store.WriteQuotes(ctx, []models.CryptoInfo{second}, time.Now()))

	result, found, err := store.ReadQuotes(ctx, []int{1}, []string{"USD"}, time.Minute)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 70_000.0, result[1].Quote["USD"].Price)
	assert.Equal(t, 1, result[1].CMCRank)
	assert.Nil(t, result[1].MaxSupply)

	var rows int
	require.NoError(t, store.db.QueryRow(`SELECT COUNT(*) FROM cmc_quotes`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestStore_FillerIDs(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.ReplaceDefinitions(ctx, []models.CryptoDefinition{
		{ID: 1, Rank: 1, Name: "Bitcoin", Symbol: "BTC", Slug: "bitcoin"},
		{ID: 1027, Rank: 2, Name: "Ethereum", Symbol: "ETH", Slug: "ethereum"},
		{ID: 825, Rank: 3, Name: "Tether", Symbol: "USDT", Slug: "tether"},
		{ID: 1839, Rank: 4, Name: "BNB", Symbol: "BNB", Slug: "bnb"},
	}, time.Now()))

	ids, err := store.FillerIDs(ctx, 2, []int{1027})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 825}, ids)

	ids, err = store.FillerIDs(ctx, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1027, 825, 1839}, ids)

	ids, err = store.FillerIDs(ctx, 0, nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestStore_Definitions(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	snap, err := store.ReadDefinitions(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap)

	first := time.UnixMilli(1_760_000_000_000)
	require.NoError(t, store.ReplaceDefinitions(ctx, []models.CryptoDefinition{
		{ID: 1, Rank: 1, Name: "Bitcoin", Symbol: "BTC", Slug: "bitcoin"},
	}, first))

	snap, err = store.ReadDefinitions(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Len(t, snap.Definitions, 1)
	assert.True(t, first.Equal(snap.LastUpdatedAt))

	second := first.Add(time.Hour)
	require.NoError(t, store.ReplaceDefinitions(ctx, []models.CryptoDefinition{
		{ID: 1, Rank: 1, Name: "Bitcoin", Symbol: "BTC", Slug: "bitcoin"},
		{ID: 1027, Rank: 2, Name: "Ethereum", Symbol: "ETH", Slug: "ethereum"},
	}, second))

	snap, err = store.ReadDefinitions(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Definitions, 2)
	assert.Equal(t, "ETH", snap.Definitions[1].Symbol)
	assert.True(t, second.Equal(snap.LastUpdatedAt))
}

func TestStore_ReplaceDefinitionsKeepsSupplyColumns(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.WriteQuotes(ctx, []models.CryptoInfo{info(1, 9, "USD")}, time.Now()))
	require.NoError(t, store.ReplaceDefinitions(ctx, []models.CryptoDefinition{
		{ID: 1, Rank: 1, Name: "Bitcoin", Symbol: "BTC", Slug: "bitcoin"},
	}, time.Now()))

	result, found, err := store.ReadQuotes(ctx, []int{1}, []string{"USD"}, time.Minute)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 1, result[1].CMCRank)
	assert.Equal(t, "Bitcoin", result[1].Name)
	assert.Equal(t, 19_000_000.0, result[1].CirculatingSupply)
}

func TestMigrate_Idempotent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "migrate.db")
	logger := zaptest.NewLogger(t)

	require.NoError(t, Migrate(DialectSQLite, dsn, logger))
	require.NoError(t, Migrate(DialectSQLite, dsn, logger))
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("postgres")
	require.NoError(t, err)
	assert.Equal(t, "pgx", d.DriverName())
	assert.Equal(t, "$1, $2, $3", d.Placeholders(1, 3))

	d, err = ParseDialect("SQLite")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.DriverName())
	assert.Equal(t, "?, ?", d.Placeholders(4, 2))

	_, err = ParseDialect("mysql")
	assert.Error(t, err)
}
