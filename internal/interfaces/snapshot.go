package interfaces

import (
	"context"
	"time"

	"go-market-cache/internal/models"
)

//go:generate mockgen -package=mock -source=snapshot.go -destination=mock/snapshot.go

// QuoteSnapshotStore is the durable latest-quote cache
type QuoteSnapshotStore interface {
	// ReadQuotes returns found=false unless every (coin, ticker) pair has a row observed within maxAge
	ReadQuotes(ctx context.Context, coinIDs []int, tickers []string, maxAge time.Duration) (models.CryptoInfosResult, bool, error)
	// WriteQuotes upserts one row per (coin, ticker)
	WriteQuotes(ctx context.Context, infos []models.CryptoInfo, observedAt time.Time) error
	// FillerIDs returns up to limit coin IDs ranked by market cap, skipping exclude
	FillerIDs(ctx context.Context, limit int, exclude []int) ([]int, error)
}

// DefinitionStore persists the crypto definitions snapshot
type DefinitionStore interface {
	// ReadDefinitions returns nil when no snapshot has ever been written
	ReadDefinitions(ctx context.Context) (*models.CryptoDefinitionSnapshot, error)
	ReplaceDefinitions(ctx context.Context, defs []models.CryptoDefinition, updatedAt time.Time) error
}
