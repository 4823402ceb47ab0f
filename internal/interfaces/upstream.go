package interfaces

import (
	"context"

	"go-market-cache/internal/models"
)

//go:generate mockgen -package=mock -source=upstream.go -destination=mock/upstream.go

// CMCClient fetches market data from CoinMarketCap
type CMCClient interface {
	QuotesLatest(ctx context.Context, ids []int, convert []string) ([]models.CryptoInfo, error)
	GlobalMetrics(ctx context.Context, convert string) (*models.GlobalMetrics, error)
	FearAndGreed(ctx context.Context) (*models.FearGreedIndex, error)
	Listings(ctx context.Context, convert string, start, limit int) ([]models.CoinListItem, error)
	Map(ctx context.Context, sort string, limit int) ([]models.CryptoDefinition, error)
}

// Ticker is the 24h summary of a market
type Ticker struct {
	Last        float64
	BaseVolume  float64
	QuoteVolume *float64
}

// Exchange is the unified per-exchange market data adapter.
// Order book levels are [price, amount]; candles are [timestamp, open, high, low, close, volume].
type Exchange interface {
	Name() string
	FetchOrderBook(ctx context.Context, symbol string, limit int) (asks, bids [][2]float64, err error)
	FetchTicker(ctx context.Context, symbol string) (*Ticker, error)
	FetchOHLCV(ctx context.Context, symbol, timeframe string, since int64) ([][6]float64, error)
}

// NodeBalance is a raw account balance as reported by a Nano-protocol node
type NodeBalance struct {
	Balance    string `json:"balance"`
	Pending    string `json:"pending"`
	Receivable string `json:"receivable"`
}

// NodeRPC queries a Nano-protocol node
type NodeRPC interface {
	AccountsBalances(ctx context.Context, accounts []string) (map[string]NodeBalance, error)
}
