package market

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"go-market-cache/internal/interfaces"
	"go-market-cache/internal/models"
)

// maxBatchConcurrency bounds parallel upstream calls of one batch procedure
const maxBatchConcurrency = 8

// ExchangeResolver looks up exchange adapters by name
type ExchangeResolver interface {
	Get(name string) (interfaces.Exchange, error)
}

// ExchangeService serves order books and candles from centralized exchanges
type ExchangeService struct {
	exchanges ExchangeResolver
	logger    *zap.Logger
}

func NewExchangeService(exchanges ExchangeResolver, logger *zap.Logger) *ExchangeService {
	return &ExchangeService{exchanges: exchanges, logger: logger}
}

// GetOrderBook fetches the book and the 24h ticker concurrently
func (s *ExchangeService) GetOrderBook(ctx context.Context, in OrderBookInput) (models.OrderBook, error) {
	ex, err := s.exchanges.Get(in.Exchange)
	if err != nil {
		return models.OrderBook{}, err
	}

	var (
		asks, bids [][2]float64
		ticker     *interfaces.Ticker
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		asks, bids, err = ex.FetchOrderBook(gctx, in.Ticker, in.Limit)
		return err
	})
	g.Go(func() error {
		var err error
		ticker, err = ex.FetchTicker(gctx, in.Ticker)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.OrderBook{}, err
	}

	return shapeOrderBook(asks, bids, ticker, in), nil
}

// GetOrderBooks fetches every requested book; any failure fails the batch
func (s *ExchangeService) GetOrderBooks(ctx context.Context, in []OrderBookInput) ([]models.OrderBook, error) {
	books := make([]models.OrderBook, len(in))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxBatchConcurrency)
	for i := range in {
		i := i
		g.Go(func() error {
			book, err := s.GetOrderBook(gctx, in[i])
			if err != nil {
				return err
			}
			books[i] = book
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return books, nil
}

// GetOHLCV fetches candles and the current price concurrently
func (s *ExchangeService) GetOHLCV(ctx context.Context, in OHLCVInput) (models.OHLCVResult, error) {
	ex, err := s.exchanges.Get(in.Exchange)
	if err != nil {
		return models.OHLCVResult{}, err
	}

	var (
		candles [][6]float64
		ticker  *interfaces.Ticker
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		candles, err = ex.FetchOHLCV(gctx, in.Ticker, in.Timeframe, in.Since)
		return err
	})
	g.Go(func() error {
		var err error
		ticker, err = ex.FetchTicker(gctx, in.Ticker)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.OHLCVResult{}, err
	}

	return shapeOHLCV(candles, ticker, in), nil
}

// GetOHLCVs fetches every requested series; any failure fails the batch
func (s *ExchangeService) GetOHLCVs(ctx context.Context, in []OHLCVInput) ([]models.OHLCVResult, error) {
	results := make([]models.OHLCVResult, len(in))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxBatchConcurrency)
	for i := range in {
		i := i
		g.Go(func() error {
			res, err := s.GetOHLCV(gctx, in[i])
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func shapeOrderBook(asks, bids [][2]float64, ticker *interfaces.Ticker, in OrderBookInput) models.OrderBook {
	book := models.OrderBook{
		Asks: make([]models.OrderBookLevel, 0, len(asks)),
		Bids: make([]models.OrderBookLevel, 0, len(bids)),
		Metadata: models.OrderBookMetadata{
			Exchange:       in.Exchange,
			Ticker:         in.Ticker,
			VolumeBase24h:  ticker.BaseVolume,
			VolumeQuote24h: ticker.QuoteVolume,
			LastPrice:      ticker.Last,
		},
	}
	for _, a := range asks {
		book.Asks = append(book.Asks, models.OrderBookLevel{Price: a[0], Amount: a[1]})
	}
	for _, b := range bids {
		book.Bids = append(book.Bids, models.OrderBookLevel{Price: b[0], Amount: b[1]})
	}
	return book
}

func shapeOHLCV(candles [][6]float64, ticker *interfaces.Ticker, in OHLCVInput) models.OHLCVResult {
	data := make([]models.Candle, 0, len(candles))
	for _, c := range candles {
		data = append(data, models.Candle{
			Timestamp: int64(c[0]),
			Open:      c[1],
			High:      c[2],
			Low:       c[3],
			Close:     c[4],
			Volume:    c[5],
		})
	}
	return models.OHLCVResult{
		Data: data,
		Metadata: models.OHLCVMetadata{
			Exchange:     in.Exchange,
			Ticker:       in.Ticker,
			CurrentPrice: ticker.Last,
		},
	}
}
