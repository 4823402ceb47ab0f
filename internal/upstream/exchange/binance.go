package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"go-market-cache/internal/apierror"
	"go-market-cache/internal/config"
	"go-market-cache/internal/interfaces"
	"go-market-cache/internal/upstream"
)

const (
	endpointDepth  = "/api/v3/depth"
	endpointTicker = "/api/v3/ticker/24hr"
	endpointKlines = "/api/v3/klines"

	maxKlines = 1000
)

// Supported candle intervals
var timeframes = map[string]struct{}{
	"1m": {}, "3m": {}, "5m": {}, "15m": {}, "30m": {},
	"1h": {}, "2h": {}, "4h": {}, "6h": {}, "8h": {}, "12h": {},
	"1d": {}, "3d": {}, "1w": {}, "1M": {},
}

var _ interfaces.Exchange = (*Binance)(nil)

// Binance speaks the Binance spot REST API, which binance.us and several other venues mirror
type Binance struct {
	name      string
	baseURL   string
	requester *upstream.Requester
}

// NewBinance creates an adapter for one Binance-compatible venue
func NewBinance(cfg config.ExchangeConfig, logger *zap.Logger) *Binance {
	return &Binance{
		name:      cfg.Name,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		requester: upstream.NewRequester(cfg.Name, cfg.Timeout, logger),
	}
}

func (b *Binance) Name() string {
	return b.name
}

// MarketSymbol converts a unified "BASE/QUOTE" ticker to the venue symbol
func MarketSymbol(ticker string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(ticker), "/", ""))
}

func (b *Binance) get(ctx context.Context, endpoint string, query url.Values, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", b.name, err)
	}
	req.Header.Set("Accept", "application/json")

	body, err := b.requester.Do(req, endpoint)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", b.name, endpoint, err)
	}
	return nil
}

// FetchOrderBook returns up to limit levels per side
func (b *Binance) FetchOrderBook(ctx context.Context, symbol string, limit int) ([][2]float64, [][2]float64, error) {
	query := url.Values{}
	query.Set("symbol", MarketSymbol(symbol))
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var resp struct {
		Bids [][]string `json:"bids"`
		Asks [][]string `json:"asks"`
	}
	if err := b.get(ctx, endpointDepth, query, &resp); err != nil {
		return nil, nil, err
	}

	asks, err := parseLevels(resp.Asks)
	if err != nil {
		return nil, nil, fmt.Errorf("%s asks: %w", b.name, err)
	}
	bids, err := parseLevels(resp.Bids)
	if err != nil {
		return nil, nil, fmt.Errorf("%s bids: %w", b.name, err)
	}
	return asks, bids, nil
}

// FetchTicker returns the rolling 24h summary
func (b *Binance) FetchTicker(ctx context.Context, symbol string) (*interfaces.Ticker, error) {
	query := url.Values{}
	query.Set("symbol", MarketSymbol(symbol))

	var resp struct {
		LastPrice   string `json:"lastPrice"`
		Volume      string `json:"volume"`
		QuoteVolume string `json:"quoteVolume"`
	}
	if err := b.get(ctx, endpointTicker, query, &resp); err != nil {
		return nil, err
	}

	last, err := strconv.ParseFloat(resp.LastPrice, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s last price %q: %w", b.name, resp.LastPrice, err)
	}
	base, err := strconv.ParseFloat(resp.Volume, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s volume %q: %w", b.name, resp.Volume, err)
	}

	ticker := &interfaces.Ticker{Last: last, BaseVolume: base}
	if resp.QuoteVolume != "" {
		if quote, err := strconv.ParseFloat(resp.QuoteVolume, 64); err == nil {
			ticker.QuoteVolume = &quote
		}
	}
	return ticker, nil
}

// FetchOHLCV returns candles starting at since (unix ms)
func (b *Binance) FetchOHLCV(ctx context.Context, symbol, timeframe string, since int64) ([][6]float64, error) {
	if _, ok := timeframes[timeframe]; !ok {
		return nil, apierror.BadRequest("unsupported timeframe %q", timeframe)
	}

	query := url.Values{}
	query.Set("symbol", MarketSymbol(symbol))
	query.Set("interval", timeframe)
	query.Set("limit", strconv.Itoa(maxKlines))
	if since > 0 {
		query.Set("startTime", strconv.FormatInt(since, 10))
	}

	var rows [][]json.RawMessage
	if err := b.get(ctx, endpointKlines, query, &rows); err != nil {
		return nil, err
	}

	candles := make([][6]float64, 0, len(rows))
	for i, row := range rows {
		if len(row) < 6 {
			return nil, fmt.Errorf("%s kline %d has %d fields", b.name, i, len(row))
		}
		var candle [6]float64
		for j := 0; j < 6; j++ {
			v, err := parseNumber(row[j])
			if err != nil {
				return nil, fmt.Errorf("%s kline %d field %d: %w", b.name, i, j, err)
			}
			candle[j] = v
		}
		candles = append(candles, candle)
	}
	return candles, nil
}

func parseLevels(raw [][]string) ([][2]float64, error) {
	levels := make([][2]float64, 0, len(raw))
	for _, level := range raw {
		if len(level) < 2 {
			return nil, fmt.Errorf("malformed level %v", level)
		}
		price, err := strconv.ParseFloat(level[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q: %w", level[0], err)
		}
		amount, err := strconv.ParseFloat(level[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q: %w", level[1], err)
		}
		levels = append(levels, [2]float64{price, amount})
	}
	return levels, nil
}

// parseNumber accepts both JSON numbers and numeric strings
func parseNumber(raw json.RawMessage) (float64, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strconv.ParseFloat(s, 64)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, err
	}
	return f, nil
}
