package exchange

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go-market-cache/internal/apierror"
	"go-market-cache/internal/config"
)

func newTestBinance(t *testing.T, handler http.HandlerFunc) *Binance {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewBinance(config.ExchangeConfig{
		Name:    "binance",
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	}, zaptest.NewLogger(t))
}

func TestMarketSymbol(t *testing.T) {
	assert.Equal(t, "BTCUSDT", MarketSymbol("BTC/USDT"))
	assert.Equal(t, "BANUSDT", MarketSymbol(" ban/usdt "))
	assert.Equal(t, "ETHBTC", MarketSymbol("ETHBTC"))
}

func TestBinance_FetchOrderBook(t *testing.T) {
	ex := newTestBinance(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, endpointDepth, r.URL.Path)
		assert.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"lastUpdateId": 1,
			"bids": [["65000.10", "0.5"], ["64999.00", "1.25"]],
			"asks": [["65001.00", "0.75"]]}`))
	})

	asks, bids, err := ex.FetchOrderBook(context.Background(), "BTC/USDT", 5)
	require.NoError(t, err)
	assert.Equal(t, [][2]float64{{65001.00, 0.75}}, asks)
	assert.Equal(t, [][2]float64{{65000.10, 0.5}, {64999.00, 1.25}}, bids)
}

func TestBinance_FetchTicker(t *testing.T) {
	ex := newTestBinance(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, endpointTicker, r.URL.Path)
		_, _ = w.Write([]byte(`{"symbol": "BTCUSDT", "lastPrice": "65000.5", "volume": "1200.5", "quoteVolume": "78000000"}`))
	})

	ticker, err := ex.FetchTicker(context.Background(), "BTC/USDT")
	require.NoError(t, err)
	assert.Equal(t, 65000.5, ticker.Last)
	assert.Equal(t, 1200.5, ticker.BaseVolume)
	require.NotNil(t, ticker.QuoteVolume)
	assert.Equal(t, 78000000.0, *ticker.QuoteVolume)
}

func TestBinance_FetchOHLCV(t *testing.T) {
	ex := newTestBinance(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, endpointKlines, r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		assert.Equal(t, "1700000000000", r.URL.Query().Get("startTime"))
		_, _ = w.Write([]byte(`[
			[1700000000000, "1.0", "2.0", "0.5", "1.5", "100", 1700086399999, "150", 10, "50", "75", "0"],
			[1700086400000, "1.5", "2.5", "1.0", "2.0", "200", 1700172799999, "400", 20, "100", "200", "0"]
		]`))
	})

	candles, err := ex.FetchOHLCV(context.Background(), "BTC/USDT", "1d", 1700000000000)
	require.NoError(t, err)
	require.Len(t, candles, 2)
	assert.Equal(t, [6]float64{1700000000000, 1.0, 2.0, 0.5, 1.5, 100}, candles[0])
	assert.Equal(t, 2.0, candles[1][4])
}

func TestBinance_FetchOHLCV_UnsupportedTimeframe(t *testing.T) {
	ex := newTestBinance(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := ex.FetchOHLCV(context.Background(), "BTC/USDT", "7h", 0)
	require.Error(t, err)

	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.CodeBadRequest, apiErr.Code)
}

func TestBinance_UpstreamError(t *testing.T) {
	ex := newTestBinance(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code": -1121, "msg": "Invalid symbol."}`))
	})

	_, err := ex.FetchTicker(context.Background(), "NOPE/USDT")
	require.Error(t, err)

	var upstreamErr *apierror.UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, "binance", upstreamErr.Provider)
	assert.Equal(t, http.StatusBadRequest, upstreamErr.StatusCode)
	assert.Equal(t, "Invalid symbol.", upstreamErr.Message)
}

func TestRegistry(t *testing.T) {
	logger := zaptest.NewLogger(t)
	registry := NewRegistryFromConfig([]config.ExchangeConfig{
		{Name: "binanceus", BaseURL: "https://api.binance.us"},
		{Name: "binance", BaseURL: "https://api.binance.com"},
	}, logger)

	assert.Equal(t, []string{"binance", "binanceus"}, registry.Names())

	ex, err := registry.Get("binanceus")
	require.NoError(t, err)
	assert.Equal(t, "binanceus", ex.Name())

	_, err = registry.Get("kraken")
	require.Error(t, err)
	assert.Equal(t, apierror.CodeBadRequest, apierror.From(err).Code)
}
