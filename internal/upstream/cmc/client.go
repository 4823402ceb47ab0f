// Package cmc is the CoinMarketCap Pro API client.
package cmc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-market-cache/internal/apierror"
	"go-market-cache/internal/config"
	"go-market-cache/internal/interfaces"
	"go-market-cache/internal/models"
	"go-market-cache/internal/upstream"
	"go-market-cache/internal/utils"
)

const (
	providerName = "cmc"
	apiKeyHeader = "X-CMC_PRO_API_KEY"

	EndpointQuotesLatest  = "/v2/cryptocurrency/quotes/latest"
	EndpointGlobalMetrics = "/v1/global-metrics/quotes/latest"
	EndpointFearAndGreed  = "/v3/fear-and-greed/latest"
	EndpointListings      = "/v1/cryptocurrency/listings/latest"
	EndpointMap           = "/v1/cryptocurrency/map"

	// ListingsPageSize is the number of coins per ranked listing page
	ListingsPageSize = 100
)

var _ interfaces.CMCClient = (*Client)(nil)

// Client calls the CoinMarketCap Pro API under a shared rate limit
type Client struct {
	baseURL   string
	apiKey    string
	requester *upstream.Requester
	limiter   *rate.Limiter
	logger    *zap.Logger
}

// NewClient creates a client for cfg. A non-positive requests-per-minute disables limiting.
func NewClient(cfg *config.CMCConfig, apiKey string, logger *zap.Logger) *Client {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerMinute > 0 {
		burst := cfg.RequestsPerMinute / 6
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), burst)
	}

	if apiKey == "" {
		logger.Warn("CMC API key is empty, upstream requests will be rejected")
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    apiKey,
		requester: upstream.NewRequester(providerName, cfg.Timeout, logger),
		limiter:   limiter,
		logger:    logger,
	}
}

// envelope is the response wrapper shared by every CMC endpoint
type envelope struct {
	Data json.RawMessage `json:"data"`
}

func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, dest interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("cmc rate limiter: %w", err)
	}

	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create cmc request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)

	body, err := c.requester.Do(req, endpoint)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("failed to decode cmc response: %w", err)
	}
	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		c.logger.Warn("No data in CMC response", zap.String("endpoint", endpoint))
		return &apierror.UpstreamError{
			Provider:   providerName,
			StatusCode: http.StatusOK,
			Message:    "No data in CMC response.",
		}
	}

	if err := json.Unmarshal(env.Data, dest); err != nil {
		return fmt.Errorf("failed to decode cmc %s data: %w", endpoint, err)
	}
	return nil
}

// QuotesLatest fetches the latest quotes of ids converted into every convert ticker
func (c *Client) QuotesLatest(ctx context.Context, ids []int, convert []string) ([]models.CryptoInfo, error) {
	query := url.Values{}
	query.Set("id", utils.IntsToCSV(ids))
	query.Set("convert", strings.Join(convert, ","))

	var data map[string]models.CryptoInfo
	if err := c.getJSON(ctx, EndpointQuotesLatest, query, &data); err != nil {
		return nil, err
	}

	infos := make([]models.CryptoInfo, 0, len(data))
	for _, info := range data {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos, nil
}

type globalMetricsData struct {
	BTCDominance float64 `json:"btc_dominance"`
	ETHDominance float64 `json:"eth_dominance"`
	Quote        map[string]struct {
		TotalMarketCap                          float64 `json:"total_market_cap"`
		TotalVolume24h                          float64 `json:"total_volume_24h"`
		LastUpdated                             string  `json:"last_updated"`
		TotalMarketCapYesterday                 float64 `json:"total_market_cap_yesterday"`
		TotalMarketCapYesterdayPercentageChange float64 `json:"total_market_cap_yesterday_percentage_change"`
	} `json:"quote"`
}

// GlobalMetrics fetches global market totals expressed in convert
func (c *Client) GlobalMetrics(ctx context.Context, convert string) (*models.GlobalMetrics, error) {
	query := url.Values{}
	query.Set("convert", convert)

	var data globalMetricsData
	if err := c.getJSON(ctx, EndpointGlobalMetrics, query, &data); err != nil {
		return nil, err
	}

	quote, ok := data.Quote[convert]
	if !ok {
		return nil, &apierror.UpstreamError{
			Provider:   providerName,
			StatusCode: http.StatusOK,
			Message:    fmt.Sprintf("No %s quote in CMC global metrics.", convert),
		}
	}

	return &models.GlobalMetrics{
		TotalMarketCap:                          quote.TotalMarketCap,
		TotalVolume24h:                          quote.TotalVolume24h,
		LastUpdated:                             quote.LastUpdated,
		TotalMarketCapYesterday:                 quote.TotalMarketCapYesterday,
		TotalMarketCapYesterdayPercentageChange: quote.TotalMarketCapYesterdayPercentageChange,
		BTCDominance:                            data.BTCDominance,
		ETHDominance:                            data.ETHDominance,
	}, nil
}

// FearAndGreed fetches the latest fear and greed index
func (c *Client) FearAndGreed(ctx context.Context) (*models.FearGreedIndex, error) {
	var data struct {
		Value               float64 `json:"value"`
		ValueClassification string  `json:"value_classification"`
		Timestamp           string  `json:"timestamp"`
		UpdateTime          string  `json:"update_time"`
	}
	if err := c.getJSON(ctx, EndpointFearAndGreed, nil, &data); err != nil {
		return nil, err
	}

	timestamp := data.Timestamp
	if timestamp == "" {
		timestamp = data.UpdateTime
	}
	return &models.FearGreedIndex{
		Value:               data.Value,
		ValueClassification: data.ValueClassification,
		Timestamp:           timestamp,
	}, nil
}

// Listings fetches one page of coins ranked by market cap, start is 1-based
func (c *Client) Listings(ctx context.Context, convert string, start, limit int) ([]models.CoinListItem, error) {
	query := url.Values{}
	query.Set("convert", convert)
	query.Set("limit", strconv.Itoa(limit))
	query.Set("start", strconv.Itoa(start))

	var data []models.CoinListItem
	if err := c.getJSON(ctx, EndpointListings, query, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// Map fetches up to limit coin definitions sorted by the given field
func (c *Client) Map(ctx context.Context, sortBy string, limit int) ([]models.CryptoDefinition, error) {
	query := url.Values{}
	query.Set("sort", sortBy)
	query.Set("limit", strconv.Itoa(limit))

	var data []models.CryptoDefinition
	if err := c.getJSON(ctx, EndpointMap, query, &data); err != nil {
		return nil, err
	}
	return data, nil
}
