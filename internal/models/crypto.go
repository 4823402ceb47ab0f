package models

import "time"

// CryptoQuote is the market data of one coin expressed in one currency
type CryptoQuote struct {
	Price                 float64 `json:"price"`
	Volume24h             float64 `json:"volume_24h"`
	VolumeChange24h       float64 `json:"volume_change_24h"`
	PercentChange1h       float64 `json:"percent_change_1h"`
	PercentChange24h      float64 `json:"percent_change_24h"`
	PercentChange7d       float64 `json:"percent_change_7d"`
	PercentChange30d      float64 `json:"percent_change_30d"`
	MarketCap             float64 `json:"market_cap"`
	MarketCapDominance    float64 `json:"market_cap_dominance"`
	FullyDilutedMarketCap float64 `json:"fully_diluted_market_cap"`
	LastUpdated           string  `json:"last_updated"`
}

// CryptoInfo is a coin together with its quotes keyed by currency ticker
type CryptoInfo struct {
	ID                int                    `json:"id"`
	Name              string                 `json:"name"`
	Symbol            string                 `json:"symbol"`
	Slug              string                 `json:"slug"`
	CMCRank           int                    `json:"cmc_rank"`
	CirculatingSupply float64                `json:"circulating_supply"`
	TotalSupply       float64                `json:"total_supply"`
	MaxSupply         *float64               `json:"max_supply"`
	LastUpdated       string                 `json:"last_updated"`
	Quote             map[string]CryptoQuote `json:"quote"`
}

// CryptoInfosResult maps coin ID to its info
type CryptoInfosResult map[int]CryptoInfo

// FearGreedIndex is the latest fear and greed reading
type FearGreedIndex struct {
	Value               float64 `json:"value"`
	ValueClassification string  `json:"value_classification"`
	Timestamp           string  `json:"timestamp"`
}

// GlobalMetrics is the merged global market overview
type GlobalMetrics struct {
	TotalMarketCap                          float64        `json:"total_market_cap"`
	TotalVolume24h                          float64        `json:"total_volume_24h"`
	LastUpdated                             string         `json:"last_updated"`
	TotalMarketCapYesterday                 float64        `json:"total_market_cap_yesterday"`
	TotalMarketCapYesterdayPercentageChange float64        `json:"total_market_cap_yesterday_percentage_change"`
	FearGreedIndex                          FearGreedIndex `json:"fear_greed_index"`
	BTCDominance                            float64        `json:"btc_dominance"`
	ETHDominance                            float64        `json:"eth_dominance"`
}

// CoinListItem is one row of the ranked listing
type CoinListItem struct {
	ID                int                    `json:"id"`
	Name              string                 `json:"name"`
	Symbol            string                 `json:"symbol"`
	Slug              string                 `json:"slug"`
	NumMarketPairs    int                    `json:"num_market_pairs"`
	DateAdded         string                 `json:"date_added"`
	Tags              []string               `json:"tags"`
	MaxSupply         *float64               `json:"max_supply"`
	CirculatingSupply float64                `json:"circulating_supply"`
	TotalSupply       float64                `json:"total_supply"`
	CMCRank           int                    `json:"cmc_rank"`
	LastUpdated       string                 `json:"last_updated"`
	Quote             map[string]CryptoQuote `json:"quote"`
}

// RankedCryptoList is one page of coins ranked by market cap
type RankedCryptoList struct {
	CoinList []CoinListItem `json:"coin_list"`
}

// CryptoDefinition is the static metadata of a tracked coin
type CryptoDefinition struct {
	ID     int    `json:"id"`
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Slug   string `json:"slug"`
}

// CryptoDefinitionSnapshot is the persisted best-known definitions list
type CryptoDefinitionSnapshot struct {
	Definitions   []CryptoDefinition `json:"definitions"`
	LastUpdatedAt time.Time          `json:"last_updated_at"`
}
