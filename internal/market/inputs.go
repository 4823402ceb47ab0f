package market

import "time"

const (
	defaultConvert   = "USD"
	defaultTimeframe = "1d"
	defaultLookback  = 30 * 24 * time.Hour
)

// CryptoInfosInput selects coins by CMC ID and the currencies to quote them in
type CryptoInfosInput struct {
	IDs     []int    `json:"ids" validate:"max=100"`
	Convert []string `json:"convert" validate:"max=3"`
}

func (in *CryptoInfosInput) ApplyDefaults() {
	if len(in.Convert) == 0 {
		in.Convert = []string{defaultConvert}
	}
}

type GlobalMetricsInput struct {
	Convert string `json:"convert"`
}

func (in *GlobalMetricsInput) ApplyDefaults() {
	if in.Convert == "" {
		in.Convert = defaultConvert
	}
}

// RankedListInput selects a 100-coin page; page 0 is treated as page 1
type RankedListInput struct {
	Convert string `json:"convert"`
	Page    int    `json:"page" validate:"gte=0"`
}

func (in *RankedListInput) ApplyDefaults() {
	if in.Convert == "" {
		in.Convert = defaultConvert
	}
}

type DefinitionsInput struct {
	Limit int `json:"limit" validate:"gte=0,lte=1500"`
}

func (in *DefinitionsInput) ApplyDefaults() {
	if in.Limit == 0 {
		in.Limit = 1500
	}
}

type OrderBookInput struct {
	Exchange string `json:"exchange" validate:"required"`
	Ticker   string `json:"ticker" validate:"required"`
	Limit    int    `json:"limit" validate:"required,gte=1,lte=5000"`
}

type OHLCVInput struct {
	Exchange  string `json:"exchange" validate:"required"`
	Ticker    string `json:"ticker" validate:"required"`
	Timeframe string `json:"timeframe"`
	Since     int64  `json:"since" validate:"gte=0"` // unix ms
}

// ApplyDefaults fills the timeframe and a since of 30 days ago, truncated to
// the minute so repeated calls derive the same cache key.
func (in *OHLCVInput) ApplyDefaults() {
	if in.Timeframe == "" {
		in.Timeframe = defaultTimeframe
	}
	if in.Since == 0 {
		in.Since = time.Now().Add(-defaultLookback).Truncate(time.Minute).UnixMilli()
	}
}

type AccountInput struct {
	Address string `json:"address" validate:"required,startswith=nano_|startswith=xrb_|startswith=ban_"`
	IsMine  bool   `json:"isMine"`
}

type BalancesInput struct {
	Accounts []AccountInput `json:"accounts" validate:"required,dive"`
}
