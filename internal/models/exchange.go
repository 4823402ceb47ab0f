package models

// OrderBookLevel is a single price level
type OrderBookLevel struct {
	Price  float64 `json:"price"`
	Amount float64 `json:"amount"`
}

// OrderBookMetadata carries ticker summary data next to the book
type OrderBookMetadata struct {
	Exchange       string   `json:"exchange"`
	Ticker         string   `json:"ticker"`
	VolumeBase24h  float64  `json:"volumeBase24h"`
	VolumeQuote24h *float64 `json:"volumeQuote24h"`
	LastPrice      float64  `json:"lastPrice"`
}

// OrderBook is the shaped order book returned to callers
type OrderBook struct {
	Asks     []OrderBookLevel  `json:"asks"`
	Bids     []OrderBookLevel  `json:"bids"`
	Metadata OrderBookMetadata `json:"metadata"`
}

// Candle is one OHLCV bar
type Candle struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// OHLCVMetadata carries the current price next to the candles
type OHLCVMetadata struct {
	Exchange     string  `json:"exchange"`
	Ticker       string  `json:"ticker"`
	CurrentPrice float64 `json:"currentPrice"`
}

// OHLCVResult is the shaped candle series returned to callers
type OHLCVResult struct {
	Data     []Candle      `json:"data"`
	Metadata OHLCVMetadata `json:"metadata"`
}

// AccountBalance is a shaped Nano or Banano account balance
type AccountBalance struct {
	Address    string  `json:"address"`
	Balance    float64 `json:"balance"`
	Pending    float64 `json:"pending"`
	Receivable float64 `json:"receivable"`
	IsMine     bool    `json:"isMine"`
}
