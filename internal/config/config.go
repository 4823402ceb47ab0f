package config

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"go-market-cache/internal/models"
)

// Config represents the main configuration structure
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	BigCache    BigCacheConfig    `yaml:"bigcache"`
	KeyDB       KeyDBConfig       `yaml:"keydb"`
	MultiCache  MultiCacheConfig  `yaml:"multi_cache"`
	Database    DatabaseConfig    `yaml:"database"`
	CMC         CMCConfig         `yaml:"cmc"`
	Quotes      QuotesConfig      `yaml:"quotes"`
	Definitions DefinitionsConfig `yaml:"definitions"`
	Exchanges   []ExchangeConfig  `yaml:"exchanges"`
	Nodes       NodesConfig       `yaml:"nodes"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// BigCacheConfig configures the in-process L1 tier
type BigCacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"` // MB
}

// KeyDBConfig configures the remote L2 tier
type KeyDBConfig struct {
	Enabled    bool   `yaml:"enabled"`
	KeyPrefix  string `yaml:"key_prefix"` // prepended to every key
	Connection struct {
		ConnectTimeout time.Duration `yaml:"connect_timeout"`
		SendTimeout    time.Duration `yaml:"send_timeout"`
		ReadTimeout    time.Duration `yaml:"read_timeout"`
	} `yaml:"connection"`
	Keepalive struct {
		PoolSize       int           `yaml:"pool_size"`
		MaxIdleTimeout time.Duration `yaml:"max_idle_timeout"`
	} `yaml:"keepalive"`
}

// MultiCacheConfig controls how the tiers cooperate
type MultiCacheConfig struct {
	EnablePropagation bool          `yaml:"enable_propagation"` // backfill L1 on L2 hits
	L1MaxTTL          time.Duration `yaml:"l1_max_ttl"`
}

type DatabaseConfig struct {
	Driver       string        `yaml:"driver"` // sqlite or postgres
	DSN          string        `yaml:"dsn"`
	MaxOpenConns int           `yaml:"max_open_conns"`
	QueryTimeout time.Duration `yaml:"query_timeout"`
}

type CMCConfig struct {
	BaseURL           string        `yaml:"base_url"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
}

// QuotesConfig controls the snapshot-backed quote lookups
type QuotesConfig struct {
	BatchSize     int              `yaml:"batch_size"`
	FreshnessTier models.CacheTier `yaml:"freshness_tier"`
}

// DefinitionsConfig controls the stale-while-revalidate definitions dataset
type DefinitionsConfig struct {
	MaxLimit       int              `yaml:"max_limit"`
	FreshnessTier  models.CacheTier `yaml:"freshness_tier"`
	RefreshTimeout time.Duration    `yaml:"refresh_timeout"`
}

type ExchangeConfig struct {
	Name    string        `yaml:"name"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type NodeConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type NodesConfig struct {
	Nano   NodeConfig `yaml:"nano"`
	Banano NodeConfig `yaml:"banano"`
}

// LoadConfig loads configuration from file path
func LoadConfig(configPath string, logger *zap.Logger) (*Config, error) {
	logger.Info("Loading configuration", zap.String("path", configPath))

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var config Config
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to decode YAML config: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

// Default returns a configuration with every default applied and both cache tiers disabled
func Default() *Config {
	var config Config
	config.applyDefaults()
	return &config
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}

	if c.BigCache.Size == 0 {
		c.BigCache.Size = 100
	}

	if c.KeyDB.KeyPrefix == "" {
		c.KeyDB.KeyPrefix = "market-cache:"
	}
	if c.KeyDB.Connection.ConnectTimeout == 0 {
		c.KeyDB.Connection.ConnectTimeout = time.Second
	}
	if c.KeyDB.Connection.SendTimeout == 0 {
		c.KeyDB.Connection.SendTimeout = time.Second
	}
	if c.KeyDB.Connection.ReadTimeout == 0 {
		c.KeyDB.Connection.ReadTimeout = time.Second
	}
	if c.KeyDB.Keepalive.PoolSize == 0 {
		c.KeyDB.Keepalive.PoolSize = 10
	}
	if c.KeyDB.Keepalive.MaxIdleTimeout == 0 {
		c.KeyDB.Keepalive.MaxIdleTimeout = 10 * time.Second
	}

	if c.MultiCache.L1MaxTTL == 0 {
		c.MultiCache.L1MaxTTL = 10 * time.Minute
	}

	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.DSN == "" && c.Database.Driver == "sqlite" {
		c.Database.DSN = "file:market_cache.db"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.QueryTimeout == 0 {
		c.Database.QueryTimeout = 5 * time.Second
	}

	if c.CMC.BaseURL == "" {
		c.CMC.BaseURL = "https://pro-api.coinmarketcap.com"
	}
	if c.CMC.Timeout == 0 {
		c.CMC.Timeout = 10 * time.Second
	}
	if c.CMC.RequestsPerMinute == 0 {
		c.CMC.RequestsPerMinute = 30
	}

	if c.Quotes.BatchSize == 0 {
		c.Quotes.BatchSize = 100
	}
	if c.Quotes.FreshnessTier == "" {
		c.Quotes.FreshnessTier = models.CacheTierSecondsLong
	}

	if c.Definitions.MaxLimit == 0 {
		c.Definitions.MaxLimit = 1500
	}
	if c.Definitions.FreshnessTier == "" {
		c.Definitions.FreshnessTier = models.CacheTierHoursShort
	}
	if c.Definitions.RefreshTimeout == 0 {
		c.Definitions.RefreshTimeout = 30 * time.Second
	}

	if len(c.Exchanges) == 0 {
		c.Exchanges = []ExchangeConfig{
			{Name: "binance", BaseURL: "https://api.binance.com"},
			{Name: "binanceus", BaseURL: "https://api.binance.us"},
		}
	}
	for i := range c.Exchanges {
		if c.Exchanges[i].Timeout == 0 {
			c.Exchanges[i].Timeout = 10 * time.Second
		}
	}

	if c.Nodes.Nano.URL == "" {
		c.Nodes.Nano.URL = "https://rpc.nano.to"
	}
	if c.Nodes.Nano.Timeout == 0 {
		c.Nodes.Nano.Timeout = 10 * time.Second
	}
	if c.Nodes.Banano.URL == "" {
		c.Nodes.Banano.URL = "https://kaliumapi.appditto.com/api"
	}
	if c.Nodes.Banano.Timeout == 0 {
		c.Nodes.Banano.Timeout = 10 * time.Second
	}
}
