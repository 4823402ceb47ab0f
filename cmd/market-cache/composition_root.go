package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"go-market-cache/internal/background"
	"go-market-cache/internal/cache"
	"go-market-cache/internal/cache/l1"
	"go-market-cache/internal/cache/l2"
	"go-market-cache/internal/cache/multi"
	"go-market-cache/internal/cache/noop"
	"go-market-cache/internal/cache/service"
	"go-market-cache/internal/cache_rules"
	"go-market-cache/internal/config"
	"go-market-cache/internal/httpserver"
	"go-market-cache/internal/interfaces"
	"go-market-cache/internal/market"
	"go-market-cache/internal/procedure"
	"go-market-cache/internal/refresh"
	"go-market-cache/internal/snapshot"
	"go-market-cache/internal/upstream/cmc"
	"go-market-cache/internal/upstream/exchange"
	"go-market-cache/internal/upstream/nanoban"
)

const (
	defaultConfigPath = "/app/market_cache.yaml"
)

// CompositionRoot holds all application dependencies and provides a centralized
// place for dependency injection and resource cleanup.
type CompositionRoot struct {
	// Configuration
	Config     *config.Config
	Logger     *zap.Logger
	CacheRules *cache_rules.CacheConfig

	// Cache components
	L1Cache    interfaces.Cache
	L2Cache    interfaces.Cache
	KeyBuilder interfaces.KeyBuilder
	FastCache  *service.CacheService

	// Storage and upstreams
	Store     *snapshot.Store
	CMC       *cmc.Client
	Exchanges *exchange.Registry
	Nano      *nanoban.Client
	Banano    *nanoban.Client

	// Services
	Runner     *background.Runner
	Procedures *procedure.Registry
	HTTPServer *httpserver.Server
}

// NewCompositionRoot creates and wires all application dependencies.
//
// Initialization order:
// 1. Environment files and logger
// 2. Configuration and cache rules
// 3. Fast cache (L1, L2, multi-level service)
// 4. Snapshot store
// 5. Upstream clients
// 6. Services and procedures
// 7. HTTP server
func NewCompositionRoot() (*CompositionRoot, error) {
	root := &CompositionRoot{}

	loaded, envErr := loadEnvFiles(".env.local", ".env")

	if err := root.initLogger(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if envErr != nil {
		return nil, envErr
	}
	if len(loaded) > 0 {
		root.Logger.Info("Loaded environment files", zap.Strings("files", loaded))
	}

	if err := root.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := root.loadCacheRules(); err != nil {
		return nil, fmt.Errorf("failed to load cache rules: %w", err)
	}

	if err := root.initCacheComponents(); err != nil {
		return nil, fmt.Errorf("failed to initialize cache components: %w", err)
	}

	if err := root.initSnapshotStore(); err != nil {
		_ = root.closeCaches()
		return nil, fmt.Errorf("failed to initialize snapshot store: %w", err)
	}

	root.initUpstreams()
	root.initServices()
	root.initHTTPServer()

	return root, nil
}

// initLogger initializes the application logger
func (r *CompositionRoot) initLogger() error {
	var (
		logger *zap.Logger
		err    error
	)
	if os.Getenv("LOG_DEVELOPMENT") == "true" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	r.Logger = logger
	return nil
}

// loadConfig loads the application configuration. A missing file falls back to defaults.
func (r *CompositionRoot) loadConfig() error {
	configPath := envOrDefault("CACHE_CONFIG_FILE", defaultConfigPath)

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		r.Logger.Warn("Config file not found, using defaults", zap.String("path", configPath))
		r.Config = config.Default()
		return nil
	}

	cfg, err := config.LoadConfig(configPath, r.Logger)
	if err != nil {
		return err
	}

	r.Config = cfg
	return nil
}

// loadCacheRules loads tier durations and per-procedure overrides
func (r *CompositionRoot) loadCacheRules() error {
	rulesPath := os.Getenv("CACHE_RULES_FILE")
	if rulesPath == "" {
		r.Logger.Info("No cache rules file configured, using built-in tiers")
		r.CacheRules = cache_rules.DefaultCacheConfig(r.Logger)
		return nil
	}

	rules, err := cache_rules.LoadCacheRulesConfig(rulesPath, r.Logger)
	if err != nil {
		return err
	}

	r.CacheRules = rules
	return nil
}

// initCacheComponents builds the two fast cache levels and the service over them
func (r *CompositionRoot) initCacheComponents() error {
	if err := r.initL1Cache(); err != nil {
		return fmt.Errorf("failed to initialize L1 cache: %w", err)
	}
	r.initL2Cache()

	r.KeyBuilder = cache.NewKeyBuilder()

	multiCache := multi.NewMultiCache(
		[]interfaces.Cache{r.L1Cache, r.L2Cache},
		&r.Config.MultiCache,
		r.Logger,
	)
	r.FastCache = service.NewCacheService(multiCache, r.CacheRules, r.Logger)
	return nil
}

// initL1Cache initializes the L1 cache (BigCache)
func (r *CompositionRoot) initL1Cache() error {
	if !r.Config.BigCache.Enabled {
		r.L1Cache = noop.NewNoOpCache()
		r.Logger.Info("BigCache (L1) disabled")
		return nil
	}

	l1Cache, err := l1.NewBigCache(&r.Config.BigCache, r.Config.MultiCache.L1MaxTTL, r.Logger)
	if err != nil {
		return err
	}
	r.L1Cache = l1Cache
	r.Logger.Info("BigCache (L1) initialized", zap.Int("size_mb", r.Config.BigCache.Size))
	return nil
}

// initL2Cache initializes the L2 cache (KeyDB). Connection failures degrade to no L2.
func (r *CompositionRoot) initL2Cache() {
	if !r.Config.KeyDB.Enabled {
		r.L2Cache = noop.NewNoOpCache()
		r.Logger.Info("KeyDB (L2) disabled")
		return
	}

	keydbURL := GetKeyDBURL(r.Logger)
	keydbClient, err := l2.NewRedisKeyDbClient(&r.Config.KeyDB, keydbURL, r.Logger)
	if err != nil {
		r.Logger.Warn("Failed to connect to KeyDB, falling back to no L2 cache", zap.Error(err))
		r.L2Cache = noop.NewNoOpCache()
		return
	}

	r.L2Cache = l2.NewKeyDBCache(&r.Config.KeyDB, keydbClient, r.Logger)
	r.Logger.Info("KeyDB (L2) initialized")
}

// initSnapshotStore opens the SQL snapshot store. DATABASE_URL selects Postgres.
func (r *CompositionRoot) initSnapshotStore() error {
	dbCfg := r.Config.Database
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		dbCfg.Driver = string(snapshot.DialectPostgres)
		dbCfg.DSN = dsn
	}

	store, err := snapshot.Open(&dbCfg, r.Logger)
	if err != nil {
		return err
	}
	r.Store = store
	return nil
}

// initUpstreams creates the CMC, exchange and node RPC clients
func (r *CompositionRoot) initUpstreams() {
	apiKey := os.Getenv("CMC_API_KEY")
	if apiKey == "" {
		r.Logger.Warn("CMC_API_KEY is not set, CoinMarketCap requests will be rejected")
	}

	r.CMC = cmc.NewClient(&r.Config.CMC, apiKey, r.Logger)
	r.Exchanges = exchange.NewRegistryFromConfig(r.Config.Exchanges, r.Logger)
	r.Nano = nanoban.NewClient("nano", r.Config.Nodes.Nano, r.Logger)
	r.Banano = nanoban.NewClient("banano", r.Config.Nodes.Banano, r.Logger)
}

// initServices wires the domain services and registers every procedure
func (r *CompositionRoot) initServices() {
	r.Runner = background.NewRunner(r.Logger)

	definitions := refresh.NewDefinitionsRefresher(
		r.Store,
		r.CMC,
		r.Runner,
		&r.Config.Definitions,
		r.CacheRules.GetTtlForTier(r.Config.Definitions.FreshnessTier),
		r.Logger,
	)

	services := market.Services{
		CMC: market.NewCMCService(
			r.CMC,
			r.Store,
			definitions,
			&r.Config.Quotes,
			r.CacheRules.GetTtlForTier(r.Config.Quotes.FreshnessTier),
			r.Logger,
		),
		Exchange: market.NewExchangeService(r.Exchanges, r.Logger),
		NanoBan:  market.NewNanoBanService(r.Nano, r.Banano, r.Logger),
	}

	wrapper := procedure.NewWrapper(
		r.KeyBuilder,
		r.FastCache,
		cache_rules.NewClassifier(r.Logger, r.CacheRules),
		r.Runner,
		r.Logger,
	)

	r.Procedures = procedure.NewRegistry(r.Logger)
	market.RegisterProcedures(r.Procedures, wrapper, services)

	names := r.Procedures.Names()
	r.Logger.Info("Procedures registered", zap.Strings("procedures", names))
	if unknown := r.CacheRules.UnknownProcedures(names); len(unknown) > 0 {
		r.Logger.Warn("Cache rules reference unknown procedures", zap.Strings("procedures", unknown))
	}
}

// initHTTPServer initializes the HTTP server
func (r *CompositionRoot) initHTTPServer() {
	adminToken := os.Getenv("ADMIN_TOKEN")
	if adminToken == "" {
		r.Logger.Info("ADMIN_TOKEN is not set, admin endpoints disabled")
	}

	r.HTTPServer = httpserver.NewServer(
		r.Procedures,
		r.FastCache,
		r.KeyBuilder,
		r.Store,
		adminToken,
		r.Logger,
	)
}

// closeCaches releases the L1 metrics scheduler and the KeyDB connection pool
func (r *CompositionRoot) closeCaches() error {
	var errs []error
	if c, ok := r.L1Cache.(*l1.BigCache); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close L1 cache: %w", err))
		}
	}
	if c, ok := r.L2Cache.(*l2.KeyDBCache); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close L2 cache: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Cleanup performs cleanup of all resources
func (r *CompositionRoot) Cleanup() error {
	errs := []error{r.closeCaches()}

	if r.Store != nil {
		if err := r.Store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close snapshot store: %w", err))
		}
	}

	if r.Logger != nil {
		// Sync on stderr-backed loggers fails with EINVAL on some platforms
		_ = r.Logger.Sync()
	}

	return errors.Join(errs...)
}
