// Package exchange adapts centralized exchange REST APIs to interfaces.Exchange.
package exchange

import (
	"sort"

	"go.uber.org/zap"

	"go-market-cache/internal/apierror"
	"go-market-cache/internal/config"
	"go-market-cache/internal/interfaces"
)

// Registry resolves exchange adapters by name. It is built once at startup and read-only afterwards.
type Registry struct {
	exchanges map[string]interfaces.Exchange
}

// NewRegistry indexes the given adapters by Name()
func NewRegistry(exchanges ...interfaces.Exchange) *Registry {
	r := &Registry{exchanges: make(map[string]interfaces.Exchange, len(exchanges))}
	for _, ex := range exchanges {
		r.exchanges[ex.Name()] = ex
	}
	return r
}

// NewRegistryFromConfig creates a Binance-compatible adapter per configured exchange
func NewRegistryFromConfig(cfgs []config.ExchangeConfig, logger *zap.Logger) *Registry {
	exchanges := make([]interfaces.Exchange, 0, len(cfgs))
	for _, cfg := range cfgs {
		exchanges = append(exchanges, NewBinance(cfg, logger))
		logger.Info("Exchange registered", zap.String("exchange", cfg.Name), zap.String("base_url", cfg.BaseURL))
	}
	return NewRegistry(exchanges...)
}

// Get returns the adapter for name, or a BAD_REQUEST error for unknown exchanges
func (r *Registry) Get(name string) (interfaces.Exchange, error) {
	ex, ok := r.exchanges[name]
	if !ok {
		return nil, apierror.BadRequest("unsupported exchange %q", name)
	}
	return ex, nil
}

// Names lists the registered exchanges in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.exchanges))
	for name := range r.exchanges {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
