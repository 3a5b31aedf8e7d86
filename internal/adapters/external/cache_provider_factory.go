package external

import (
	"fmt"
	"time"

	"weatherproxy.app/internal/config"
	"weatherproxy.app/internal/ports"
	"weatherproxy.app/pkg/errors"
)

// CacheProviderFactory builds the cache backend selected by CACHE_TYPE
type CacheProviderFactory struct {
	logger ports.Logger
	now    func() time.Time
}

func NewCacheProviderFactory(logger ports.Logger) *CacheProviderFactory {
	return &CacheProviderFactory{logger: logger, now: time.Now}
}

// WithClock sets the clock used to timestamp stored entries
func (f *CacheProviderFactory) WithClock(now func() time.Time) *CacheProviderFactory {
	f.now = now
	return f
}

func (f *CacheProviderFactory) CreateCacheProvider(cfg *config.CacheConfig) (ports.CacheProvider, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("cache config cannot be nil", nil)
	}

	switch cfg.Type {
	case config.CacheTypeMemory:
		f.logCreated(cfg, ports.F("bounded", false))
		return NewMemoryCacheProviderWithClock(f.now), nil
	case config.CacheTypeLRU:
		f.logCreated(cfg, ports.F("bounded", true), ports.F("max_entries", cfg.MaxEntries))
		return NewLRUCacheProvider(LRUCacheProviderParams{
			MaxEntries: cfg.MaxEntries,
			Logger:     f.logger,
			Now:        f.now,
		})
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported cache type: %s", cfg.Type.String()), nil)
	}
}

func (f *CacheProviderFactory) logCreated(cfg *config.CacheConfig, fields ...ports.Field) {
	if f.logger == nil {
		return
	}
	fields = append([]ports.Field{ports.F("type", cfg.Type.String())}, fields...)
	f.logger.Info("Creating cache provider", fields...)
}
