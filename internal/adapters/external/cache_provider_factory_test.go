package external

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherproxy.app/internal/config"
	"weatherproxy.app/pkg/errors"
)

func TestCacheProviderFactory_CreateCacheProvider(t *testing.T) {
	factory := NewCacheProviderFactory(&testLogger{})

	tests := []struct {
		name         string
		config       *config.CacheConfig
		expectError  bool
		expectedType string
	}{
		{
			name:        "NilConfig",
			config:      nil,
			expectError: true,
		},
		{
			name:         "MemoryCache",
			config:       &config.CacheConfig{Type: config.CacheTypeMemory},
			expectedType: "*external.MemoryCacheProvider",
		},
		{
			name:         "LRUCache",
			config:       &config.CacheConfig{Type: config.CacheTypeLRU, MaxEntries: 10},
			expectedType: "*external.LRUCacheProvider",
		},
		{
			name:        "LRUCacheWithoutCapacity",
			config:      &config.CacheConfig{Type: config.CacheTypeLRU},
			expectError: true,
		},
		{
			name:        "UnknownCacheType",
			config:      &config.CacheConfig{Type: config.CacheTypeUnknown},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := factory.CreateCacheProvider(tt.config)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, provider)
				assert.True(t, errors.IsConfigurationError(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedType, typeName(provider))
		})
	}
}

func TestCacheProviderFactory_WithClock(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	factory := NewCacheProviderFactory(&testLogger{}).WithClock(func() time.Time { return fixed })

	for _, cacheType := range []config.CacheType{config.CacheTypeMemory, config.CacheTypeLRU} {
		t.Run(cacheType.String(), func(t *testing.T) {
			provider, err := factory.CreateCacheProvider(&config.CacheConfig{Type: cacheType, MaxEntries: 2})
			require.NoError(t, err)

			require.NoError(t, provider.Set(context.Background(), "k", []byte(`{}`)))
			entry, err := provider.Get(context.Background(), "k")

			require.NoError(t, err)
			assert.Equal(t, fixed, entry.StoredAt)
		})
	}
}
