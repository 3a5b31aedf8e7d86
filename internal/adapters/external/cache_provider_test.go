package external

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherproxy.app/internal/ports"
	"weatherproxy.app/pkg/errors"
)

func typeName(v interface{}) string {
	return reflect.TypeOf(v).String()
}

func cacheProvidersUnderTest(t *testing.T) map[string]ports.CacheProvider {
	lru, err := NewLRUCacheProvider(LRUCacheProviderParams{MaxEntries: 100})
	require.NoError(t, err)

	return map[string]ports.CacheProvider{
		"memory": NewMemoryCacheProvider(),
		"lru":    lru,
	}
}

func TestCacheProvider_Contract(t *testing.T) {
	for name, provider := range cacheProvidersUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := provider.Get(ctx, "52.52,13.41")
			assert.True(t, errors.IsNotFoundError(err))

			require.NoError(t, provider.Set(ctx, "52.52,13.41", []byte(`{"a":1}`)))
			entry, err := provider.Get(ctx, "52.52,13.41")
			require.NoError(t, err)
			assert.Equal(t, []byte(`{"a":1}`), entry.Value)
			assert.False(t, entry.StoredAt.IsZero())
			assert.Equal(t, 1, provider.Len())

			// last write wins
			require.NoError(t, provider.Set(ctx, "52.52,13.41", []byte(`{"a":2}`)))
			entry, err = provider.Get(ctx, "52.52,13.41")
			require.NoError(t, err)
			assert.Equal(t, []byte(`{"a":2}`), entry.Value)
			assert.Equal(t, 1, provider.Len())

			assert.True(t, errors.IsValidationError(provider.Set(ctx, "k", nil)))

			_, err = provider.Get(ctx, "1,2")
			assert.True(t, errors.IsNotFoundError(err))
		})
	}
}

func TestCacheProvider_ConcurrentAccess(t *testing.T) {
	for name, provider := range cacheProvidersUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			var wg sync.WaitGroup

			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					key := fmt.Sprintf("%d,%d", i%5, i%5)
					assert.NoError(t, provider.Set(ctx, key, []byte(`{}`)))
					_, _ = provider.Get(ctx, key)
				}(i)
			}
			wg.Wait()

			assert.Equal(t, 5, provider.Len())
		})
	}
}

func TestLRUCacheProvider_EvictsLeastRecentlyUsed(t *testing.T) {
	logger := &testLogger{}
	provider, err := NewLRUCacheProvider(LRUCacheProviderParams{MaxEntries: 2, Logger: logger})
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, provider.Set(ctx, "a", []byte(`1`)))
	require.NoError(t, provider.Set(ctx, "b", []byte(`2`)))
	_, err = provider.Get(ctx, "a")
	require.NoError(t, err)
	require.NoError(t, provider.Set(ctx, "c", []byte(`3`)))

	assert.Equal(t, 2, provider.Len())
	_, err = provider.Get(ctx, "b")
	assert.True(t, errors.IsNotFoundError(err))
	_, err = provider.Get(ctx, "a")
	assert.NoError(t, err)

	assert.Eventually(t, func() bool { return len(logger.byLevel("DEBUG")) == 1 }, time.Second, 5*time.Millisecond)
}

func TestNewLRUCacheProvider_RejectsZeroCapacity(t *testing.T) {
	provider, err := NewLRUCacheProvider(LRUCacheProviderParams{MaxEntries: 0})

	assert.Nil(t, provider)
	assert.True(t, errors.IsConfigurationError(err))
}
