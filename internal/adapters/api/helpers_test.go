package api

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weatherproxy.app/internal/adapters/external"
	"weatherproxy.app/internal/adapters/infrastructure"
	"weatherproxy.app/internal/core/weather"
	"weatherproxy.app/internal/mocks"
	"weatherproxy.app/internal/ports"
)

// setupLoggerMock allows log calls with up to five fields at any level
func setupLoggerMock(t *testing.T) *mocks.Logger {
	mockLogger := mocks.NewLogger(t)
	for arity := 1; arity <= 6; arity++ {
		args := make([]interface{}, arity-1)
		for i := range args {
			args[i] = mock.Anything
		}
		mockLogger.EXPECT().Debug(mock.Anything, args...).Maybe()
		mockLogger.EXPECT().Info(mock.Anything, args...).Maybe()
		mockLogger.EXPECT().Warn(mock.Anything, args...).Maybe()
		mockLogger.EXPECT().Error(mock.Anything, args...).Maybe()
	}
	return mockLogger
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// upstreamStub is an httptest provider that counts requests
type upstreamStub struct {
	server *httptest.Server
	hits   atomic.Int32
}

func newUpstreamStub(t *testing.T, handler http.HandlerFunc) *upstreamStub {
	stub := &upstreamStub{}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(stub.server.Close)
	return stub
}

func staticJSON(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

type testStack struct {
	server  *HTTPServerAdapter
	router  *gin.Engine
	clock   *testClock
	metrics *infrastructure.PrometheusMetricsCollector
}

type stackOptions struct {
	provider ports.WeatherProvider
	ttl      time.Duration
}

// newTestStack wires the real use case, cache and HTTP adapter around provider
func newTestStack(t *testing.T, opts stackOptions) *testStack {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if opts.ttl == 0 {
		opts.ttl = 10 * time.Minute
	}

	logger := setupLoggerMock(t)
	clock := &testClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	metrics := infrastructure.NewPrometheusMetricsCollector()
	cacheProvider := external.NewMemoryCacheProviderWithClock(clock.Now)
	weatherCache := external.NewWeatherCacheAdapter(external.WeatherCacheAdapterParams{
		CacheProvider: cacheProvider,
		TTL:           opts.ttl,
		Now:           clock.Now,
		Metrics:       metrics,
	})

	useCase, err := weather.NewUseCase(weather.UseCaseDependencies{
		WeatherProvider: opts.provider,
		Cache:           weatherCache,
		Logger:          logger,
		Metrics:         metrics,
	})
	require.NoError(t, err)

	_, supported := opts.provider.(*external.UnsupportedProviderAdapter)
	supported = !supported

	server, err := NewHTTPServerAdapter(ServerOptions{
		Config:         ServerConfig{Port: 0},
		WeatherUseCase: useCase,
		MetricsReporter: infrastructure.NewMetricsReporterAdapter(
			external.NewWeatherMetricsAdapter(weatherCache, opts.provider, external.WeatherMetricsInfo{
				ProviderSupported: supported,
				CacheType:         "memory",
				CacheTTL:          opts.ttl,
			})),
		MetricsHandler: metrics.Handler(),
		HealthChecker: infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
			ProviderChecker: infrastructure.NewProviderHealthChecker(opts.provider, supported, time.Second),
			CacheChecker:    infrastructure.NewCacheHealthChecker(cacheProvider, "memory", opts.ttl),
		}),
		Logger: logger,
	})
	require.NoError(t, err)

	return &testStack{server: server, router: server.GetRouter(), clock: clock, metrics: metrics}
}

func (s *testStack) get(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func openMeteoAt(baseURL string, timeout time.Duration) ports.WeatherProvider {
	return external.NewOpenMeteoProviderAdapter(external.OpenMeteoProviderParams{
		BaseURL: baseURL,
		Client:  external.NewHTTPClient(timeout),
	})
}
