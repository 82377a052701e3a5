package providers

import (
	"grailhunter/internal/ratelimit"
	"grailhunter/internal/structures"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func guardConfig() *structures.Config {
	conf := &structures.Config{}
	conf.RateLimit.TrustForwardedFor = true
	conf.Security.AllowedOrigins = []string{"https://grailhunter.app"}
	conf.Concurrency.MaxInFlight = 4
	return conf
}

func TestApiGuard_ForbiddenOriginSkipsLimiter(t *testing.T) {
	limiter := ratelimit.NewLimiter(ratelimit.DefaultQuotas())
	metrics := &mockMetrics{}
	guard := NewApiGuard(guardConfig(), limiter, nil, metrics, &testLogger{})
	h := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := postFrom("1.2.3.4", "/api/scan")
	req.Header.Set("Origin", "https://evil.example")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Zero(t, limiter.Len())
	assert.Empty(t, metrics.decisions)
}

func TestApiGuard_AllowedRequestReachesHandler(t *testing.T) {
	limiter := ratelimit.NewLimiter(ratelimit.DefaultQuotas())
	stats := &recordingStats{}
	guard := NewApiGuard(guardConfig(), limiter, stats, &mockMetrics{}, &testLogger{})

	called := false
	h := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := postFrom("1.2.3.4", "/api/scan")
	req.Header.Set("Origin", "https://grailhunter.app")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "9", rr.Header().Get("X-RateLimit-Remaining"))
	assert.Len(t, stats.events, 1)
}

func TestApiGuard_RateLimitedBeforeConcurrency(t *testing.T) {
	conf := guardConfig()
	conf.Concurrency.MaxInFlight = 1
	limiter := ratelimit.NewLimiter(ratelimit.Quotas{Default: 1})
	guard := NewApiGuard(conf, limiter, nil, nil, nil)
	h := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	h.ServeHTTP(httptest.NewRecorder(), postFrom("1.2.3.4", "/api/rn"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, postFrom("1.2.3.4", "/api/rn"))

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
}

func TestApiGuard_InFlightCapSharedByRoutes(t *testing.T) {
	conf := guardConfig()
	conf.Concurrency.MaxInFlight = 1
	guard := NewApiGuard(conf, ratelimit.NewLimiter(ratelimit.DefaultQuotas()), nil, nil, nil)

	started := make(chan struct{}, 1)
	release := make(chan struct{})
	router := NewRouterProvider()
	router.Use(guard)
	router.Post("/api/scan", func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		<-release
	})
	router.Post("/api/styling", dummyHandler())
	h := router.Handler()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		h.ServeHTTP(httptest.NewRecorder(), postFrom("1.2.3.4", "/api/scan"))
	}()
	<-started

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, postFrom("1.2.3.4", "/api/styling"))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	close(release)
	wg.Wait()
}
