package internal

import (
	"grailhunter/internal/controllers"
	"grailhunter/internal/models"
	"grailhunter/internal/providers"
	"grailhunter/internal/ratelimit"
	"grailhunter/internal/services"
	"grailhunter/internal/structures"
	"grailhunter/internal/testutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopScheduler struct{}

func (noopScheduler) Init()          {}
func (noopScheduler) Stop()          {}
func (noopScheduler) Restore() error { return nil }
func (noopScheduler) Persist() error { return nil }

type testServer struct {
	handler http.Handler
	usage   *testutil.MockUsageService
	limiter *ratelimit.Limiter
	health  *controllers.HealthController
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	conf := &structures.Config{AppName: "test"}
	conf.RateLimit.TrustForwardedFor = true
	conf.GenAI.Timeout = time.Second

	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()
	cache := testutil.NewMockCache()
	usage := &testutil.MockUsageService{}
	limiter := ratelimit.NewLimiter(ratelimit.DefaultQuotas())

	genai := services.NewGenAIService(conf, nil, cache, metrics, logger)
	api := controllers.NewApiController(logger, genai)
	rnc := controllers.NewRNController(logger, services.NewRNService(), cache)
	health := controllers.NewHealthController(usage, limiter, genai)
	guard := providers.NewApiGuard(conf, limiter, usage, metrics, logger)

	app := NewApp(health, noopScheduler{}, conf, logger, InitRoutes(api, rnc, guard), metrics)
	return &testServer{handler: app.WebServer.Handler, usage: usage, limiter: limiter, health: health}
}

func (s *testServer) do(method, path, body, ip string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if ip != "" {
		req.Header.Set("X-Forwarded-For", ip)
	}
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func errorBody(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body["error"]
}

func TestInitRoutes_RegistersApiRoutes(t *testing.T) {
	logger := &testutil.MockLogger{}
	api := controllers.NewApiController(logger, nil)
	rnc := controllers.NewRNController(logger, services.NewRNService(), testutil.NewMockCache())
	identity := func(h http.Handler) http.Handler { return h }

	routes := InitRoutes(api, rnc, identity).GetRoutes()
	urls := make([]string, 0, len(routes))
	for _, r := range routes {
		urls = append(urls, r.Url)
	}
	assert.ElementsMatch(t, []string{
		"/api/scan", "/api/assistant", "/api/styling", "/api/stores",
		"/api/rn", "/api/rn/validate", "/api/rn/brands",
	}, urls)
}

func TestApp_ScanSimulation(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(http.MethodPost, "/api/scan", `{"imageBase64":"data:image/jpeg;base64,AAAA"}`, "1.2.3.4")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "9", rr.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rr.Header().Get(providers.RequestIDHeader))

	var result models.IdentificationResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, "Halston", result.Brand)
	assert.Len(t, s.usage.Events, 1)
}

func TestApp_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(http.MethodGet, "/api/scan", "", "1.2.3.4")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "Method not allowed", errorBody(t, rr))
	assert.Zero(t, s.limiter.Len())
}

func TestApp_ScanQuotaThenRateLimited(t *testing.T) {
	s := newTestServer(t)
	body := `{"imageBase64":"AAAA"}`

	for i := 0; i < 10; i++ {
		require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/scan", body, "5.5.5.5").Code)
	}
	rr := s.do(http.MethodPost, "/api/scan", body, "5.5.5.5")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "60", rr.Header().Get("Retry-After"))
	assert.Equal(t, "Rate limited. Try again in 60s", errorBody(t, rr))

	// Another endpoint keeps its own window.
	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/styling", `{"brand":"a","name":"b"}`, "5.5.5.5").Code)
}

func TestApp_BodyValidation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name    string
		path    string
		body    string
		status  int
		message string
	}{
		{"scan missing image", "/api/scan", `{}`, http.StatusBadRequest, "Missing or invalid imageBase64"},
		{"scan too large", "/api/scan", `{"imageBase64":"` + strings.Repeat("A", models.MaxImageBase64Length+1) + `"}`, http.StatusRequestEntityTooLarge, "Image too large (max ~4.5MB)"},
		{"assistant missing prompt", "/api/assistant", `{"prompt":"  "}`, http.StatusBadRequest, "Missing or invalid prompt"},
		{"assistant too long", "/api/assistant", `{"prompt":"` + strings.Repeat("a", models.MaxPromptLength+1) + `"}`, http.StatusRequestEntityTooLarge, "Prompt too long (max 4000 chars)"},
		{"styling missing name", "/api/styling", `{"brand":"Levi's"}`, http.StatusBadRequest, "Missing brand or name"},
		{"stores missing lng", "/api/stores", `{"lat":1}`, http.StatusBadRequest, "Missing or invalid lat/lng"},
		{"invalid json", "/api/stores", `{"lat":`, http.StatusBadRequest, "Invalid JSON body"},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := s.do(http.MethodPost, tt.path, tt.body, "10.0.0."+string(rune('1'+i)))
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.message, errorBody(t, rr))
		})
	}
}

func TestApp_StoresSimulation(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(http.MethodPost, "/api/stores", `{"lat":40.7,"lng":-74}`, "1.2.3.4")
	require.Equal(t, http.StatusOK, rr.Code)

	var stores []models.NearbyStore
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stores))
	assert.Len(t, stores, 3)
	assert.Equal(t, "14", rr.Header().Get("X-RateLimit-Remaining"))
}

func TestApp_RNLookup(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(http.MethodGet, "/api/rn?q=RN%2014806", "", "1.2.3.4")
	require.Equal(t, http.StatusOK, rr.Code)

	var lookup models.RNLookup
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &lookup))
	assert.Equal(t, 14806, lookup.RN)
	assert.Equal(t, "Estimated: 1959.4 (1958-1960) - high confidence", lookup.Summary)

	rr = s.do(http.MethodGet, "/api/rn?q=abc", "", "1.2.3.4")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Enter a valid RN number (e.g. 14806)", errorBody(t, rr))
}

func TestApp_RNValidateAndBrands(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(http.MethodGet, "/api/rn/validate?rn=14806&brand=Carhartt", "", "1.2.3.4")
	require.Equal(t, http.StatusOK, rr.Code)
	var v models.RNValidation
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	assert.True(t, v.Valid)

	rr = s.do(http.MethodGet, "/api/rn/brands", "", "1.2.3.4")
	require.Equal(t, http.StatusOK, rr.Code)
	var brands []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &brands))
	assert.Len(t, brands, 18)
}

func TestApp_HealthIsNotRateLimited(t *testing.T) {
	s := newTestServer(t)

	for i := 0; i < 50; i++ {
		require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", "", "1.2.3.4").Code)
	}
	assert.Zero(t, s.limiter.Len())

	s.health.SetDraining()
	assert.Equal(t, http.StatusServiceUnavailable, s.do(http.MethodGet, "/health", "", "").Code)
}

func TestApp_UnknownPathIsJSON404(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Not found", errorBody(t, rr))
}

func TestUpstreamWriteTimeout(t *testing.T) {
	conf := &structures.Config{}
	conf.GenAI.Timeout = 45 * time.Second
	assert.Equal(t, 50*time.Second, upstreamWriteTimeout(conf))

	conf.GenAI.Timeout = 0
	assert.Equal(t, 15*time.Second, upstreamWriteTimeout(conf))
}
