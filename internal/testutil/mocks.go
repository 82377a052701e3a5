package testutil

import (
	"context"
	"google.golang.org/genai"
	"grailhunter/internal/models"
	"grailhunter/internal/providers"
	"grailhunter/internal/ratelimit"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockUsageService implements services.UsageServiceInterface.
type MockUsageService struct {
	mu             sync.Mutex
	Events         []ratelimit.StatsEvent
	AggregateCalls int
	Usage          map[string]models.EndpointUsage
	BufferSize     int
	PutCalls       []*models.UsageSnapshot
	PutErr         error
	Clients        map[string]uint64
}

func (m *MockUsageService) Record(_ context.Context, ev ratelimit.StatsEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, ev)
	return nil
}

func (m *MockUsageService) AggregateStats() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AggregateCalls++
}

func (m *MockUsageService) GetBufferSize() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.BufferSize
}

func (m *MockUsageService) GetUsage() map[string]models.EndpointUsage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Usage
}

func (m *MockUsageService) Totals() models.EndpointUsage {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total models.EndpointUsage
	for _, v := range m.Usage {
		total.Allowed += v.Allowed
		total.Denied += v.Denied
	}
	return total
}

func (m *MockUsageService) GetSnapshot() *models.UsageSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	endpoints := make(map[string]models.EndpointUsage, len(m.Usage))
	for k, v := range m.Usage {
		endpoints[k] = v
	}
	return &models.UsageSnapshot{
		Version:   models.UsageSnapshotVersion,
		SavedAt:   time.Now().UTC(),
		Endpoints: endpoints,
	}
}

func (m *MockUsageService) PutSnapshot(snapshot *models.UsageSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PutCalls = append(m.PutCalls, snapshot)
	return m.PutErr
}

func (m *MockUsageService) UniqueClients() map[string]uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Clients
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
	TTLs map[string]time.Duration
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte), TTLs: make(map[string]time.Duration)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) SetWithTTL(key string, value []byte, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
	m.TTLs[key] = ttl
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu             sync.Mutex
	Requests       map[string]int
	CacheHits      int
	CacheMisses    int
	PersistCalls   int
	Decisions      map[string][]bool
	UpstreamCalls  map[string]int
	UpstreamErrors map[string]int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Requests:       make(map[string]int),
		Decisions:      make(map[string][]bool),
		UpstreamCalls:  make(map[string]int),
		UpstreamErrors: make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(endpoint string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests[endpoint]++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits(_ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses(_ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistCalls++
}

func (m *MockMetrics) IncRateLimitDecision(endpoint string, allowed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Decisions[endpoint] = append(m.Decisions[endpoint], allowed)
}

func (m *MockMetrics) ObserveUpstreamDuration(operation string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpstreamCalls[operation]++
}

func (m *MockMetrics) IncUpstreamErrors(operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpstreamErrors[operation]++
}

// MockModelClient implements services.ModelClient. Respond builds the reply
// for each call; the zero value returns an empty response.
type MockModelClient struct {
	mu      sync.Mutex
	Calls   []ModelCall
	Respond func(model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type ModelCall struct {
	Model    string
	Contents []*genai.Content
	Config   *genai.GenerateContentConfig
}

func (m *MockModelClient) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, ModelCall{Model: model, Contents: contents, Config: config})
	respond := m.Respond
	m.mu.Unlock()
	if respond != nil {
		return respond(model, contents, config)
	}
	return &genai.GenerateContentResponse{}, nil
}

func (m *MockModelClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// TextResponse wraps text in a single-candidate response.
func TextResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromText(text, genai.RoleModel),
		}},
	}
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}
