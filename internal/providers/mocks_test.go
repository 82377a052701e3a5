package providers

import (
	"sync"
	"time"
)

// testLogger discards everything; testutil cannot be imported from here.
type testLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *testLogger) add(format string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, format)
}

func (l *testLogger) Errorf(_ TypeEnum, format string, _ ...interface{}) { l.add(format) }
func (l *testLogger) Warnf(_ TypeEnum, format string, _ ...interface{})  { l.add(format) }
func (l *testLogger) Debugf(_ TypeEnum, format string, _ ...interface{}) { l.add(format) }
func (l *testLogger) Infof(_ TypeEnum, format string, _ ...interface{})  { l.add(format) }
func (l *testLogger) Fatalf(_ TypeEnum, format string, _ ...interface{}) { l.add(format) }
func (l *testLogger) Close()                                             {}

func (l *testLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines)
}

type mockMetrics struct {
	mu              sync.Mutex
	requestEndpoint string
	requestStatus   int
	requestCalls    int
	durationCalls   int
	hits            int
	misses          int
	namespaces      []string
	decisions       map[string][]bool
}

func (m *mockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestEndpoint = endpoint
	m.requestStatus = status
	m.requestCalls++
}
func (m *mockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durationCalls++
}
func (m *mockMetrics) IncCacheHits(ns string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hits++
	m.namespaces = append(m.namespaces, ns)
}
func (m *mockMetrics) IncCacheMisses(ns string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.misses++
	m.namespaces = append(m.namespaces, ns)
}
func (m *mockMetrics) ObservePersistenceDuration(_ time.Duration) {}
func (m *mockMetrics) IncRateLimitDecision(endpoint string, allowed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.decisions == nil {
		m.decisions = make(map[string][]bool)
	}
	m.decisions[endpoint] = append(m.decisions[endpoint], allowed)
}
func (m *mockMetrics) ObserveUpstreamDuration(_ string, _ time.Duration) {}
func (m *mockMetrics) IncUpstreamErrors(_ string)                        {}
