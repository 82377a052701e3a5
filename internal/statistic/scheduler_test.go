package statistic

import (
	"context"
	"errors"
	"grailhunter/internal/models"
	"grailhunter/internal/ratelimit"
	"grailhunter/internal/services"
	"grailhunter/internal/structures"
	"grailhunter/internal/testutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(filePath string) *structures.Config {
	return &structures.Config{
		Persistence: structures.Persistence{
			FilePath:     filePath,
			SaveInterval: 1 * time.Second,
		},
		Stats: structures.StatsConfig{
			AggregateInterval: 1 * time.Second,
		},
		RateLimit: structures.RateLimitConfig{
			SweepInterval: 1 * time.Second,
		},
	}
}

func newTestScheduler(conf *structures.Config, svc services.UsageServiceInterface, comp *testutil.MockCompressor) (*Scheduler, *testutil.MockMetrics) {
	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()
	fm := NewFileManager(comp, svc, logger)
	limiter := ratelimit.NewLimiter(ratelimit.DefaultQuotas())
	return NewScheduler(conf, logger, svc, fm, limiter, metrics).(*Scheduler), metrics
}

func TestScheduler_Restore_Success(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "restore.dat")

	snapshot := models.UsageSnapshot{
		Version:   models.UsageSnapshotVersion,
		Endpoints: map[string]models.EndpointUsage{"/api/scan": {Allowed: 42, Denied: 7}},
	}
	jsonData, _ := json.Marshal(snapshot)
	require.NoError(t, os.WriteFile(path, jsonData, 0644))

	svc := services.NewUsageService()
	s, _ := newTestScheduler(testConfig(path), svc, &testutil.MockCompressor{})
	require.NoError(t, s.Restore())

	assert.Equal(t, models.EndpointUsage{Allowed: 42, Denied: 7}, svc.GetUsage()["/api/scan"])
}

func TestScheduler_Restore_FileNotExist(t *testing.T) {
	s, _ := newTestScheduler(testConfig("/nonexistent/file.dat"), services.NewUsageService(), &testutil.MockCompressor{})
	assert.NoError(t, s.Restore())
}

func TestScheduler_Restore_CorruptedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corrupt.dat")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	s, _ := newTestScheduler(testConfig(path), services.NewUsageService(), &testutil.MockCompressor{})
	assert.Error(t, s.Restore())
}

func TestScheduler_Persist_Success(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "persist.dat")

	svc := services.NewUsageService()
	_ = svc.Record(context.Background(), ratelimit.StatsEvent{Endpoint: "/api/scan", Allowed: true})

	s, metrics := newTestScheduler(testConfig(path), svc, &testutil.MockCompressor{})
	require.NoError(t, s.Persist())

	_, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, 1, metrics.PersistCalls)
}

func TestScheduler_Persist_WriteError(t *testing.T) {
	comp := &testutil.MockCompressor{
		CompressFn: func(b []byte) ([]byte, error) {
			return nil, errors.New("compress error")
		},
	}
	s, metrics := newTestScheduler(testConfig(filepath.Join(t.TempDir(), "x.dat")), services.NewUsageService(), comp)

	assert.Error(t, s.Persist())
	assert.Equal(t, 1, metrics.PersistCalls)
}

func TestScheduler_StopNilCron(t *testing.T) {
	s, _ := newTestScheduler(testConfig("/tmp/test.dat"), services.NewUsageService(), &testutil.MockCompressor{})
	// Should not panic with nil cron
	s.Stop()
}

func TestScheduler_InitRunsJobs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lifecycle.dat")

	svc := &testutil.MockUsageService{}
	s, _ := newTestScheduler(testConfig(path), svc, &testutil.MockCompressor{})
	s.Init()
	defer s.Stop()

	require.Eventually(t, func() bool {
		_, err := os.Stat(path)
		return err == nil
	}, 3*time.Second, 50*time.Millisecond)
}

func TestDurationOr(t *testing.T) {
	assert.Equal(t, time.Minute, durationOr(0, time.Minute))
	assert.Equal(t, time.Minute, durationOr(-time.Second, time.Minute))
	assert.Equal(t, time.Second, durationOr(time.Second, time.Minute))
}
