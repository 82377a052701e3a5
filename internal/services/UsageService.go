package services

import (
	"context"
	"grailhunter/internal/models"
	"grailhunter/internal/ratelimit"
	"sync"
	"time"
)

type UsageServiceInterface interface {
	Record(ctx context.Context, ev ratelimit.StatsEvent) error
	AggregateStats()
	GetBufferSize() int
	GetUsage() map[string]models.EndpointUsage
	Totals() models.EndpointUsage
	GetSnapshot() *models.UsageSnapshot
	PutSnapshot(snapshot *models.UsageSnapshot) error
	UniqueClients() map[string]uint64
}

// UsageService buffers limiter decisions and folds them into per-endpoint
// counters on AggregateStats. Two buffers alternate so recording never waits
// on aggregation.
type UsageService struct {
	mu        sync.Mutex
	buffers   [2][]ratelimit.StatsEvent
	activeIdx int

	aggMu   sync.Mutex
	usage   *models.Usage
	clients *models.ClientSet
}

func (us *UsageService) Record(_ context.Context, ev ratelimit.StatsEvent) error {
	us.mu.Lock()
	us.buffers[us.activeIdx] = append(us.buffers[us.activeIdx], ev)
	us.mu.Unlock()
	return nil
}

func (us *UsageService) GetBufferSize() int {
	us.mu.Lock()
	defer us.mu.Unlock()
	return len(us.buffers[us.activeIdx])
}

func (us *UsageService) AggregateStats() {
	us.aggMu.Lock()
	defer us.aggMu.Unlock()

	us.mu.Lock()
	idle := us.activeIdx
	us.activeIdx = 1 - us.activeIdx
	us.mu.Unlock()

	for _, ev := range us.buffers[idle] {
		if ev.Endpoint == "" {
			continue
		}
		us.usage.IncDecision(ev.Endpoint, ev.Allowed)
		us.clients.Add(ev.Endpoint, ev.Key)
	}
	us.buffers[idle] = us.buffers[idle][:0]
}

func (us *UsageService) GetUsage() map[string]models.EndpointUsage {
	return us.usage.GetData()
}

func (us *UsageService) Totals() models.EndpointUsage {
	var total models.EndpointUsage
	for _, v := range us.usage.GetData() {
		total.Allowed += v.Allowed
		total.Denied += v.Denied
	}
	return total
}

func (us *UsageService) UniqueClients() map[string]uint64 {
	return us.clients.Counts()
}

// GetSnapshot aggregates pending events first so nothing recorded before the
// call is left out. Client bitmaps that fail to serialize are left out of
// the snapshot; the counters are still saved.
func (us *UsageService) GetSnapshot() *models.UsageSnapshot {
	us.AggregateStats()
	snapshot := &models.UsageSnapshot{
		Version:   models.UsageSnapshotVersion,
		SavedAt:   time.Now().UTC(),
		Endpoints: us.usage.GetData(),
	}
	if clients, err := us.clients.MarshalSets(); err == nil && len(clients) > 0 {
		snapshot.Clients = clients
	}
	return snapshot
}

// PutSnapshot merges restored state. Counters are applied even when the
// client bitmaps are unreadable; the bitmap error is returned.
func (us *UsageService) PutSnapshot(snapshot *models.UsageSnapshot) error {
	if snapshot == nil {
		return nil
	}
	us.usage.Merge(snapshot.Endpoints)
	if len(snapshot.Clients) == 0 {
		return nil
	}
	return us.clients.MergeSets(snapshot.Clients)
}

func NewUsageService() UsageServiceInterface {
	return &UsageService{
		buffers: [2][]ratelimit.StatsEvent{
			make([]ratelimit.StatsEvent, 0, 64),
			make([]ratelimit.StatsEvent, 0, 64),
		},
		usage:   models.NewUsage(),
		clients: models.NewClientSet(),
	}
}
