package models

import (
	"sync"
	"time"
)

// UsageSnapshotVersion 2 added the per-endpoint client bitmaps.
const UsageSnapshotVersion = 2

type EndpointUsage struct {
	Allowed int64 `json:"allowed"`
	Denied  int64 `json:"denied"`
}

// Usage aggregates rate limiter decisions per endpoint. Client addresses
// are never kept.
type Usage struct {
	Mutex sync.RWMutex
	Data  map[string]*EndpointUsage
}

func NewUsage() *Usage {
	return &Usage{Data: make(map[string]*EndpointUsage)}
}

func (u *Usage) Get(endpoint string) (EndpointUsage, bool) {
	u.Mutex.RLock()
	defer u.Mutex.RUnlock()
	val, ok := u.Data[endpoint]
	if !ok {
		return EndpointUsage{}, false
	}
	return *val, true
}

func (u *Usage) Len() int {
	u.Mutex.RLock()
	defer u.Mutex.RUnlock()
	return len(u.Data)
}

func (u *Usage) IncDecision(endpoint string, allowed bool) {
	u.Mutex.Lock()
	defer u.Mutex.Unlock()

	rec, ok := u.Data[endpoint]
	if !ok {
		rec = &EndpointUsage{}
		u.Data[endpoint] = rec
	}
	if allowed {
		rec.Allowed++
	} else {
		rec.Denied++
	}
}

// GetData returns a deep copy.
func (u *Usage) GetData() map[string]EndpointUsage {
	u.Mutex.RLock()
	defer u.Mutex.RUnlock()

	out := make(map[string]EndpointUsage, len(u.Data))
	for k, v := range u.Data {
		out[k] = *v
	}
	return out
}

// Merge adds restored counters on top of whatever was recorded since start.
func (u *Usage) Merge(data map[string]EndpointUsage) {
	u.Mutex.Lock()
	defer u.Mutex.Unlock()

	for k, v := range data {
		rec, ok := u.Data[k]
		if !ok {
			rec = &EndpointUsage{}
			u.Data[k] = rec
		}
		rec.Allowed += v.Allowed
		rec.Denied += v.Denied
	}
}

// UsageSnapshot is the persisted form of Usage.
type UsageSnapshot struct {
	Version   int                      `json:"version"`
	SavedAt   time.Time                `json:"saved_at"`
	Endpoints map[string]EndpointUsage `json:"endpoints"`
	Clients   map[string][]byte        `json:"clients,omitempty"`
}
