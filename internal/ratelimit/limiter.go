// Package ratelimit implements a per-client, per-endpoint sliding window
// limiter. State lives in process memory and is lost on restart.
package ratelimit

import (
	"sync"
	"time"
)

const (
	DefaultWindow         = 60 * time.Second
	DefaultSweepThreshold = 1000
)

type Result struct {
	Allowed   bool  `json:"allowed"`
	Remaining int   `json:"remaining"`
	ResetMs   int64 `json:"resetMs"`
}

type Option func(*Limiter)

func WithWindow(d time.Duration) Option {
	return func(l *Limiter) {
		if d > 0 {
			l.window = d.Milliseconds()
		}
	}
}

func WithSweepThreshold(n int) Option {
	return func(l *Limiter) {
		if n > 0 {
			l.sweepThreshold = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

// Limiter keeps, for every "client:endpoint" key, the admission times that
// fall inside the trailing window.
type Limiter struct {
	mu             sync.Mutex
	entries        map[string][]int64
	quotas         Quotas
	window         int64
	sweepThreshold int
	now            func() time.Time
}

func NewLimiter(quotas Quotas, opts ...Option) *Limiter {
	l := &Limiter{
		entries:        make(map[string][]int64),
		quotas:         quotas,
		window:         DefaultWindow.Milliseconds(),
		sweepThreshold: DefaultSweepThreshold,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func Key(client, endpoint string) string {
	return client + ":" + endpoint
}

// Allow decides whether client may call endpoint now. A denied request is
// not recorded.
func (l *Limiter) Allow(client, endpoint string) Result {
	limit := l.quotas.For(endpoint)
	key := Key(client, endpoint)

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now().UnixMilli()
	prev := l.entries[key]
	recent := make([]int64, 0, len(prev)+1)
	for _, ts := range prev {
		if now-ts < l.window {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= limit {
		reset := l.window
		if len(recent) > 0 {
			reset = l.window - (now - recent[0])
		}
		return Result{Allowed: false, Remaining: 0, ResetMs: reset}
	}

	recent = append(recent, now)
	l.entries[key] = recent

	if len(l.entries) > l.sweepThreshold {
		l.sweepLocked(now)
	}

	return Result{Allowed: true, Remaining: limit - len(recent), ResetMs: l.window}
}

// Sweep drops every key whose timestamps have all aged out and reports how
// many were removed.
func (l *Limiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sweepLocked(l.now().UnixMilli())
}

func (l *Limiter) sweepLocked(now int64) int {
	removed := 0
	for key, stamps := range l.entries {
		live := false
		for _, ts := range stamps {
			if now-ts < l.window {
				live = true
				break
			}
		}
		if !live {
			delete(l.entries, key)
			removed++
		}
	}
	return removed
}

func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *Limiter) Quotas() Quotas {
	return l.quotas
}
