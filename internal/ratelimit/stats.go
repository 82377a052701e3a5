package ratelimit

import (
	"context"
	"errors"
	"time"
)

// StatsEvent is one limiter decision. Key is the client:endpoint pair.
type StatsEvent struct {
	Key      string
	Endpoint string
	Method   string
	Allowed  bool
	At       time.Time
}

// StatsStore records decisions. Callers treat failures as best-effort.
type StatsStore interface {
	Record(ctx context.Context, ev StatsEvent) error
}

// MultiStats fans an event out to every store and joins their errors.
type MultiStats []StatsStore

func (m MultiStats) Record(ctx context.Context, ev StatsEvent) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Record(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
