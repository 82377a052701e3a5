package providers

import (
	"context"
	"golang.org/x/sync/semaphore"
	"net/http"
	"time"
)

// NewConcurrencyLimit caps in-flight requests across every handler it wraps.
// All wrapped routes share one semaphore. With a zero timeout a full server
// answers 503 immediately; otherwise it waits up to timeout.
func NewConcurrencyLimit(maxInFlight int64, timeout time.Duration) Middleware {
	if maxInFlight <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	sem := semaphore.NewWeighted(maxInFlight)

	return func(next http.Handler) http.Handler {
		return ConcurrencyMiddleware(sem, timeout, next)
	}
}

func ConcurrencyMiddleware(sem *semaphore.Weighted, timeout time.Duration, next http.Handler) http.Handler {
	if sem == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !acquire(r.Context(), sem, timeout) {
			w.Header().Set("Retry-After", "1")
			WriteError(w, http.StatusServiceUnavailable, "Server busy")
			return
		}
		defer sem.Release(1)

		next.ServeHTTP(w, r)
	})
}

func acquire(ctx context.Context, sem *semaphore.Weighted, timeout time.Duration) bool {
	if timeout <= 0 {
		return sem.TryAcquire(1)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return sem.Acquire(ctx, 1) == nil
}
