package providers

import (
	"grailhunter/internal/ratelimit"
	"grailhunter/internal/structures"
	"net/http"
)

type Middleware func(http.Handler) http.Handler

// NewApiGuard wraps an API handler in the per-request checks, outermost
// first: origin, sliding window limit, in-flight cap. The in-flight cap is
// shared by every route the guard wraps.
func NewApiGuard(conf *structures.Config, limiter *ratelimit.Limiter, stats ratelimit.StatsStore, metrics MetricsProviderInterface, logger Logger) Middleware {
	opts := RateLimitOptions{
		Limiter:  limiter,
		Stats:    stats,
		Metrics:  metrics,
		Logger:   logger,
		TrustXFF: conf.RateLimit.TrustForwardedFor,
	}
	inFlight := NewConcurrencyLimit(conf.Concurrency.MaxInFlight, conf.Concurrency.AcquireTimeout)

	return func(next http.Handler) http.Handler {
		guarded := inFlight(next)
		guarded = RateLimitMiddleware(opts, guarded)
		return OriginMiddleware(conf.Security.AllowedOrigins, guarded)
	}
}
