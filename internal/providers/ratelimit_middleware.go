package providers

import (
	"fmt"
	"grailhunter/internal/ratelimit"
	"math"
	"net/http"
	"strconv"
	"time"
)

type RateLimitOptions struct {
	Limiter  *ratelimit.Limiter
	Stats    ratelimit.StatsStore
	Metrics  MetricsProviderInterface
	Logger   Logger
	TrustXFF bool
}

func retryAfterSeconds(resetMs int64) int64 {
	return int64(math.Ceil(float64(resetMs) / 1000))
}

// RateLimitMiddleware admits or rejects each request against the sliding
// window for its client address and path.
func RateLimitMiddleware(opts RateLimitOptions, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := ratelimit.ClientAddress(r, opts.TrustXFF)
		endpoint := r.URL.Path

		res := opts.Limiter.Allow(client, endpoint)

		if opts.Metrics != nil {
			opts.Metrics.IncRateLimitDecision(endpoint, res.Allowed)
		}
		if opts.Stats != nil {
			err := opts.Stats.Record(r.Context(), ratelimit.StatsEvent{
				Key:      ratelimit.Key(client, endpoint),
				Endpoint: endpoint,
				Method:   r.Method,
				Allowed:  res.Allowed,
				At:       time.Now(),
			})
			if err != nil && opts.Logger != nil {
				opts.Logger.Warnf(TypeApp, "Rate limit stats not recorded: %s", err)
			}
		}

		if !res.Allowed {
			seconds := retryAfterSeconds(res.ResetMs)
			w.Header().Set("Retry-After", strconv.FormatInt(seconds, 10))
			if opts.Logger != nil {
				opts.Logger.Debugf(GetLogTypeByRequestType(r.Method), "Rate limited %s on %s for %ds", client, endpoint, seconds)
			}
			WriteError(w, http.StatusTooManyRequests, fmt.Sprintf("Rate limited. Try again in %ds", seconds))
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		next.ServeHTTP(w, r)
	})
}
