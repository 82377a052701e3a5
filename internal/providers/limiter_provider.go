package providers

import (
	"grailhunter/internal/ratelimit"
	"grailhunter/internal/structures"
)

// NewLimiterProvider builds the process-wide limiter, layering configured
// quotas over the defaults.
func NewLimiterProvider(conf *structures.Config) *ratelimit.Limiter {
	quotas := ratelimit.DefaultQuotas()
	for endpoint, limit := range conf.RateLimit.Endpoints {
		quotas.Endpoints[endpoint] = limit
	}
	if conf.RateLimit.Default > 0 {
		quotas.Default = conf.RateLimit.Default
	}

	return ratelimit.NewLimiter(quotas,
		ratelimit.WithWindow(conf.RateLimit.Window),
		ratelimit.WithSweepThreshold(conf.RateLimit.SweepThreshold),
	)
}
