package providers

import (
	"grailhunter/internal/structures"
	"time"
)

// MetricsCacheProvider reports hits and misses per key namespace.
type MetricsCacheProvider struct {
	inner   CacheProviderInterface
	metrics MetricsProviderInterface
}

func (c *MetricsCacheProvider) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if ok {
		c.metrics.IncCacheHits(CacheNamespace(key))
	} else {
		c.metrics.IncCacheMisses(CacheNamespace(key))
	}
	return val, ok
}

func (c *MetricsCacheProvider) Set(key string, value []byte) {
	c.inner.Set(key, value)
}

func (c *MetricsCacheProvider) SetWithTTL(key string, value []byte, ttl time.Duration) {
	c.inner.SetWithTTL(key, value, ttl)
}

// NewInstrumentedCacheProvider is the cache handed to the RN controller and
// the styling service. A disabled cache is returned bare so lookups are not
// reported as misses.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if _, disabled := inner.(*noopCache); disabled {
		return inner
	}
	return &MetricsCacheProvider{
		inner:   inner,
		metrics: metrics,
	}
}
