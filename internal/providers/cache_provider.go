package providers

import (
	"github.com/coocood/freecache"
	"grailhunter/internal/structures"
	"strings"
	"time"
	"unsafe"
)

const defaultCacheTTL = 10 * time.Minute

// CacheProviderInterface stores serialized responses. Keys are namespaced
// "<namespace>:<id>", e.g. "rn:14806" or "styling:levi's|501|1984".
type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	SetWithTTL(key string, value []byte, ttl time.Duration)
}

// CacheNamespace returns the part of key before the first colon.
func CacheNamespace(key string) string {
	ns, _, found := strings.Cut(key, ":")
	if !found || ns == "" {
		return "other"
	}
	return ns
}

type CacheProvider struct {
	cache *freecache.Cache
	ttl   int
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Response cache disabled")
		return &noopCache{}
	}

	ttl := conf.Cache.TTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	ttlSeconds := ttlToSeconds(ttl)

	logger.Infof(TypeApp, "Response cache initialized: %dMB, default TTL=%ds", conf.Cache.Size, ttlSeconds)

	return &CacheProvider{
		cache: freecache.NewCache(conf.Cache.Size * 1024 * 1024),
		ttl:   ttlSeconds,
	}
}

// freecache counts expiry in whole seconds; 0 would mean "never".
func ttlToSeconds(ttl time.Duration) int {
	return max(int(ttl.Seconds()), 1)
}

// freecache copies keys, so the returned slice is never written to.
func keyBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func (c *CacheProvider) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get(keyBytes(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *CacheProvider) Set(key string, value []byte) {
	_ = c.cache.Set(keyBytes(key), value, c.ttl)
}

func (c *CacheProvider) SetWithTTL(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		c.Set(key, value)
		return
	}
	_ = c.cache.Set(keyBytes(key), value, ttlToSeconds(ttl))
}

type noopCache struct{}

func (n *noopCache) Get(_ string) ([]byte, bool)                    { return nil, false }
func (n *noopCache) Set(_ string, _ []byte)                         {}
func (n *noopCache) SetWithTTL(_ string, _ []byte, _ time.Duration) {}
