package services

import (
	"github.com/redis/go-redis/v9"
	"grailhunter/internal/ratelimit"
	"grailhunter/internal/structures"
)

// NewRateLimitStats combines the in-memory usage counters with the shared
// Redis counters when a client is available.
func NewRateLimitStats(conf *structures.Config, usage UsageServiceInterface, rdb *redis.Client) ratelimit.StatsStore {
	if rdb == nil {
		return usage
	}
	opts := []ratelimit.RedisStatsOption{ratelimit.WithStatsTTL(conf.Stats.Redis.TTL)}
	if conf.Stats.Redis.Prefix != "" {
		opts = append(opts, ratelimit.WithStatsPrefix(conf.Stats.Redis.Prefix))
	}
	return ratelimit.MultiStats{usage, ratelimit.NewRedisStatsStore(rdb, opts...)}
}
