package providers

import (
	"context"
	"github.com/redis/go-redis/v9"
	"grailhunter/internal/structures"
	"time"
)

const redisPingTimeout = 2 * time.Second

// NewRedisProvider returns nil when shared stats are disabled or the server
// cannot be reached; the service then keeps stats in memory only.
func NewRedisProvider(conf *structures.Config, logger Logger) (*redis.Client, func()) {
	rc := conf.Stats.Redis
	if !rc.Enabled {
		return nil, func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     rc.Addr,
		Password: rc.Password,
		DB:       rc.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warnf(TypeApp, "Redis stats disabled, %s unreachable: %s", rc.Addr, err)
		_ = rdb.Close()
		return nil, func() {}
	}

	logger.Infof(TypeApp, "Redis stats enabled at %s", rc.Addr)
	return rdb, func() {
		if err := rdb.Close(); err != nil {
			logger.Errorf(TypeApp, "Redis close error: %s", err)
		}
	}
}
