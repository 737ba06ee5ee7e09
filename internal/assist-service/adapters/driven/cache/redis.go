package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"road-assist/internal/assist-service/core/ports"
	"road-assist/internal/config"
	"road-assist/internal/mylogger"

	"github.com/redis/go-redis/v9"
)

// MatchCache keeps ranked match results in Redis for a short TTL.
// Every failure degrades to a miss: a broken cache must never break
// matching.
type MatchCache struct {
	rdb   *redis.Client
	mylog mylogger.Logger
}

func New(ctx context.Context, redisCfg *config.Redisconfig, mylog mylogger.Logger) (ports.IMatchCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", redisCfg.Host, redisCfg.Port),
		DB:   redisCfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %v", err)
	}

	return &MatchCache{
		rdb:   rdb,
		mylog: mylog,
	}, nil
}

func (c *MatchCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.mylog.Action("cache_get").Warn("redis get failed", "key", key, "err", err.Error())
		}
		return nil, false
	}
	return val, true
}

func (c *MatchCache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) {
	if err := c.rdb.Set(ctx, key, val, ttl).Err(); err != nil {
		c.mylog.Action("cache_set").Warn("redis set failed", "key", key, "err", err.Error())
	}
}

func (c *MatchCache) Close() error {
	return c.rdb.Close()
}
