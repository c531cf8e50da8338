// Package cache
package cache

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Redis is the shared cache adapter for deployments running more than one
// API replica. Expiry is delegated to redis key TTLs.
type Redis struct {
	cfg    Config
	client *redis.Client

	logger *zap.Logger
}

func newRedis(cfg Config) (*Redis, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.URL,
		DB:   cfg.DB,
	})

	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	if cfg.IsFlush {
		if _, err := redisClient.FlushDB(context.Background()).Result(); err != nil {
			return nil, err
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Redis{
		cfg:    cfg,
		client: redisClient,
		logger: logger.With(zap.String("cache", "redis")),
	}, nil
}

func (c *Redis) Get(ctx context.Context, key string, value interface{}) bool {
	result, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(result), value); err != nil {
		c.logger.Warn("cannot decode cached value", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *Redis) Set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cannot encode value for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, string(data), c.cfg.TTL).Err(); err != nil {
		c.logger.Warn("cannot write cache", zap.String("key", key), zap.Error(err))
	}
}

func (c *Redis) Clear(ctx context.Context) {
	if _, err := c.client.FlushDB(ctx).Result(); err != nil {
		c.logger.Warn("cannot flush cache", zap.Error(err))
	}
}
