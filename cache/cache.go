// Package cache
package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

type Adapter string

const (
	MemoryAdapter Adapter = "memory"
	RedisAdapter  Adapter = "redis"
)

const DefaultTTL = 5 * time.Minute

type Config struct {
	Adapter Adapter
	URL     string
	DB      int
	IsFlush bool

	TTL time.Duration

	Logger *zap.Logger
}

// Client is a key/value store with a fixed per-instance TTL. Get reports
// absent both for keys never set and for entries older than the TTL; expiry
// is checked lazily on read, there is no background eviction.
type Client interface {
	Get(ctx context.Context, key string, value interface{}) bool
	Set(ctx context.Context, key string, value interface{})
	Clear(ctx context.Context)
}

func New(cfg Config) (Client, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	switch cfg.Adapter {
	case MemoryAdapter:
		return NewMemory(cfg.TTL, cfg.Logger), nil
	case RedisAdapter:
		return newRedis(cfg)
	}
	return nil, errors.New("invalid cache config")
}

var keyEscaper = strings.NewReplacer("%", "%25", "#", "%23")

// Key joins parts into an unambiguous cache key. The separator is escaped
// inside parts, so no two distinct part lists map to the same key.
func Key(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = keyEscaper.Replace(p)
	}
	return "#" + strings.Join(escaped, "#")
}
