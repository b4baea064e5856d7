package config

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/riskflow/pkg/cache"
	"github.com/matzehuels/riskflow/pkg/session"
)

// OpenCache builds the artifact cache selected by cache.backend.
func (c *Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case CacheNone:
		return cache.NewNullCache(), nil
	case CacheRedis:
		return cache.NewRedisCache(ctx, c.Redis)
	case CacheFile, "":
		dir := c.Cache.Dir
		if dir == "" {
			d, err := cache.DefaultDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
}

// OpenSessions builds the session store selected by server.sessions. When
// the artifact cache already holds a Redis connection it is reused.
func (c *Config) OpenSessions(ctx context.Context, shared cache.Cache) (session.Store, error) {
	switch c.Server.Sessions {
	case SessionsMemory, "":
		return session.NewMemoryStore(), nil
	case SessionsRedis:
		if rc, ok := shared.(*cache.RedisCache); ok {
			return session.NewRedisStore(rc.Client()), nil
		}
		client := redis.NewClient(&redis.Options{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("%w: redis %s: %v", cache.ErrUnavailable, c.Redis.Addr, err)
		}
		return session.NewRedisStore(client), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", c.Server.Sessions)
	}
}
