package gallery

import (
	"context"
	"time"

	"github.com/kbukum/gallery/logger"
	"github.com/kbukum/gallery/redis"
)

const redisCacheNamespace = "signed_url"

type cachedURL struct {
	URL      string    `json:"url"`
	SignedAt time.Time `json:"signed_at"`
}

// RedisCache shares resolved URLs between processes. Redis errors are
// logged and treated as misses.
type RedisCache struct {
	store *redis.JSONStore[cachedURL]
	ttl   time.Duration
	log   *logger.Logger
}

// NewRedisCache creates a cache under "<prefix>:signed_url:<key>".
func NewRedisCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *RedisCache {
	if log == nil {
		log = logger.NewNop()
	}
	return &RedisCache{
		store: redis.NewJSONStore[cachedURL](client, redisCacheNamespace),
		ttl:   ttl,
		log:   log.WithComponent("url_cache"),
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	v, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.Warn("url cache read failed", logger.Fields(logger.FieldKey, key, logger.FieldError, err.Error()))
		return "", false
	}
	if !ok || v.URL == "" {
		return "", false
	}
	return v.URL, true
}

func (c *RedisCache) Set(ctx context.Context, key, url string) {
	if err := c.store.Put(ctx, key, cachedURL{URL: url, SignedAt: time.Now().UTC()}, c.ttl); err != nil {
		c.log.Warn("url cache write failed", logger.Fields(logger.FieldKey, key, logger.FieldError, err.Error()))
	}
}
