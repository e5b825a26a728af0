package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kbukum/gallery/logger"
)

// ErrDisabled is returned by New when the config has Enabled=false.
var ErrDisabled = errors.New("redis: disabled")

// Client is a go-redis client scoped to one key namespace.
type Client struct {
	rdb       *goredis.Client
	log       *logger.Logger
	cfg       Config
	closeOnce sync.Once
	closeErr  error
}

// New builds a client from cfg. It does not dial; call Ping to verify.
func New(cfg Config, log *logger.Logger) (*Client, error) {
	cfg.ApplyDefaults()
	if !cfg.Enabled {
		return nil, ErrDisabled
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("redis config: %w", err)
	}
	if log == nil {
		log = logger.NewNop()
	}

	opts, err := cfg.options()
	if err != nil {
		return nil, fmt.Errorf("redis config: %w", err)
	}
	rdb := goredis.NewClient(opts)
	return &Client{rdb: rdb, log: log, cfg: cfg}, nil
}

// Ping round-trips a PING.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// KeyPrefix returns the configured namespace.
func (c *Client) KeyPrefix() string { return c.cfg.KeyPrefix }

// Key joins the key prefix and parts with ":". Empty parts are skipped.
func (c *Client) Key(parts ...string) string {
	all := make([]string, 0, len(parts)+1)
	for _, p := range append([]string{c.cfg.KeyPrefix}, parts...) {
		if p != "" {
			all = append(all, p)
		}
	}
	return strings.Join(all, ":")
}

// getBytes reads key. A missing key is (nil, false, nil).
func (c *Client) getBytes(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, goredis.Nil):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}
	return b, true, nil
}

// setBytes writes key with ttl. A zero ttl keeps the key forever.
func (c *Client) setBytes(ctx context.Context, key string, b []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, b, ttl).Err()
}

// ttl returns the remaining lifetime of key, or a negative duration if the
// key has none or does not exist.
func (c *Client) ttl(ctx context.Context, key string) (time.Duration, error) {
	return c.rdb.PTTL(ctx, key).Result()
}

func (c *Client) del(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

// PoolStats reports connection pool usage.
func (c *Client) PoolStats() *goredis.PoolStats { return c.rdb.PoolStats() }

// Close releases the pool. Later calls return the first result.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	c.closeOnce.Do(func() {
		c.log.Debug("closing redis pool", logger.Fields("prefix", c.cfg.KeyPrefix))
		c.closeErr = c.rdb.Close()
	})
	return c.closeErr
}
