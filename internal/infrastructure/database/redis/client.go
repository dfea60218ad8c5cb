// Package redis is the shared-cache driver over go-redis.
package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-PatentClient/pkg/errors"
)

var (
	ErrClientClosed     = errors.New(errors.ErrCodeCacheError, "redis client is closed")
	ErrConnectionFailed = errors.New(errors.ErrCodeServiceUnavailable, "redis connection failed")
)

type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

func (c *RedisConfig) withDefaults() RedisConfig {
	out := *c
	if out.DialTimeout == 0 {
		out.DialTimeout = 5 * time.Second
	}
	if out.ReadTimeout == 0 {
		out.ReadTimeout = 3 * time.Second
	}
	if out.WriteTimeout == 0 {
		out.WriteTimeout = 3 * time.Second
	}
	return out
}

// Client owns one connection pool.  After Close every command fails with
// ErrClientClosed instead of the pool's own error.
type Client struct {
	rdb    *redis.Client
	addr   string
	logger logging.Logger

	mu     sync.RWMutex
	closed bool
}

// NewClient connects and pings within the dial timeout.
func NewClient(cfg *RedisConfig, log logging.Logger) (*Client, error) {
	conf := cfg.withDefaults()
	rdb := redis.NewClient(&redis.Options{
		Addr:         conf.Addr,
		Password:     conf.Password,
		DB:           conf.DB,
		DialTimeout:  conf.DialTimeout,
		ReadTimeout:  conf.ReadTimeout,
		WriteTimeout: conf.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), conf.DialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, ErrConnectionFailed.WithCause(err).WithDetail(conf.Addr)
	}

	log.Info("redis cache connected", logging.String("addr", conf.Addr), logging.Int("db", conf.DB))
	return &Client{rdb: rdb, addr: conf.Addr, logger: log}, nil
}

// Cmdable returns the command surface, or ErrClientClosed.
func (c *Client) Cmdable() (redis.Cmdable, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, ErrClientClosed
	}
	return c.rdb, nil
}

// Ping is the readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	rdb, err := c.Cmdable()
	if err != nil {
		return err
	}
	if err := rdb.Ping(ctx).Err(); err != nil {
		return ErrConnectionFailed.WithCause(err).WithDetail(c.addr)
	}
	return nil
}

// Close is idempotent.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if err := c.rdb.Close(); err != nil {
		c.logger.Error("failed to close redis client", logging.Err(err))
		return err
	}
	c.logger.Debug("redis client closed", logging.String("addr", c.addr))
	return nil
}

//Personal.AI order the ending
