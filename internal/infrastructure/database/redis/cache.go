package redis

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/cache"
	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-PatentClient/pkg/errors"
)

const scanBatch = 200

// Cache is the redis cache driver.  Entries carry a TTL equal to the
// configured retention, so redis expires them on its own; Sweep only has to
// catch entries written under a longer retention than the one now requested.
type Cache struct {
	client *Client
	logger logging.Logger
	prefix string
	ttl    time.Duration
}

type CacheOption func(*Cache)

func WithPrefix(prefix string) CacheOption {
	return func(c *Cache) { c.prefix = prefix }
}

// WithTTL sets the expiry attached to every write.  Zero stores entries
// without expiry.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) { c.ttl = ttl }
}

func NewRedisCache(client *Client, log logging.Logger, opts ...CacheOption) *Cache {
	c := &Cache{
		client: client,
		logger: log,
		prefix: "keyip:",
		ttl:    7 * 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ cache.Cache = (*Cache)(nil)

func (c *Cache) Name() string { return "redis" }

func (c *Cache) fullKey(key string) string {
	return c.prefix + key
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	rdb, err := c.client.Cmdable()
	if err != nil {
		return nil, err
	}
	data, err := rdb.Get(ctx, c.fullKey(key)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, cache.ErrCacheMiss
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCacheError, "failed to get from cache")
	}
	return data, nil
}

func (c *Cache) Put(ctx context.Context, key string, data []byte) error {
	rdb, err := c.client.Cmdable()
	if err != nil {
		return err
	}
	if err := rdb.Set(ctx, c.fullKey(key), data, c.ttl).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to write to cache")
	}
	return nil
}

// Sweep walks the key space under the prefix, reading the TTLs of each scan
// batch in one pipeline.  An entry's age is its write TTL minus what remains
// of it; entries without expiry are treated as expired once maxAge is finite.
func (c *Cache) Sweep(ctx context.Context, maxAge time.Duration) (int, error) {
	rdb, err := c.client.Cmdable()
	if err != nil {
		return 0, err
	}

	var (
		cursor  uint64
		removed int
	)
	for {
		keys, next, err := rdb.Scan(ctx, cursor, c.prefix+"*", scanBatch).Result()
		if err != nil {
			return removed, errors.Wrap(err, errors.ErrCodeCacheError, "failed to scan cache keys")
		}
		stale, err := c.staleKeys(ctx, rdb, keys, maxAge)
		if err != nil {
			return removed, err
		}
		if len(stale) > 0 {
			n, err := rdb.Del(ctx, stale...).Result()
			if err != nil {
				return removed, errors.Wrap(err, errors.ErrCodeCacheError, "failed to delete cache entries")
			}
			removed += int(n)
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	if removed > 0 {
		c.logger.Debug("redis cache swept", logging.Int("removed", removed), logging.String("prefix", c.prefix))
	}
	return removed, nil
}

func (c *Cache) staleKeys(ctx context.Context, rdb redis.Cmdable, keys []string, maxAge time.Duration) ([]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	ttls := make([]*redis.DurationCmd, len(keys))
	_, err := rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		for i, k := range keys {
			ttls[i] = p.TTL(ctx, k)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCacheError, "failed to read cache entry ttl")
	}
	var stale []string
	for i, cmd := range ttls {
		if c.expired(cmd.Val(), maxAge) {
			stale = append(stale, keys[i])
		}
	}
	return stale, nil
}

// expired interprets a TTL reply: -2 means the key vanished, -1 means it has
// no expiry.
func (c *Cache) expired(remaining, maxAge time.Duration) bool {
	switch {
	case remaining == -2:
		return false
	case remaining < 0:
		return true
	case c.ttl <= 0:
		return false
	}
	return c.ttl-remaining >= maxAge
}

//Personal.AI order the ending
