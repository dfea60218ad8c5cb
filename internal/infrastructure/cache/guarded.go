package cache

import (
	"context"
	"time"

	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/KeyIP-PatentClient/pkg/errors"
)

// Guarded wraps a driver so that an unreadable or unavailable cache degrades
// to a live fetch.  Get failures become misses and Put failures are dropped;
// both are logged and counted.
type Guarded struct {
	inner   Cache
	logger  logging.Logger
	metrics *prometheus.AppMetrics
}

// NewGuarded wraps inner.  metrics may be nil.
func NewGuarded(inner Cache, logger logging.Logger, metrics *prometheus.AppMetrics) *Guarded {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Guarded{inner: inner, logger: logger.Named("cache"), metrics: metrics}
}

func (g *Guarded) Name() string { return g.inner.Name() }

func (g *Guarded) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := g.inner.Get(ctx, key)
	switch {
	case err == nil:
		prometheus.RecordCacheAccess(g.metrics, g.Name(), true)
		return data, nil
	case IsMiss(err):
		prometheus.RecordCacheAccess(g.metrics, g.Name(), false)
		return nil, ErrCacheMiss
	default:
		g.degraded("get", key, err)
		prometheus.RecordCacheAccess(g.metrics, g.Name(), false)
		return nil, ErrCacheMiss
	}
}

func (g *Guarded) Put(ctx context.Context, key string, data []byte) error {
	if err := g.inner.Put(ctx, key, data); err != nil {
		g.degraded("put", key, err)
	}
	return nil
}

// Sweep is not degraded: callers decide whether a failed sweep matters.
func (g *Guarded) Sweep(ctx context.Context, maxAge time.Duration) (int, error) {
	n, err := g.inner.Sweep(ctx, maxAge)
	prometheus.RecordCacheSweep(g.metrics, g.Name(), n)
	if err != nil {
		prometheus.RecordCacheError(g.metrics, g.Name(), "sweep")
		return n, errors.Wrap(err, errors.ErrCodeCacheError, "cache sweep failed")
	}
	g.logger.Debug("cache swept", logging.String("driver", g.Name()), logging.Int("removed", n))
	return n, nil
}

func (g *Guarded) degraded(op, key string, err error) {
	prometheus.RecordCacheError(g.metrics, g.Name(), op)
	g.logger.Warn("cache degraded to live fetch",
		logging.String("driver", g.Name()),
		logging.String("op", op),
		logging.String("key", key),
		logging.Err(err))
}

//Personal.AI order the ending
