// Package environment assembles the process-wide collaborators of the patent
// client from a Config: logger, metrics, the response cache, the examination
// data store, the query manager and the term calculator.  Nothing here is a
// package-level singleton; callers own the Environment and Close it.
package environment

import (
	"context"
	"time"

	"github.com/spf13/afero"

	"github.com/turtacn/KeyIP-PatentClient/internal/application/query"
	"github.com/turtacn/KeyIP-PatentClient/internal/config"
	"github.com/turtacn/KeyIP-PatentClient/internal/domain/lifecycle"
	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/cache"
	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/database/redis"
	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/source/uspto"
	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/storage/minio"
	"github.com/turtacn/KeyIP-PatentClient/pkg/errors"
)

// Environment is the wired object graph.
type Environment struct {
	Config    *config.Config
	Logger    logging.Logger
	Collector prometheus.MetricsCollector // nil when metrics are disabled
	Metrics   *prometheus.AppMetrics      // nil when metrics are disabled
	Cache     cache.Cache
	Store     *uspto.Store
	Query     *query.Manager
	Terms     *lifecycle.TermCalculator

	// Probes report the reachability of network-backed collaborators.
	Probes []Probe

	closers []func() error
}

// Probe is a named readiness check.
type Probe struct {
	name  string
	check func(context.Context) error
}

func (p Probe) Name() string                    { return p.name }
func (p Probe) Check(ctx context.Context) error { return p.check(ctx) }

type Option func(*builder)

type builder struct {
	fs        afero.Fs
	logger    logging.Logger
	cache     cache.Cache
	skipSweep bool
}

// WithFs sets the filesystem of the disk cache.
func WithFs(fs afero.Fs) Option {
	return func(b *builder) { b.fs = fs }
}

func WithLogger(l logging.Logger) Option {
	return func(b *builder) { b.logger = l }
}

// WithCache bypasses the configured driver.
func WithCache(c cache.Cache) Option {
	return func(b *builder) { b.cache = c }
}

// WithoutStartupSweep skips the retention sweep normally run by New.
func WithoutStartupSweep() Option {
	return func(b *builder) { b.skipSweep = true }
}

// New wires an Environment.  cfg must already be validated.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Environment, error) {
	b := &builder{fs: afero.NewOsFs()}
	for _, o := range opts {
		o(b)
	}

	env := &Environment{Config: cfg, Logger: b.logger}
	if env.Logger == nil {
		l, err := logging.NewLogger(logging.LogConfig{
			Level:            cfg.Log.Level,
			Format:           cfg.Log.Format,
			OutputPaths:      cfg.Log.OutputPaths,
			ErrorOutputPaths: cfg.Log.ErrorOutputPaths,
		})
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfig, "failed to build logger")
		}
		env.Logger = l
		env.closers = append(env.closers, func() error { _ = l.Sync(); return nil })
	}

	if cfg.Metrics.Enabled {
		collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			EnableProcessMetrics: true,
			EnableGoMetrics:      true,
		}, env.Logger)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfig, "failed to build metrics collector")
		}
		env.Collector = collector
		env.Metrics = prometheus.NewAppMetrics(collector)
	}

	inner := b.cache
	if inner == nil {
		if !knownDriver(cfg.Cache.Driver) {
			_ = env.Close()
			return nil, errors.New(errors.ErrCodeConfig, "unknown cache driver").WithDetail(cfg.Cache.Driver)
		}
		var err error
		if inner, err = env.openCache(b.fs); err != nil {
			inner = env.withoutCache(err)
		}
	}
	env.Cache = cache.NewGuarded(inner, env.Logger, env.Metrics)

	client := uspto.NewClient(cfg.USPTO.BaseURL, cfg.HTTP, env.Logger, env.Metrics)
	env.Store = uspto.NewStore(client, env.Cache, cfg.USPTO, env.Logger)

	env.Query = query.NewManager(env.Store,
		query.WithLogger(env.Logger),
		query.WithMetrics(env.Metrics),
		query.WithChunkSize(cfg.USPTO.ChunkSize),
		query.WithDefaults(query.WithForceXML(cfg.USPTO.ForceXML)),
	)

	termOpts := []lifecycle.Option{lifecycle.WithLogger(env.Logger), lifecycle.WithMetrics(env.Metrics)}
	if cfg.Term.WalkAncestors {
		termOpts = append(termOpts, lifecycle.WithAncestorResolver(env.Store, cfg.Term.MaxDepth))
	}
	env.Terms = lifecycle.NewTermCalculator(termOpts...)

	if !b.skipSweep {
		if _, err := env.Sweep(ctx); err != nil {
			env.Logger.Warn("startup cache sweep failed", logging.Err(err))
		}
	}
	return env, nil
}

// openCache builds the configured cache driver and registers its closer.
func (e *Environment) openCache(fs afero.Fs) (cache.Cache, error) {
	cc := e.Config.Cache
	switch cc.Driver {
	case config.CacheDriverDisk:
		return cache.NewDisk(fs, config.ExpandHome(cc.Dir))

	case config.CacheDriverRedis:
		client, err := redis.NewClient(&redis.RedisConfig{
			Addr:     cc.Redis.Addr,
			Password: cc.Redis.Password,
			DB:       cc.Redis.DB,
		}, e.Logger)
		if err != nil {
			return nil, err
		}
		e.closers = append(e.closers, client.Close)
		e.Probes = append(e.Probes, Probe{name: "redis", check: client.Ping})
		return redis.NewRedisCache(client, e.Logger,
			redis.WithPrefix(cc.Redis.KeyPrefix),
			redis.WithTTL(cc.MaxAge),
		), nil

	case config.CacheDriverMinIO:
		client, err := minio.NewMinIOClient(&minio.MinIOConfig{
			Endpoint:        cc.MinIO.Endpoint,
			AccessKeyID:     cc.MinIO.AccessKey,
			SecretAccessKey: cc.MinIO.SecretKey,
			UseSSL:          cc.MinIO.UseSSL,
			Bucket:          cc.MinIO.Bucket,
		}, e.Logger)
		if err != nil {
			return nil, err
		}
		e.closers = append(e.closers, client.Close)
		e.Probes = append(e.Probes, Probe{name: "minio", check: client.EnsureBucket})
		return minio.NewObjectCache(client, cc.MinIO.Prefix, e.Logger), nil

	}
	return cache.Nop{}, nil
}

func knownDriver(d string) bool {
	switch d {
	case config.CacheDriverDisk, config.CacheDriverRedis, config.CacheDriverMinIO, config.CacheDriverNone:
		return true
	}
	return false
}

// withoutCache stands in for a driver that could not be opened.  Lookups go
// straight to the source; the failure stays visible as a failing readiness check.
func (e *Environment) withoutCache(err error) cache.Cache {
	driver := e.Config.Cache.Driver
	e.Logger.Warn("cache unavailable, serving without cache",
		logging.String("driver", driver),
		logging.Err(err),
	)
	prometheus.RecordCacheError(e.Metrics, driver, "open")
	e.Probes = append(e.Probes, Probe{name: driver, check: func(context.Context) error { return err }})
	return cache.Nop{}
}

// Sweep removes cache entries older than cache.max_age.
func (e *Environment) Sweep(ctx context.Context) (int, error) {
	start := time.Now()
	removed, err := e.Cache.Sweep(ctx, e.Config.Cache.MaxAge)
	if err != nil {
		return removed, err
	}
	e.Logger.Info("cache swept",
		logging.String("driver", e.Cache.Name()),
		logging.Int("removed", removed),
		logging.Duration("duration", time.Since(start)),
	)
	return removed, nil
}

// Close releases network clients.  It is safe to call more than once.
func (e *Environment) Close() error {
	var first error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	e.closers = nil
	return first
}

//Personal.AI order the ending
