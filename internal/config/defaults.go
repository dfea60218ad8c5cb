package config

import "time"

// Cache drivers.
const (
	CacheDriverDisk  = "disk"
	CacheDriverRedis = "redis"
	CacheDriverMinIO = "minio"
	CacheDriverNone  = "none"
)

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultUSPTOBaseURL        = "https://ped.uspto.gov/api"
	DefaultJSONResultLimit     = 20
	DefaultChunkSize           = 25
	DefaultPackagePollInterval = time.Second
	DefaultPackageTimeout      = 10 * time.Minute

	DefaultHTTPTimeout    = 30 * time.Second
	DefaultMaxRetries     = 3
	DefaultInitialBackoff = 500 * time.Millisecond
	DefaultMaxBackoff     = 10 * time.Second
	DefaultUserAgent      = "keyip-patent-client"
	DefaultRateLimit      = 2.0
	DefaultBurst          = 4

	DefaultCacheDriver = CacheDriverDisk
	DefaultCacheDir    = "~/.keyip/cache"
	DefaultCacheMaxAge = 72 * time.Hour
	DefaultRedisPrefix = "keyip:pc:"
	DefaultMinIOBucket = "keyip-patent-cache"

	DefaultTermMaxDepth = 8

	DefaultServerHost     = "0.0.0.0"
	DefaultServerPort     = 8080
	DefaultServerMode     = "release"
	DefaultServerTimeout  = 60 * time.Second
	DefaultShutdownPeriod = 15 * time.Second

	DefaultMetricsNamespace = "keyip_patent_client"
	DefaultMetricsPath      = "/metrics"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// ApplyDefaults fills every zero-value field in cfg with its default.  Values
// already set win.  Booleans are not defaulted here; their defaults come from
// the bundled settings document and registerDefaults.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── USPTO ─────────────────────────────────────────────────────────────────
	if cfg.USPTO.BaseURL == "" {
		cfg.USPTO.BaseURL = DefaultUSPTOBaseURL
	}
	if cfg.USPTO.JSONResultLimit == 0 {
		cfg.USPTO.JSONResultLimit = DefaultJSONResultLimit
	}
	if cfg.USPTO.ChunkSize == 0 {
		cfg.USPTO.ChunkSize = DefaultChunkSize
	}
	if cfg.USPTO.PackagePollInterval == 0 {
		cfg.USPTO.PackagePollInterval = DefaultPackagePollInterval
	}
	if cfg.USPTO.PackageTimeout == 0 {
		cfg.USPTO.PackageTimeout = DefaultPackageTimeout
	}

	// ── HTTP ──────────────────────────────────────────────────────────────────
	if cfg.HTTP.Timeout == 0 {
		cfg.HTTP.Timeout = DefaultHTTPTimeout
	}
	if cfg.HTTP.InitialBackoff == 0 {
		cfg.HTTP.InitialBackoff = DefaultInitialBackoff
	}
	if cfg.HTTP.MaxBackoff == 0 {
		cfg.HTTP.MaxBackoff = DefaultMaxBackoff
	}
	if cfg.HTTP.UserAgent == "" {
		cfg.HTTP.UserAgent = DefaultUserAgent
	}
	if cfg.HTTP.RateLimit > 0 && cfg.HTTP.Burst == 0 {
		cfg.HTTP.Burst = DefaultBurst
	}
	// MaxRetries and RateLimit of 0 are valid explicit values.

	// ── Cache ─────────────────────────────────────────────────────────────────
	if cfg.Cache.Driver == "" {
		cfg.Cache.Driver = DefaultCacheDriver
	}
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = DefaultCacheDir
	}
	cfg.Cache.Dir = ExpandHome(cfg.Cache.Dir)
	if cfg.Cache.MaxAge == 0 {
		cfg.Cache.MaxAge = DefaultCacheMaxAge
	}
	if cfg.Cache.Redis.KeyPrefix == "" {
		cfg.Cache.Redis.KeyPrefix = DefaultRedisPrefix
	}
	if cfg.Cache.MinIO.Bucket == "" {
		cfg.Cache.MinIO.Bucket = DefaultMinIOBucket
	}

	// ── Term ──────────────────────────────────────────────────────────────────
	if cfg.Term.MaxDepth == 0 {
		cfg.Term.MaxDepth = DefaultTermMaxDepth
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultServerHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultServerTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		// bulk XML packages can take minutes to prepare upstream
		cfg.Server.WriteTimeout = cfg.USPTO.PackageTimeout + DefaultServerTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownPeriod
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}

//Personal.AI order the ending
