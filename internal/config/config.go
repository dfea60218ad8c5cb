// Package config defines the settings document of the patent client.  No I/O
// lives in this file, only plain data types and validation.
package config

import (
	"fmt"
	"net/url"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// USPTOConfig holds the examination data (PEDS) backend options.
type USPTOConfig struct {
	BaseURL             string        `mapstructure:"base_url"`
	ForceXML            bool          `mapstructure:"force_xml"`
	JSONResultLimit     int           `mapstructure:"json_result_limit"`
	ChunkSize           int           `mapstructure:"chunk_size"`
	PackagePollInterval time.Duration `mapstructure:"package_poll_interval"`
	PackageTimeout      time.Duration `mapstructure:"package_timeout"`
}

// HTTPConfig bounds every upstream call.
type HTTPConfig struct {
	Timeout        time.Duration `mapstructure:"timeout"`
	MaxRetries     int           `mapstructure:"max_retries"`
	InitialBackoff time.Duration `mapstructure:"initial_backoff"`
	MaxBackoff     time.Duration `mapstructure:"max_backoff"`
	UserAgent      string        `mapstructure:"user_agent"`

	// RateLimit caps upstream requests per second; 0 disables the limiter.
	RateLimit float64 `mapstructure:"rate_limit"`
	Burst     int     `mapstructure:"burst"`
}

// RedisCacheConfig configures the redis cache driver.
type RedisCacheConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// MinIOCacheConfig configures the object-store cache driver.
type MinIOCacheConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// CacheConfig selects and tunes the response cache.
type CacheConfig struct {
	// Driver is one of disk, redis, minio, none.
	Driver string           `mapstructure:"driver"`
	Dir    string           `mapstructure:"dir"`
	MaxAge time.Duration    `mapstructure:"max_age"`
	Redis  RedisCacheConfig `mapstructure:"redis"`
	MinIO  MinIOCacheConfig `mapstructure:"minio"`
}

// TermConfig tunes the expiration engine.
type TermConfig struct {
	WalkAncestors bool `mapstructure:"walk_ancestors"`
	MaxDepth      int  `mapstructure:"max_depth"`
}

// ServerConfig holds HTTP API tunables.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// MetricsConfig controls the prometheus registry.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Path      string `mapstructure:"path"`
}

// LogConfig mirrors logging.LogConfig so this package stays free of
// infrastructure imports.
type LogConfig struct {
	Level            string   `mapstructure:"level"`
	Format           string   `mapstructure:"format"`
	OutputPaths      []string `mapstructure:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths"`
}

// Config is the root settings document.
type Config struct {
	USPTO   USPTOConfig   `mapstructure:"uspto"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Term    TermConfig    `mapstructure:"term"`
	Server  ServerConfig  `mapstructure:"server"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Log     LogConfig     `mapstructure:"log"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config and
// returns the first problem found.
func (c *Config) Validate() error {
	// USPTO
	u, err := url.Parse(c.USPTO.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: uspto.base_url %q is not an absolute URL", c.USPTO.BaseURL)
	}
	if c.USPTO.ChunkSize < 1 || c.USPTO.ChunkSize > 100 {
		return fmt.Errorf("config: uspto.chunk_size %d is out of range [1, 100]", c.USPTO.ChunkSize)
	}
	if c.USPTO.JSONResultLimit < 0 {
		return fmt.Errorf("config: uspto.json_result_limit must be >= 0, got %d", c.USPTO.JSONResultLimit)
	}
	if c.USPTO.PackagePollInterval <= 0 || c.USPTO.PackageTimeout < c.USPTO.PackagePollInterval {
		return fmt.Errorf("config: uspto.package_timeout must be >= package_poll_interval > 0")
	}

	// HTTP
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("config: http.timeout must be positive")
	}
	if c.HTTP.MaxRetries < 0 {
		return fmt.Errorf("config: http.max_retries must be >= 0, got %d", c.HTTP.MaxRetries)
	}
	if c.HTTP.InitialBackoff <= 0 || c.HTTP.MaxBackoff < c.HTTP.InitialBackoff {
		return fmt.Errorf("config: http.max_backoff must be >= initial_backoff > 0")
	}
	if c.HTTP.RateLimit < 0 || c.HTTP.Burst < 0 {
		return fmt.Errorf("config: http.rate_limit and http.burst must be >= 0")
	}

	// Cache
	switch c.Cache.Driver {
	case CacheDriverDisk:
		if c.Cache.Dir == "" {
			return fmt.Errorf("config: cache.dir is required for the disk driver")
		}
	case CacheDriverRedis:
		if c.Cache.Redis.Addr == "" {
			return fmt.Errorf("config: cache.redis.addr is required for the redis driver")
		}
		if c.Cache.Redis.DB < 0 {
			return fmt.Errorf("config: cache.redis.db must be >= 0, got %d", c.Cache.Redis.DB)
		}
	case CacheDriverMinIO:
		if c.Cache.MinIO.Endpoint == "" || c.Cache.MinIO.Bucket == "" {
			return fmt.Errorf("config: cache.minio.endpoint and cache.minio.bucket are required for the minio driver")
		}
	case CacheDriverNone:
	default:
		return fmt.Errorf("config: cache.driver %q is invalid; expected disk|redis|minio|none", c.Cache.Driver)
	}
	if c.Cache.MaxAge <= 0 {
		return fmt.Errorf("config: cache.max_age must be positive")
	}

	// Term
	if c.Term.MaxDepth < 1 {
		return fmt.Errorf("config: term.max_depth must be >= 1, got %d", c.Term.MaxDepth)
	}

	// Server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}

//Personal.AI order the ending
