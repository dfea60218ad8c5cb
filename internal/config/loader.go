package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all settings.
const envPrefix = "KEYIP"

// newViper builds a Viper instance reading YAML from fs, with KEYIP_ env
// overrides where nested keys like "cache.driver" resolve to KEYIP_CACHE_DRIVER.
func newViper(fs afero.Fs) *viper.Viper {
	v := viper.New()
	if fs != nil {
		v.SetFs(fs)
	}
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	registerDefaults(v)
	return v
}

// registerDefaults makes every key known to viper so AutomaticEnv can bind it
// during Unmarshal, and carries the boolean defaults ApplyDefaults cannot
// express.
func registerDefaults(v *viper.Viper) {
	v.SetDefault("uspto.base_url", DefaultUSPTOBaseURL)
	v.SetDefault("uspto.force_xml", true)
	v.SetDefault("uspto.json_result_limit", DefaultJSONResultLimit)
	v.SetDefault("uspto.chunk_size", DefaultChunkSize)
	v.SetDefault("uspto.package_poll_interval", DefaultPackagePollInterval)
	v.SetDefault("uspto.package_timeout", DefaultPackageTimeout)

	v.SetDefault("http.timeout", DefaultHTTPTimeout)
	v.SetDefault("http.max_retries", DefaultMaxRetries)
	v.SetDefault("http.initial_backoff", DefaultInitialBackoff)
	v.SetDefault("http.max_backoff", DefaultMaxBackoff)
	v.SetDefault("http.user_agent", DefaultUserAgent)
	v.SetDefault("http.rate_limit", DefaultRateLimit)
	v.SetDefault("http.burst", DefaultBurst)

	v.SetDefault("cache.driver", DefaultCacheDriver)
	v.SetDefault("cache.dir", DefaultCacheDir)
	v.SetDefault("cache.max_age", DefaultCacheMaxAge)
	v.SetDefault("cache.redis.addr", "")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.key_prefix", DefaultRedisPrefix)
	v.SetDefault("cache.minio.endpoint", "")
	v.SetDefault("cache.minio.access_key", "")
	v.SetDefault("cache.minio.secret_key", "")
	v.SetDefault("cache.minio.bucket", DefaultMinIOBucket)
	v.SetDefault("cache.minio.prefix", "")
	v.SetDefault("cache.minio.use_ssl", false)

	v.SetDefault("term.walk_ancestors", false)
	v.SetDefault("term.max_depth", DefaultTermMaxDepth)

	v.SetDefault("server.host", DefaultServerHost)
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.mode", DefaultServerMode)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", DefaultMetricsNamespace)
	v.SetDefault("metrics.path", DefaultMetricsPath)

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
}

// Load reads the YAML file at configPath from the OS filesystem, merges
// KEYIP_* overrides, applies defaults and validates the result.
func Load(configPath string) (*Config, error) {
	return LoadFS(afero.NewOsFs(), configPath)
}

// LoadFS is Load over an arbitrary filesystem.
func LoadFS(fs afero.Fs, configPath string) (*Config, error) {
	v := newViper(fs)
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}
	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config from KEYIP_* environment variables and defaults
// only, with no settings file.
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper(nil))
}

// Bootstrap seeds the settings file at configPath from the bundled default when
// it does not exist yet, then loads it.
func Bootstrap(fs afero.Fs, configPath string) (*Config, error) {
	if _, err := EnsureSettings(fs, configPath); err != nil {
		return nil, err
	}
	return LoadFS(fs, configPath)
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// Watch re-reads configPath whenever it changes on disk and passes the new
// Config to onChange.  Invalid documents are reported to onError (if non-nil)
// and onChange is skipped.  Watch does not block.
func Watch(configPath string, onChange func(*Config), onError func(error)) {
	v := newViper(nil)
	v.SetConfigFile(configPath)
	_ = v.ReadInConfig()

	v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("config: reload of %s after %s: %w", e.Name, e.Op, err))
			}
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
}

// MustLoad is Load that panics on error.  For main() only.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}

//Personal.AI order the ending
