package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Cache.Dir = "/tmp/keyip-cache"
	ApplyDefaults(cfg)
	return cfg
}

func TestApplyDefaults_FillsZeroValues(t *testing.T) {
	cfg := validConfig()

	assert.Equal(t, DefaultUSPTOBaseURL, cfg.USPTO.BaseURL)
	assert.Equal(t, 25, cfg.USPTO.ChunkSize)
	assert.Equal(t, 20, cfg.USPTO.JSONResultLimit)
	assert.Equal(t, 72*time.Hour, cfg.Cache.MaxAge)
	assert.Equal(t, CacheDriverDisk, cfg.Cache.Driver)
	assert.Equal(t, DefaultTermMaxDepth, cfg.Term.MaxDepth)
	assert.Equal(t, DefaultPackageTimeout+DefaultServerTimeout, cfg.Server.WriteTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.USPTO.ChunkSize = 10
	cfg.Cache.Driver = CacheDriverRedis
	cfg.Log.Level = "debug"
	ApplyDefaults(cfg)

	assert.Equal(t, 10, cfg.USPTO.ChunkSize)
	assert.Equal(t, CacheDriverRedis, cfg.Cache.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestApplyDefaults_NilIsSafe(t *testing.T) {
	assert.NotPanics(t, func() { ApplyDefaults(nil) })
}

func TestValidate_DefaultsAreValid(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"relative base url", func(c *Config) { c.USPTO.BaseURL = "ped.uspto.gov" }, "uspto.base_url"},
		{"chunk too large", func(c *Config) { c.USPTO.ChunkSize = 500 }, "uspto.chunk_size"},
		{"negative json limit", func(c *Config) { c.USPTO.JSONResultLimit = -1 }, "json_result_limit"},
		{"poll longer than timeout", func(c *Config) { c.USPTO.PackageTimeout = time.Millisecond }, "package_timeout"},
		{"zero http timeout", func(c *Config) { c.HTTP.Timeout = 0 }, "http.timeout"},
		{"negative retries", func(c *Config) { c.HTTP.MaxRetries = -1 }, "http.max_retries"},
		{"backoff inverted", func(c *Config) { c.HTTP.MaxBackoff = time.Millisecond }, "http.max_backoff"},
		{"unknown driver", func(c *Config) { c.Cache.Driver = "memcached" }, "cache.driver"},
		{"redis without addr", func(c *Config) { c.Cache.Driver = CacheDriverRedis }, "cache.redis.addr"},
		{"minio without endpoint", func(c *Config) { c.Cache.Driver = CacheDriverMinIO }, "cache.minio"},
		{"zero max age", func(c *Config) { c.Cache.MaxAge = 0 }, "cache.max_age"},
		{"zero depth", func(c *Config) { c.Term.MaxDepth = 0 }, "term.max_depth"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"bad mode", func(c *Config) { c.Server.Mode = "prod" }, "server.mode"},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestValidate_NoneDriverNeedsNothing(t *testing.T) {
	cfg := validConfig()
	cfg.Cache.Driver = CacheDriverNone
	cfg.Cache.Dir = ""
	assert.NoError(t, cfg.Validate())
}

//Personal.AI order the ending
