package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const settingsPath = "/home/tester/.keyip/settings.yaml"

const customSettingsYAML = `
uspto:
  base_url: http://localhost:9999/api
  force_xml: false
  chunk_size: 10
http:
  timeout: 5s
  max_retries: 1
cache:
  driver: none
  max_age: 24h
term:
  walk_ancestors: true
log:
  level: debug
  format: console
`

func TestLoadFS_ReadsDocument(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, settingsPath, []byte(customSettingsYAML), 0o600))

	cfg, err := LoadFS(fs, settingsPath)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/api", cfg.USPTO.BaseURL)
	assert.False(t, cfg.USPTO.ForceXML)
	assert.Equal(t, 10, cfg.USPTO.ChunkSize)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 1, cfg.HTTP.MaxRetries)
	assert.Equal(t, CacheDriverNone, cfg.Cache.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Cache.MaxAge)
	assert.True(t, cfg.Term.WalkAncestors)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Metrics.Enabled, "unset booleans keep their registered default")
}

func TestLoadFS_MissingFile(t *testing.T) {
	_, err := LoadFS(afero.NewMemMapFs(), settingsPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadFS_InvalidDocument(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, settingsPath, []byte("cache:\n  driver: floppy\n"), 0o600))

	_, err := LoadFS(fs, settingsPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFS_EnvOverride(t *testing.T) {
	t.Setenv("KEYIP_CACHE_DRIVER", "none")
	t.Setenv("KEYIP_USPTO_CHUNK_SIZE", "5")

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, settingsPath, []byte(customSettingsYAML), 0o600))

	cfg, err := LoadFS(fs, settingsPath)
	require.NoError(t, err)
	assert.Equal(t, CacheDriverNone, cfg.Cache.Driver)
	assert.Equal(t, 5, cfg.USPTO.ChunkSize)
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("KEYIP_CACHE_DIR", "/var/cache/keyip")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.USPTO.ForceXML)
	assert.Equal(t, "/var/cache/keyip", cfg.Cache.Dir)
	assert.Equal(t, DefaultMaxRetries, cfg.HTTP.MaxRetries)
}

func TestBootstrap_SeedsFromBundledDefault(t *testing.T) {
	fs := afero.NewMemMapFs()

	created, err := EnsureSettings(fs, settingsPath)
	require.NoError(t, err)
	assert.True(t, created)

	data, err := afero.ReadFile(fs, settingsPath)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), data)

	created, err = EnsureSettings(fs, settingsPath)
	require.NoError(t, err)
	assert.False(t, created, "an existing settings file is never overwritten")
}

func TestBootstrap_LoadsSeededDocument(t *testing.T) {
	fs := afero.NewMemMapFs()

	cfg, err := Bootstrap(fs, settingsPath)
	require.NoError(t, err)
	assert.Equal(t, DefaultUSPTOBaseURL, cfg.USPTO.BaseURL)
	assert.True(t, cfg.USPTO.ForceXML)
	assert.Equal(t, CacheDriverDisk, cfg.Cache.Driver)
	assert.True(t, filepath.IsAbs(cfg.Cache.Dir) || cfg.Cache.Dir == DefaultCacheDir)
}

func TestBootstrap_KeepsUserEdits(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, settingsPath, []byte(customSettingsYAML), 0o600))

	cfg, err := Bootstrap(fs, settingsPath)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.USPTO.ChunkSize)
}

func TestDefaultSettingsPath_EnvOverride(t *testing.T) {
	t.Setenv(SettingsEnv, "/etc/keyip/settings.yaml")
	assert.Equal(t, "/etc/keyip/settings.yaml", DefaultSettingsPath())
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
	assert.Equal(t, "relative", ExpandHome("relative"))
	expanded := ExpandHome("~/cache")
	assert.NotContains(t, expanded, "~")
}

func TestMustLoad_PanicsOnMissingFile(t *testing.T) {
	assert.Panics(t, func() { MustLoad("/nonexistent/keyip/settings.yaml") })
}

//Personal.AI order the ending
