package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "-", cfg.Output)
	assert.False(t, cfg.SkipSpot)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\noutput: catalog.json\nskip_spot: true\n"), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "catalog.json", cfg.Output)
	assert.True(t, cfg.SkipSpot)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\n"), 0o600))

	t.Setenv("EC2CATALOG_LOG_LEVEL", "warn")
	t.Setenv("EC2CATALOG_LOG_FORMAT", "json")
	t.Setenv("EC2CATALOG_SKIP_SPOT", "1")

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.SkipSpot)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("EC2CATALOG_LOG_LEVEL", "loud")
	_, err := loadConfig("")
	require.Error(t, err)

	t.Setenv("EC2CATALOG_LOG_LEVEL", "info")
	t.Setenv("EC2CATALOG_LOG_FORMAT", "xml")
	_, err = loadConfig("")
	require.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
