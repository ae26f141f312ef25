package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	return configPath
}

func TestLoad(t *testing.T) {
	configPath := writeConfig(t, `
server:
  port: 9090
  host: "0.0.0.0"

windsor:
  api_key: "test-api-key"
  base_url: "https://connectors.example.com"
  timeout_seconds: 45

cache:
  enabled: true
  redis_addr: "redis:6379"
  ttl_minutes: 30

report:
  top_n: 5
  default_platform: "instagram"

companies:
  - id: acme
    name: "Acme Kft"
    accounts:
      tiktok: "tt-4711"
      instagram: "ig-1234"
`)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "test-api-key", cfg.Windsor.APIKey)
	assert.Equal(t, "https://connectors.example.com", cfg.Windsor.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.Windsor.Timeout())
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL())
	assert.Equal(t, 5, cfg.Report.TopN)
	assert.Equal(t, "instagram", cfg.Report.DefaultPlatform)

	company, ok := cfg.Company("acme")
	require.True(t, ok)
	assert.Equal(t, "Acme Kft", company.Name)
	assert.Equal(t, "tt-4711", company.Accounts["tiktok"])

	_, ok = cfg.Company("nope")
	assert.False(t, ok)
}

func TestLoadDefaults(t *testing.T) {
	configPath := writeConfig(t, `
windsor:
  api_key: "k"
`)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "https://connectors.windsor.ai", cfg.Windsor.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.Windsor.Timeout())
	assert.Equal(t, 3, cfg.Windsor.MaxRetries)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, time.Hour, cfg.Cache.TTL())
	assert.Equal(t, 3, cfg.Report.TopN)
	assert.Equal(t, "tiktok", cfg.Report.DefaultPlatform)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	configPath := writeConfig(t, "server: [not a map")
	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	configPath := writeConfig(t, `
windsor:
  api_key: "from-file"
`)

	t.Setenv("WINDSOR_API_KEY", "from-env")
	t.Setenv("REDIS_ADDR", "cache.internal:6380")
	t.Setenv("SERVER_PORT", "3000")

	cfg, err := LoadFromEnv(configPath)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Windsor.APIKey)
	assert.Equal(t, "cache.internal:6380", cfg.Cache.RedisAddr)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoadFromEnvBadPort(t *testing.T) {
	configPath := writeConfig(t, `
windsor:
  api_key: "k"
`)
	t.Setenv("SERVER_PORT", "not-a-port")

	_, err := LoadFromEnv(configPath)
	assert.Error(t, err)
}
