package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, "app:\n  name: mortgage-risk\n"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, BackendMemory, cfg.RateLimit.Backend)
	assert.Equal(t, 30, cfg.RateLimit.Capacity)
	assert.Equal(t, 60000, cfg.RateLimit.Window)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "balanced", cfg.Engine.DefaultMode)
}

func TestLoadFromFile_FileValues(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, `
server:
  address: ":9090"
rate_limit:
  backend: redis
  capacity: 5
  window: 1000
redis:
  address: "redis:6379"
  db: 2
logging:
  level: debug
  format: console
engine:
  default_mode: conservative
`))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, BackendRedis, cfg.RateLimit.Backend)
	assert.Equal(t, 5, cfg.RateLimit.Capacity)
	assert.Equal(t, "redis:6379", cfg.Redis.Address)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "conservative", cfg.Engine.DefaultMode)
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	t.Setenv("MORTGAGE_SERVER_ADDRESS", ":7070")
	t.Setenv("MORTGAGE_RATE_LIMIT_CAPACITY", "12")

	cfg, err := LoadFromFile(writeConfig(t, "server:\n  address: \":9090\"\n"))
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Address)
	assert.Equal(t, 12, cfg.RateLimit.Capacity)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown backend", "rate_limit:\n  backend: memcached\n"},
		{"zero capacity", "rate_limit:\n  capacity: 0\n"},
		{"negative window", "rate_limit:\n  window: -5\n"},
		{"bad log format", "logging:\n  format: xml\n"},
		{"bad mode", "engine:\n  default_mode: reckless\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFile_DisabledLimiterSkipsLimitChecks(t *testing.T) {
	_, err := LoadFromFile(writeConfig(t, "rate_limit:\n  enabled: false\n  backend: nope\n"))
	assert.NoError(t, err)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, "1.5s", GetDuration(1500).String())
}

func TestLoadFromFile_ExpandsPlaceholders(t *testing.T) {
	t.Setenv("TEST_REDIS_PASSWORD", "s3cret")

	cfg, err := LoadFromFile(writeConfig(t, "redis:\n  password: \"${TEST_REDIS_PASSWORD}\"\n"))
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Redis.Password)
}

func TestLoadFromFile_RedisTimeouts(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, "redis:\n  read_timeout: 1500\n"))
	require.NoError(t, err)

	assert.Equal(t, 1500, cfg.Redis.ReadTimeout)
	assert.Equal(t, 3000, cfg.Redis.WriteTimeout)
	assert.Equal(t, 5000, cfg.Redis.DialTimeout)
}
