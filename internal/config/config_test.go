package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 8001, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.InDelta(t, 0.60, cfg.Confidence.ReviewThreshold, 1e-9)
	assert.InDelta(t, 0.90, cfg.Confidence.AutoSendThreshold, 1e-9)
	assert.InDelta(t, 0.05, cfg.Confidence.AmbiguityGap, 1e-9)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "email-advisor", cfg.Observability.ServiceName)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
database:
  driver: postgres
  postgres:
    dsn: "postgres://localhost/advising"
confidence:
  review_threshold: 0.5
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/advising", cfg.DatabaseDSN())
	assert.InDelta(t, 0.5, cfg.Confidence.ReviewThreshold, 1e-9)
	// Untouched values keep their defaults.
	assert.Equal(t, "memory", cfg.Cache.Driver)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "7777")
	t.Setenv("DATABASE_URL", "sqlite:/tmp/advising.db")
	t.Setenv("AUTO_SEND_THRESHOLD", "0.95")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7777, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/advising.db", cfg.Database.SQLite.Path)
	assert.InDelta(t, 0.95, cfg.Confidence.AutoSendThreshold, 1e-9)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)
}

func TestLoad_RedisURLSelectsRedisCache(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://localhost:6380")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, "localhost:6380", cfg.Cache.Redis.Addr)
}

func TestValidate_Failures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"bad database driver", func(c *Config) { c.Database.Driver = "oracle" }},
		{"bad cache driver", func(c *Config) { c.Cache.Driver = "memcached" }},
		{"threshold out of range", func(c *Config) { c.Confidence.ReviewThreshold = 1.5 }},
		{"negative gap", func(c *Config) { c.Confidence.AmbiguityGap = -0.1 }},
		{"review above auto-send", func(c *Config) {
			c.Confidence.ReviewThreshold = 0.95
			c.Confidence.AutoSendThreshold = 0.90
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDatabaseDriverName(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "sqlite3", cfg.DatabaseDriverName())

	cfg.Database.Driver = "postgres"
	assert.Equal(t, "postgres", cfg.DatabaseDriverName())
}
