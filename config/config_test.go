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

// clearEnv blanks every override so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "CORS_ORIGIN", "STORAGE_BACKEND", "DATA_FILE", "BADGER_DIR", "DATABASE_DSN", "NATS_URL"} {
		t.Setenv(key, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, "http://localhost:5173", cfg.Server.AllowedOrigin)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "./data/equipment.json", cfg.Storage.DataFile)
	assert.Equal(t, "equipment.events", cfg.Events.Subject)
	assert.Equal(t, 1, cfg.WorkerPool.Size)
	assert.Zero(t, cfg.Server.CacheTTL())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  port: 8080
  rate_limit_per_sec: 0
  cache_ttl_seconds: 30
storage:
  backend: sqlite
database:
  dsn: "file::memory:"
worker_pool:
  size: 0
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://localhost:5173", cfg.Server.AllowedOrigin, "unset keys keep their defaults")
	assert.Zero(t, cfg.Server.RateLimitPerSec, "an explicit zero disables rate limiting")
	assert.Equal(t, 30, cfg.Server.CacheTTLSeconds)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, 1, cfg.WorkerPool.Size, "invalid pool size falls back to 1")
}

func TestLoad_EmptyFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, 3001, cfg.Server.Port)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "4000")
	t.Setenv("CORS_ORIGIN", "http://example.test")
	t.Setenv("DATA_FILE", "/tmp/equipment.json")
	t.Setenv("NATS_URL", "nats://localhost:4222")

	cfg, err := Load(writeConfig(t, "server:\n  port: 8080\n"))
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "http://example.test", cfg.Server.AllowedOrigin)
	assert.Equal(t, "/tmp/equipment.json", cfg.Storage.DataFile)
	assert.Equal(t, "nats://localhost:4222", cfg.Events.NATSURL)
}

func TestLoad_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-port")
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name      string
		mutate    func(c *Config)
		expectErr bool
	}{
		{name: "Defaults are valid", mutate: func(c *Config) {}},
		{name: "Unknown backend", mutate: func(c *Config) { c.Storage.Backend = "mongo" }, expectErr: true},
		{name: "Postgres without DSN", mutate: func(c *Config) { c.Storage.Backend = "postgres" }, expectErr: true},
		{name: "Postgres with DSN", mutate: func(c *Config) {
			c.Storage.Backend = "postgres"
			c.Database.DSN = "host=localhost"
		}},
		{name: "Badger without dir", mutate: func(c *Config) {
			c.Storage.Backend = "badger"
			c.Storage.BadgerDir = ""
		}, expectErr: true},
		{name: "File without path", mutate: func(c *Config) { c.Storage.DataFile = "" }, expectErr: true},
		{name: "Port out of range", mutate: func(c *Config) { c.Server.Port = 70000 }, expectErr: true},
		{name: "Missing origin", mutate: func(c *Config) { c.Server.AllowedOrigin = "" }, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
