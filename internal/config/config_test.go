package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate blanks the variables Load reads and hides any config.yaml in the
// working directory.
func isolate(t *testing.T) {
	t.Helper()
	for name := range envKeys {
		t.Setenv(name, "")
	}
	t.Setenv(configPathEnv, "")

	old := defaultConfigFile
	defaultConfigFile = filepath.Join(t.TempDir(), "config.yaml")
	t.Cleanup(func() { defaultConfigFile = old })
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.True(t, cfg.UseMemoryStore())
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 100, cfg.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoad_Env(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "postgresql://blog:blog@db:5432/blog")
	t.Setenv("RATE_LIMIT_REQUESTS", "0")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.UseMemoryStore())
	assert.Equal(t, 0, cfg.RateLimit.Requests)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "blog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "4000"
log:
  level: debug
  format: console
`), 0o600))
	t.Setenv(configPathEnv, path)
	t.Setenv("PORT", "5000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"non-numeric port", func(c *Config) { c.Server.Port = "http" }},
		{"port out of range", func(c *Config) { c.Server.Port = "70000" }},
		{"negative rate limit", func(c *Config) { c.RateLimit.Requests = -1 }},
		{"zero window", func(c *Config) { c.RateLimit.Window = 0 }},
		{"sqlite url", func(c *Config) { c.Database.URL = "sqlite:////tmp/test.db" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := defaults()
	assert.NoError(t, cfg.Validate())
}
