package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves the test into an empty directory so no stray config.yaml
// or .env file is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

// TestLoadDefaults verifies that Load applies defaults when nothing is set.
func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout())
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout())
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout())

	assert.Equal(t, "https://api.deezer.com", cfg.Partner.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Partner.Timeout())
	assert.Equal(t, 2, cfg.Partner.MaxRetries)
	assert.Equal(t, 200*time.Millisecond, cfg.Partner.RetryDelay())
	assert.Equal(t, 50, cfg.Partner.CatalogLimit)

	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Empty(t, cfg.Cache.DSN)
	assert.Equal(t, time.Hour, cfg.Cache.TTL())

	assert.Equal(t, 100, cfg.Task.QueueSize)
	assert.Equal(t, 2, cfg.Task.WorkerCount)
	assert.Equal(t, 5*time.Second, cfg.Task.WriteTimeout())
}

// TestLoadFromEnv verifies that environment variables override defaults.
func TestLoadFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("MJOLNIR_SERVER_PORT", "9090")
	t.Setenv("MJOLNIR_SERVER_LOG_LEVEL", "debug")
	t.Setenv("MJOLNIR_PARTNER_BASE_URL", "http://localhost:9999")
	t.Setenv("MJOLNIR_CACHE_DRIVER", "sqlite")
	t.Setenv("MJOLNIR_CACHE_DSN", "file:cache.db")
	t.Setenv("MJOLNIR_TASK_WORKER_COUNT", "4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "http://localhost:9999", cfg.Partner.BaseURL)
	assert.Equal(t, "sqlite", cfg.Cache.Driver)
	assert.Equal(t, "file:cache.db", cfg.Cache.DSN)
	assert.Equal(t, 4, cfg.Task.WorkerCount)
}

func TestLoadFromConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "mjolnir.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 7070
partner:
  max_retries: 0
cache:
  driver: none
  ttl_seconds: 60
`), 0o600))
	t.Setenv("MJOLNIR_SERVER_PORT", "7171")

	cfg, err := LoadWithOptions(LoadOptions{ConfigFile: path})
	require.NoError(t, err)

	assert.Equal(t, 7171, cfg.Server.Port, "environment wins over file")
	assert.Equal(t, 0, cfg.Partner.MaxRetries)
	assert.Equal(t, "none", cfg.Cache.Driver)
	assert.Equal(t, time.Minute, cfg.Cache.TTL())
}

func TestLoadDefaultConfigFileInWorkingDir(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server:\n  log_level: warn\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Server.LogLevel)
}

func TestLoadFromEnvFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("MJOLNIR_TASK_QUEUE_SIZE=7\n"), 0o600))
	// godotenv sets process variables; make sure they are cleaned up
	t.Setenv("MJOLNIR_TASK_QUEUE_SIZE", "")
	require.NoError(t, os.Unsetenv("MJOLNIR_TASK_QUEUE_SIZE"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Task.QueueSize)
}

func TestLoadMissingExplicitConfigFile(t *testing.T) {
	dir := chdirTemp(t)

	_, err := LoadWithOptions(LoadOptions{ConfigFile: filepath.Join(dir, "missing.yaml")})
	assert.Error(t, err)
}

// TestLoadValidation verifies that invalid values are rejected.
func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "port out of range", env: map[string]string{"MJOLNIR_SERVER_PORT": "70000"}},
		{name: "unknown log level", env: map[string]string{"MJOLNIR_SERVER_LOG_LEVEL": "verbose"}},
		{name: "bad partner url", env: map[string]string{"MJOLNIR_PARTNER_BASE_URL": "not a url"}},
		{name: "negative retries", env: map[string]string{"MJOLNIR_PARTNER_MAX_RETRIES": "-1"}},
		{name: "catalog limit too small", env: map[string]string{"MJOLNIR_PARTNER_CATALOG_LIMIT": "5"}},
		{name: "unknown cache driver", env: map[string]string{"MJOLNIR_CACHE_DRIVER": "redis"}},
		{name: "sqlite without dsn", env: map[string]string{"MJOLNIR_CACHE_DRIVER": "sqlite"}},
		{name: "postgres without dsn", env: map[string]string{"MJOLNIR_CACHE_DRIVER": "postgres"}},
		{name: "zero workers", env: map[string]string{"MJOLNIR_TASK_WORKER_COUNT": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirTemp(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestValidate_AfterOverride(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())
}
