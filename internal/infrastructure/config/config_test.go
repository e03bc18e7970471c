package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loadIsolated loads config from an empty directory so a config.toml in the
// working tree cannot leak into assertions.
func loadIsolated(t *testing.T) (*Config, error) {
	t.Helper()
	return LoadFrom(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := loadIsolated(t)
	require.NoError(t, err)

	assert.Equal(t, "boilerparts-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "3001", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "boilerparts", cfg.Database.DBName)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)
	assert.Equal(t, 200*time.Millisecond, cfg.Database.SlowThreshold)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, 20, cfg.Catalog.PageSize)
	assert.Equal(t, 20, cfg.Catalog.SearchLimit)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
	assert.NotEmpty(t, cfg.JWT.Secret)
	assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
	assert.Equal(t, cfg.App.Name, cfg.Telemetry.ServiceName)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BP_APP_NAME", "test-app")
	t.Setenv("BP_APP_PORT", "9000")
	t.Setenv("BP_DATABASE_HOST", "testdb.local")
	t.Setenv("BP_DATABASE_PORT", "5433")
	t.Setenv("BP_DATABASE_PASSWORD", "testpass")
	t.Setenv("BP_DATABASE_MAX_OPEN_CONNS", "50")
	t.Setenv("BP_DATABASE_MAX_IDLE_CONNS", "10")
	t.Setenv("BP_REDIS_ENABLED", "true")
	t.Setenv("BP_CATALOG_PAGE_SIZE", "50")

	cfg, err := loadIsolated(t)
	require.NoError(t, err)

	assert.Equal(t, "test-app", cfg.App.Name)
	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, "testdb.local", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "testpass", cfg.Database.Password)
	assert.Equal(t, 50, cfg.Database.MaxOpenConns)
	assert.Equal(t, 10, cfg.Database.MaxIdleConns)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 50, cfg.Catalog.PageSize)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[app]
name = "from-file"

[database]
dbname = "parts"

[catalog]
search_limit = 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.App.Name)
	assert.Equal(t, "parts", cfg.Database.DBName)
	assert.Equal(t, 5, cfg.Catalog.SearchLimit)
	assert.Equal(t, 20, cfg.Catalog.PageSize)
}

func TestLoad_Validation(t *testing.T) {
	t.Run("idle conns cannot exceed open conns", func(t *testing.T) {
		t.Setenv("BP_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("BP_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := loadIsolated(t)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("negative idle conns rejected", func(t *testing.T) {
		t.Setenv("BP_DATABASE_MAX_IDLE_CONNS", "-1")

		_, err := loadIsolated(t)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be negative")
	})

	t.Run("production requires a long jwt secret", func(t *testing.T) {
		t.Setenv("BP_APP_ENV", "production")
		t.Setenv("BP_JWT_SECRET", "short")
		t.Setenv("BP_DATABASE_PASSWORD", "secret")
		t.Setenv("BP_DATABASE_SSLMODE", "require")

		_, err := loadIsolated(t)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32 characters")
	})

	t.Run("production rejects disabled sslmode", func(t *testing.T) {
		t.Setenv("BP_APP_ENV", "production")
		t.Setenv("BP_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		t.Setenv("BP_DATABASE_PASSWORD", "secret")

		_, err := loadIsolated(t)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})

	t.Run("production config accepted", func(t *testing.T) {
		t.Setenv("BP_APP_ENV", "production")
		t.Setenv("BP_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		t.Setenv("BP_DATABASE_PASSWORD", "secret")
		t.Setenv("BP_DATABASE_SSLMODE", "require")

		cfg, err := loadIsolated(t)
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
	})

	t.Run("sampling ratio out of range", func(t *testing.T) {
		t.Setenv("BP_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := loadIsolated(t)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "shop",
		Password: "p@ss word",
		DBName:   "boilerparts",
		SSLMode:  "disable",
	}

	assert.Equal(t, "postgres://shop:p%40ss%20word@db:5432/boilerparts?sslmode=disable", d.DSN())
}
