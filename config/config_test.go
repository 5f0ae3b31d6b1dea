package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDevelopmentDefaults(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("CI", "")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("JWT_SECRET", "dev-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, CacheMemory, cfg.CacheDriver)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, 60, cfg.RateLimit)
	assert.Equal(t, "dev-secret", cfg.JWTSecret)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
}

func TestLoadConfigPrefersSecrets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("from-file\n"), 0o600))

	t.Setenv("ENV", "development")
	t.Setenv("CI", "")
	t.Setenv("SECRETS_DIR", dir)
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.JWTSecret)
}

func TestLoadConfigCI(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "recipedia")
	t.Setenv("DB_NAME", "recipedia")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET", "jwt")
	t.Setenv("CACHE_TTL", "10m")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, CacheRedis, cfg.CacheDriver)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "host=db port=5432 user=recipedia password=secret dbname=recipedia sslmode=disable", cfg.PostgresDSN())
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("CI", "")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("JWT_SECRET", "jwt")
	t.Setenv("CACHE_TTL", "forever")

	_, err := LoadConfig()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_TTL")
}

func TestValidateConfig(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "development")

	cfg := &Config{
		ServerPort:      "8080",
		DBDriver:        DriverPostgres,
		CacheDriver:     "memcached",
		CacheTTL:        time.Minute,
		RateLimitWindow: time.Minute,
	}

	err := ValidateConfig(cfg)
	require.Error(t, err)

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)

	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.Field] = true
	}
	assert.True(t, fields["DB_HOST"])
	assert.True(t, fields["DB_PASSWORD"])
	assert.True(t, fields["CACHE_DRIVER"])
	assert.True(t, fields["JWT_SECRET"])
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "PRODUCTION")
	assert.Equal(t, Production, GetEnvironment())
	assert.True(t, IsProduction())

	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())
	assert.True(t, IsDevelopment())

	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
}
