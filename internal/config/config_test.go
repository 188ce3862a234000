package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASS", "")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "reservations")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ACCESS_TOKEN_TTL_MIN", "15")
	t.Setenv("REFRESH_TOKEN_TTL_DAYS", "7")
	t.Setenv("BCRYPT_COST", "10")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)
	cfg := Load()

	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "root", cfg.DBUser)
	assert.Equal(t, "", cfg.DBPass)
	assert.Equal(t, "reservations", cfg.DBName)
	assert.Equal(t, 15, cfg.AccessTTLMin)
	assert.Equal(t, 7, cfg.RefreshTTLDays)
	assert.Equal(t, 10, cfg.BcryptCost)

	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.Equal(t, 25, cfg.DBMaxIdleConns)
	assert.Equal(t, 30*time.Minute, cfg.DBConnLifetime)
}

func TestLoadPoolOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_MAX_OPEN_CONNS", "50")
	t.Setenv("DB_MAX_IDLE_CONNS", "10")
	t.Setenv("DB_CONN_MAX_LIFETIME", "5m")

	cfg := Load()
	assert.Equal(t, 50, cfg.DBMaxOpenConns)
	assert.Equal(t, 10, cfg.DBMaxIdleConns)
	assert.Equal(t, 5*time.Minute, cfg.DBConnLifetime)
}

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	cfg := LoadRateLimitConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 60, cfg.Limit)
	assert.Equal(t, time.Minute, cfg.Window)
	assert.Equal(t, "rl", cfg.Prefix)
}

func TestLoadRateLimitConfigOverridesAndClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_MAX", "0")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")

	cfg := LoadRateLimitConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 1, cfg.Limit, "limit is clamped to at least one request")
	assert.Equal(t, 30*time.Second, cfg.Window)
}

func TestLoadCacheConfig(t *testing.T) {
	cfg := LoadCacheConfig()
	require.True(t, cfg.Enabled)
	assert.Equal(t, 30*time.Second, cfg.TTL)

	t.Setenv("CACHE_TTL", "2m")
	t.Setenv("CACHE_ENABLED", "false")
	cfg = LoadCacheConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 2*time.Minute, cfg.TTL)
}
