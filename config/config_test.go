package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/craftsmatch")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := FromEnv()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, int32(50), cfg.DBMaxConns)
	assert.Equal(t, 10*time.Minute, cfg.CacheProductTTL)
	assert.Equal(t, 1000, cfg.MaxOrderQuantity)
	assert.Equal(t, "USD", cfg.DefaultCurrency)
	assert.Empty(t, cfg.RedisAddr)
	require.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/craftsmatch")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_MAX_CONNS", "8")
	t.Setenv("DB_MIN_CONNS", "2")
	t.Setenv("CACHE_STATS_TTL", "90s")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("MAX_ORDER_QUANTITY", "not-a-number")

	cfg := FromEnv()
	assert.Equal(t, int32(8), cfg.DBMaxConns)
	assert.Equal(t, int32(2), cfg.DBMinConns)
	assert.Equal(t, 90*time.Second, cfg.CacheStatsTTL)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 1000, cfg.MaxOrderQuantity)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := &Config{DBMaxConns: 1, DBMinConns: 5, RateLimitRPS: 1, RateLimitBurst: 1, MaxOrderQuantity: 1}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DSN")
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "DB_MIN_CONNS")

	cfg = &Config{DBUrl: "x", JWTSecret: "y", RateLimitRPS: 1, RateLimitBurst: 1, MaxOrderQuantity: 0}
	assert.ErrorContains(t, cfg.Validate(), "MAX_ORDER_QUANTITY")

	cfg = &Config{DBUrl: "x", JWTSecret: "y", RateLimitRPS: 1, RateLimitBurst: 1, MaxOrderQuantity: 1, RedisAddr: "r:6379"}
	assert.ErrorContains(t, cfg.Validate(), "RATE_LIMIT_WINDOW")
}
