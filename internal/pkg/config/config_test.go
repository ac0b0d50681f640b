package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, StorePostgres, cfg.StoreDriver)
	assert.Equal(t, "plain", cfg.PasswordEncoder)
	assert.Equal(t, int32(10), cfg.Postgres.MaxConns)
	assert.Equal(t, "blog", cfg.Mongo.Database)
	assert.Empty(t, cfg.Redis.Addr, "idempotency is opt-in")
	assert.Equal(t, 24*time.Hour, cfg.Redis.IdempotencyTTL)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":              "production",
		"STORE_DRIVER":     "mongo",
		"PASSWORD_ENCODER": "bcrypt",
		"REDIS_ADDR":       "localhost:6379",
		"IDEMPOTENCY_TTL":  "1h",
		"METRICS_ENABLED":  "false",
	}))
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, StoreMongo, cfg.StoreDriver)
	assert.Equal(t, "bcrypt", cfg.PasswordEncoder)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.Redis.IdempotencyTTL)
	assert.False(t, cfg.MetricsEnabled)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown driver":  {"STORE_DRIVER": "sqlite"},
		"unknown encoder": {"PASSWORD_ENCODER": "md5"},
		"bad duration":    {"SHUTDOWN_TIMEOUT": "soon"},
		"zero shutdown":   {"SHUTDOWN_TIMEOUT": "0s"},
		"bad pool size":   {"POSTGRES_MAX_CONNS": "many"},
	}

	for name, env := range cases {
		_, err := load(context.Background(), envconfig.MapLookuper(env))
		assert.Error(t, err, name)
	}
}
