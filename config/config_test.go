package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "", cfg.RedisAddr)
	assert.Equal(t, "", cfg.SQLitePath)
	assert.Equal(t, "templates", cfg.TemplateDir)
	assert.Equal(t, 20, cfg.RateLimitCapacity)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PINKLEGION_LISTEN_ADDR", ":9090")
	t.Setenv("PINKLEGION_REDIS_ADDR", "localhost:6379")
	t.Setenv("PINKLEGION_RATE_LIMIT_WINDOW", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
}

func TestLoad_InvalidWindow(t *testing.T) {
	t.Setenv("PINKLEGION_RATE_LIMIT_WINDOW", "often")

	_, err := Load()
	assert.Error(t, err)
}
