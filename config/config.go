// Package config loads service configuration with the precedence:
// config file, PINKLEGION_* environment variables, defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// ListenAddr is the HTTP bind address.
	ListenAddr string

	// RedisAddr enables the Redis document cache; empty means the in-process
	// cache.
	RedisAddr string

	// SQLitePath enables SQLite installment persistence; empty means the
	// in-memory repository.
	SQLitePath string

	// TemplateDir holds the tokenized HTML contract templates.
	TemplateDir string

	// ChromeBin overrides the Chromium binary the rasterizer launches.
	ChromeBin string

	RateLimitCapacity int
	RateLimitWindow   time.Duration
}

// Load reads configuration from ./config.yaml (optional) and the
// environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.pinklegion")

	v.SetEnvPrefix("PINKLEGION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("redis_addr", "")
	v.SetDefault("sqlite_path", "")
	v.SetDefault("template_dir", "templates")
	v.SetDefault("chrome_bin", "")
	v.SetDefault("rate_limit.capacity", 20)
	v.SetDefault("rate_limit.window", "1m")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	window, err := time.ParseDuration(v.GetString("rate_limit.window"))
	if err != nil {
		return nil, fmt.Errorf("invalid rate_limit.window: %w", err)
	}

	capacity := v.GetInt("rate_limit.capacity")
	if capacity < 1 {
		return nil, errors.New("rate_limit.capacity must be at least 1")
	}

	return &Config{
		ListenAddr:        v.GetString("listen_addr"),
		RedisAddr:         v.GetString("redis_addr"),
		SQLitePath:        v.GetString("sqlite_path"),
		TemplateDir:       v.GetString("template_dir"),
		ChromeBin:         v.GetString("chrome_bin"),
		RateLimitCapacity: capacity,
		RateLimitWindow:   window,
	}, nil
}
