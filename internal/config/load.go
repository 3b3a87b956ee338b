// Package config loads and validates application configuration from
// environment variables and an optional config file. Environment
// variables take precedence over file values.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix is the prefix for environment variables, e.g.
// RETAIN_SERVER_PORT or RETAIN_DATABASE_URL.
const envPrefix = "RETAIN"

// Load reads configuration from the environment and an optional
// config.yaml in the working directory, applies defaults, and
// validates the result. Returns a populated Config or an error if
// loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The config file is optional; only a malformed file is fatal.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// AutomaticEnv alone does not surface env-only keys through
	// Unmarshal, so bind the known keys explicitly.
	for _, key := range []string{
		"server.port", "server.log_level", "database.url",
		"srs.default_ease_factor", "srs.min_ease_factor",
		"srs.ease_bonus", "srs.ease_penalty",
		"srs.lapse_interval_days", "srs.first_interval_days",
		"srs.second_interval_days", "srs.max_interval_days",
		"srs.relearn_minutes",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
