// Copyright (c) 2025 Muthukumaran Navaneethakrishnan
//
// This file is part of dual-crypt.
// Licensed under the MIT License. See LICENSE for details.

// Package config loads and validates the dual-crypt server configuration
// from YAML, with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete server configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	CORS    CORSConfig    `yaml:"cors"`
	Token   TokenConfig   `yaml:"token"`
}

// ServerConfig contains server-level settings. Timeouts are integer
// seconds; yaml.v3 cannot decode time.Duration strings and would read
// bare integers as nanoseconds.
type ServerConfig struct {
	Host                string `yaml:"host"`
	Port                int    `yaml:"port"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
	IdleTimeoutSeconds  int    `yaml:"idle_timeout_seconds"`
}

// ReadTimeout returns the read timeout as a duration.
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the write timeout as a duration.
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

// IdleTimeout returns the idle timeout as a duration.
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutSeconds) * time.Second
}

// LoggingConfig controls logging behavior
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// MetricsConfig controls Prometheus metrics exposure
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// CORSConfig controls cross-origin request handling
type CORSConfig struct {
	// AllowedOriginPatterns are glob-style origin patterns; a trailing
	// ":*" matches any port (e.g. "http://localhost:*").
	AllowedOriginPatterns []string `yaml:"allowed_origin_patterns"`
	AllowCredentials      bool     `yaml:"allow_credentials"`
	MaxAge                int      `yaml:"max_age"`
}

// TokenConfig controls the sign/verify codec
type TokenConfig struct {
	// LifetimeSeconds is the injected token lifetime when the caller
	// does not supply an exp claim.
	LifetimeSeconds int `yaml:"lifetime_seconds"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:                "0.0.0.0",
			Port:                8080,
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 15,
			IdleTimeoutSeconds:  60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		CORS: CORSConfig{
			AllowedOriginPatterns: []string{
				"http://localhost:*",
				"https://muthuishere.com",
				"https://*.muthuishere.com",
			},
			AllowCredentials: true,
			MaxAge:           3600,
		},
		Token: TokenConfig{
			LifetimeSeconds: 3600,
		},
	}
}

// Load reads configuration from the given path, applies environment
// overrides, and validates the result. A missing file is not an error;
// defaults plus environment overrides are used.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies DUALCRYPT_* environment variables over the
// loaded configuration.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DUALCRYPT_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("DUALCRYPT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("DUALCRYPT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("DUALCRYPT_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("DUALCRYPT_METRICS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = enabled
		}
	}
	if v := os.Getenv("DUALCRYPT_TOKEN_LIFETIME_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.Token.LifetimeSeconds = secs
		}
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeoutSeconds <= 0 || c.Server.WriteTimeoutSeconds <= 0 || c.Server.IdleTimeoutSeconds <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}
	if c.Token.LifetimeSeconds <= 0 {
		return fmt.Errorf("invalid token lifetime: %d", c.Token.LifetimeSeconds)
	}
	return nil
}

// TokenLifetime returns the configured token lifetime as a duration.
func (c *Config) TokenLifetime() time.Duration {
	return time.Duration(c.Token.LifetimeSeconds) * time.Second
}
