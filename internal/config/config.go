// Vigor - Personal Fitness and Nutrition Tracking
// Copyright 2026 Maya K. (vigortrack)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vigortrack/vigor

// Package config loads and validates server configuration from layered
// sources: built-in defaults, an optional YAML file, and environment
// variables (highest priority).
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the Vigor server.
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Store       StoreConfig       `koanf:"store"`
	Security    SecurityConfig    `koanf:"security"`
	Nutritionix NutritionixConfig `koanf:"nutritionix"`
	Logging     LoggingConfig     `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`

	// Environment selects validation strictness: development or production.
	Environment string `koanf:"environment"`
}

// StoreConfig holds document store settings.
type StoreConfig struct {
	// Backend selects the store implementation: badger or memory.
	Backend string `koanf:"backend"`

	// Path is the badger database directory. Ignored for memory backend.
	Path string `koanf:"path"`

	// GCInterval is how often the badger value-log garbage collector runs.
	GCInterval time.Duration `koanf:"gc_interval"`
}

// SecurityConfig holds authentication and rate-limit settings.
type SecurityConfig struct {
	// JWTSecret signs session tokens. Required in production.
	JWTSecret string `koanf:"jwt_secret"`

	// SessionTimeout is the JWT token lifetime.
	SessionTimeout time.Duration `koanf:"session_timeout"`

	// RateLimitReqs is the request budget per RateLimitWindow per client IP.
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	// AuthRateLimitReqs is the stricter budget for /auth endpoints.
	AuthRateLimitReqs int `koanf:"auth_rate_limit_reqs"`

	// LockoutThreshold is the failed-login count that locks an account.
	LockoutThreshold int `koanf:"lockout_threshold"`

	// LockoutDuration is how long a locked account stays locked.
	LockoutDuration time.Duration `koanf:"lockout_duration"`

	CORSOrigins []string `koanf:"cors_origins"`
}

// NutritionixConfig holds credentials and limits for the calorie lookup API.
type NutritionixConfig struct {
	// URL is the natural-language nutrients endpoint.
	URL string `koanf:"url"`

	AppID  string `koanf:"app_id"`
	AppKey string `koanf:"app_key"`

	Timeout time.Duration `koanf:"timeout"`

	// RequestsPerSecond caps outbound lookups client-side.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Validate checks the configuration for invalid or unsafe values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}

	switch c.Store.Backend {
	case "badger":
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the badger backend")
		}
	case "memory":
		// No path needed; data is lost on restart.
	default:
		return fmt.Errorf("store.backend must be badger or memory, got %q", c.Store.Backend)
	}
	if c.Store.GCInterval < time.Minute {
		return fmt.Errorf("store.gc_interval must be at least 1m, got %s", c.Store.GCInterval)
	}

	if c.IsProduction() && c.Security.JWTSecret == "" {
		return fmt.Errorf("security.jwt_secret is required in production")
	}
	if c.Security.JWTSecret != "" && len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("security.jwt_secret must be at least 32 characters")
	}
	if c.Security.SessionTimeout <= 0 {
		return fmt.Errorf("security.session_timeout must be positive")
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("security.rate_limit_reqs must be at least 1")
	}
	if c.Security.AuthRateLimitReqs < 1 {
		return fmt.Errorf("security.auth_rate_limit_reqs must be at least 1")
	}
	if c.Security.LockoutThreshold < 1 {
		return fmt.Errorf("security.lockout_threshold must be at least 1")
	}

	if c.Nutritionix.URL == "" {
		return fmt.Errorf("nutritionix.url must not be empty")
	}
	if c.Nutritionix.Timeout <= 0 {
		return fmt.Errorf("nutritionix.timeout must be positive")
	}
	if c.Nutritionix.RequestsPerSecond <= 0 {
		return fmt.Errorf("nutritionix.requests_per_second must be positive")
	}

	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be trace, debug, info, warn or error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	return nil
}
