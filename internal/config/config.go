// TeApoio Engage - Content Recommendations and Interaction Analytics
// Copyright 2026 TeApoio
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/teapoio/engage

// Package config loads and validates application configuration via Koanf v2
// with layered sources (highest priority wins):
//
//   - Environment variables (SERVER_PORT, DATABASE_URL, SECURITY_JWT_SECRET, ...)
//   - Config file (config.yaml)
//   - Built-in defaults
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration for the Engage server.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Security  SecurityConfig  `koanf:"security"`
	Recommend RecommendConfig `koanf:"recommend"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the listen address. Default: 0.0.0.0
	Host string `koanf:"host"`

	// Port is the listen port. Default: 8480
	Port int `koanf:"port"`

	// ReadTimeout bounds the time spent reading a request.
	ReadTimeout time.Duration `koanf:"read_timeout"`

	// WriteTimeout bounds the time spent writing a response.
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds Postgres connection settings. The content and
// interaction tables are shared with the main platform backend; Engage only
// migrates the tables it owns.
type DatabaseConfig struct {
	// URL is a full Postgres DSN. When set it takes precedence over the
	// individual fields below.
	URL string `koanf:"url"`

	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"ssl_mode"`

	// MaxOpenConns limits the connection pool size.
	MaxOpenConns int `koanf:"max_open_conns"`

	// MaxIdleConns limits idle pooled connections.
	MaxIdleConns int `koanf:"max_idle_conns"`
}

// DSN returns the Postgres connection string.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// SecurityConfig holds authentication and transport-security settings.
type SecurityConfig struct {
	// JWTSecret signs and validates bearer tokens (HS256). Required in
	// production; minimum 32 characters.
	JWTSecret string `koanf:"jwt_secret"`

	// SessionTimeout is the validity window for issued tokens.
	SessionTimeout time.Duration `koanf:"session_timeout"`

	// CORSOrigins lists allowed origins. Default: *
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitRequests is the per-IP request budget per RateLimitWindow.
	RateLimitRequests int `koanf:"rate_limit_requests"`

	// RateLimitWindow is the rate limiting window.
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// RecommendConfig holds operational knobs for the recommendation engine.
// Scoring weights live in the recommend package; these are deployment limits.
type RecommendConfig struct {
	// ProfileSize is the number of interest tags derived per user.
	ProfileSize int `koanf:"profile_size"`

	// CandidateLimit caps candidates fetched for general recommendations.
	CandidateLimit int `koanf:"candidate_limit"`

	// SimilarCandidateLimit caps candidates fetched for similar-item mode.
	SimilarCandidateLimit int `koanf:"similar_candidate_limit"`

	// DefaultLimit is the default result count for general recommendations.
	DefaultLimit int `koanf:"default_limit"`

	// SimilarDefaultLimit is the default result count for similar-item mode.
	SimilarDefaultLimit int `koanf:"similar_default_limit"`

	// MaxLimit caps any caller-supplied limit.
	MaxLimit int `koanf:"max_limit"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file:line in log events.
	Caller bool `koanf:"caller"`
}

// Validate checks the configuration for inconsistent or insecure values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}

	if c.Database.URL == "" && c.Database.Name == "" {
		return fmt.Errorf("database.url or database.name is required")
	}

	if c.Security.JWTSecret == "" {
		return fmt.Errorf("security.jwt_secret is required")
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("security.jwt_secret must be at least 32 characters, got %d", len(c.Security.JWTSecret))
	}

	switch lvl := strings.ToLower(c.Logging.Level); lvl {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal", "disabled":
	default:
		return fmt.Errorf("logging.level %q is not a valid level", c.Logging.Level)
	}

	if c.Recommend.ProfileSize <= 0 {
		return fmt.Errorf("recommend.profile_size must be positive, got %d", c.Recommend.ProfileSize)
	}
	if c.Recommend.CandidateLimit <= 0 || c.Recommend.SimilarCandidateLimit <= 0 {
		return fmt.Errorf("recommend candidate limits must be positive")
	}
	if c.Recommend.DefaultLimit <= 0 || c.Recommend.SimilarDefaultLimit <= 0 {
		return fmt.Errorf("recommend default limits must be positive")
	}
	if c.Recommend.MaxLimit < c.Recommend.DefaultLimit {
		return fmt.Errorf("recommend.max_limit (%d) must be >= recommend.default_limit (%d)",
			c.Recommend.MaxLimit, c.Recommend.DefaultLimit)
	}

	return nil
}
