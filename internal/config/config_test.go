// TeApoio Engage - Content Recommendations and Interaction Analytics
// Copyright 2026 TeApoio
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/teapoio/engage

package config

import (
	"strings"
	"testing"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Security.JWTSecret = testSecret
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults with secret are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing jwt secret",
			mutate:  func(c *Config) { c.Security.JWTSecret = "" },
			wantErr: "jwt_secret is required",
		},
		{
			name:    "short jwt secret",
			mutate:  func(c *Config) { c.Security.JWTSecret = "too-short" },
			wantErr: "at least 32 characters",
		},
		{
			name:    "invalid port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "server.port",
		},
		{
			name: "missing database",
			mutate: func(c *Config) {
				c.Database.URL = ""
				c.Database.Name = ""
			},
			wantErr: "database.url or database.name",
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "not a valid level",
		},
		{
			name:    "zero profile size",
			mutate:  func(c *Config) { c.Recommend.ProfileSize = 0 },
			wantErr: "profile_size",
		},
		{
			name:    "max limit below default",
			mutate:  func(c *Config) { c.Recommend.MaxLimit = 3 },
			wantErr: "max_limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	t.Run("url takes precedence", func(t *testing.T) {
		db := DatabaseConfig{URL: "postgres://u:p@h:5432/d", Host: "other"}
		if got := db.DSN(); got != "postgres://u:p@h:5432/d" {
			t.Errorf("DSN() = %q, want the raw URL", got)
		}
	})

	t.Run("built from fields", func(t *testing.T) {
		db := DatabaseConfig{Host: "db", Port: 5432, User: "engage", Password: "pw", Name: "teapoio", SSLMode: "disable"}
		got := db.DSN()
		for _, part := range []string{"host=db", "port=5432", "user=engage", "dbname=teapoio", "sslmode=disable"} {
			if !strings.Contains(got, part) {
				t.Errorf("DSN() = %q, missing %q", got, part)
			}
		}
	})
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SERVER_PORT", "server.port"},
		{"SECURITY_JWT_SECRET", "security.jwt_secret"},
		{"DATABASE_URL", "database.url"},
		{"RECOMMEND_PROFILE_SIZE", "recommend.profile_size"},
		{"LOGGING_LEVEL", "logging.level"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := envTransformFunc(tt.in); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SECURITY_JWT_SECRET", testSecret)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("SECURITY_CORS_ORIGINS", "https://app.teapoio.com, https://admin.teapoio.com")
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if len(cfg.Security.CORSOrigins) != 2 {
		t.Fatalf("CORSOrigins = %v, want 2 entries", cfg.Security.CORSOrigins)
	}
	if cfg.Security.CORSOrigins[1] != "https://admin.teapoio.com" {
		t.Errorf("CORSOrigins[1] = %q", cfg.Security.CORSOrigins[1])
	}
	// Untouched sections keep defaults.
	if cfg.Recommend.CandidateLimit != 50 {
		t.Errorf("Recommend.CandidateLimit = %d, want default 50", cfg.Recommend.CandidateLimit)
	}
}
