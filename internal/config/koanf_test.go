// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate points CONFIG_PATH at a missing file and moves into an empty
// directory so no config.yaml on the machine leaks into the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Chdir(t.TempDir())
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Directory.BaseURL != DefaultDirectoryURL {
		t.Errorf("Directory.BaseURL = %q, want %q", cfg.Directory.BaseURL, DefaultDirectoryURL)
	}
	if cfg.Cache.MaxEntries != 100 {
		t.Errorf("Cache.MaxEntries = %d, want 100", cfg.Cache.MaxEntries)
	}
	if cfg.Cache.EffectiveHotTTL() != 24*time.Hour || cfg.Cache.EffectiveLongTTL() != 24*time.Hour {
		t.Errorf("default TTLs = %v/%v, want 24h/24h", cfg.Cache.EffectiveHotTTL(), cfg.Cache.EffectiveLongTTL())
	}
	if cfg.Directory.Timeout != 15*time.Second || cfg.Directory.SearchTimeout != 20*time.Second {
		t.Errorf("directory timeouts = %v/%v", cfg.Directory.Timeout, cfg.Directory.SearchTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadWithKoanf_Env(t *testing.T) {
	isolate(t)
	t.Setenv("RADIO_BROWSER_URL", "https://nl1.api.radio-browser.info/json")
	t.Setenv("CACHE_TTL", "3600")
	t.Setenv("CACHE_LONG_TTL", "48h")
	t.Setenv("CACHE_BACKEND", "memory")
	t.Setenv("CACHE_MAX_SIZE", "250")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Directory.BaseURL != "https://nl1.api.radio-browser.info/json" {
		t.Errorf("BaseURL = %q", cfg.Directory.BaseURL)
	}
	if got := cfg.Cache.EffectiveHotTTL(); got != time.Hour {
		t.Errorf("hot TTL = %v, want 1h", got)
	}
	if got := cfg.Cache.EffectiveLongTTL(); got != 48*time.Hour {
		t.Errorf("long TTL = %v, want 48h", got)
	}
	if cfg.Cache.Backend != "memory" || cfg.Cache.MaxEntries != 250 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
}

func TestLoadWithKoanf_File(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
cache:
  hot_ttl: 30m
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Cache.EffectiveHotTTL() != 30*time.Minute {
		t.Errorf("hot TTL = %v, want 30m", cfg.Cache.EffectiveHotTTL())
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("env should override file: level = %q", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"relative directory url", func(c *Config) { c.Directory.BaseURL = "/json" }, "RADIO_BROWSER_URL"},
		{"unknown backend", func(c *Config) { c.Cache.Backend = "redis" }, "CACHE_BACKEND"},
		{"zero ttl", func(c *Config) { c.Cache.TTL = 0 }, "CACHE_TTL"},
		{"short jwt secret", func(c *Config) {
			c.Security.AdminUsername = "admin"
			c.Security.AdminPassword = "pw"
			c.Security.JWTSecret = "short"
		}, "JWT_SECRET"},
		{"half admin", func(c *Config) { c.Security.AdminUsername = "admin" }, "ADMIN_PASSWORD"},
		{"rate limit", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT_REQUESTS"},
		{"repo", func(c *Config) { c.Releases.Repo = "justname" }, "GITHUB_REPO"},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
