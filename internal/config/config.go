// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

// Package config loads Radiolite configuration from built-in defaults, an
// optional YAML file, and environment variables, in that order of
// precedence (environment wins).
//
// Legacy variable names from earlier deployments are still honoured:
// RADIO_BROWSER_URL, CACHE_TTL (seconds or a Go duration) and
// CACHE_MAX_SIZE.
package config

import (
	"strings"
	"time"
)

// Config is the root configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Directory DirectoryConfig `koanf:"directory"`
	Cache     CacheConfig     `koanf:"cache"`
	Storage   StorageConfig   `koanf:"storage"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Releases  ReleasesConfig  `koanf:"releases"`
	Analytics AnalyticsConfig `koanf:"analytics"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// DirectoryConfig configures the upstream radio-browser client.
type DirectoryConfig struct {
	BaseURL          string        `koanf:"base_url"`
	Timeout          time.Duration `koanf:"timeout"`
	SearchTimeout    time.Duration `koanf:"search_timeout"`
	UserAgent        string        `koanf:"user_agent"`
	RequestsPerSec   float64       `koanf:"requests_per_sec"`
	Burst            int           `koanf:"burst"`
	MaxResponseBytes int64         `koanf:"max_response_bytes"`

	// FeaturedConcurrency bounds parallel lookups for one featured region.
	FeaturedConcurrency int `koanf:"featured_concurrency"`
}

// CacheConfig selects the cache backend and expiry classes.
//
// TTL is the fallback for both classes; HotTTL and LongTTL override it
// when non-zero.
type CacheConfig struct {
	Backend    string        `koanf:"backend"` // badger or memory
	MaxEntries int           `koanf:"max_entries"`
	TTL        time.Duration `koanf:"ttl"`
	HotTTL     time.Duration `koanf:"hot_ttl"`
	LongTTL    time.Duration `koanf:"long_ttl"`
}

// EffectiveHotTTL returns the expiry for top stations, stats and featured
// lists.
func (c CacheConfig) EffectiveHotTTL() time.Duration {
	if c.HotTTL > 0 {
		return c.HotTTL
	}
	return c.TTL
}

// EffectiveLongTTL returns the expiry for category browses and listings.
func (c CacheConfig) EffectiveLongTTL() time.Duration {
	if c.LongTTL > 0 {
		return c.LongTTL
	}
	return c.TTL
}

// StorageConfig configures the shared BadgerDB instance used by the cache
// (badger backend) and analytics counters.
type StorageConfig struct {
	Path       string        `koanf:"path"`
	InMemory   bool          `koanf:"in_memory"`
	GCInterval time.Duration `koanf:"gc_interval"`
}

// SecurityConfig holds admin authentication and request limiting.
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	AdminUsername     string        `koanf:"admin_username"`
	AdminPassword     string        `koanf:"admin_password"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// AdminEnabled reports whether admin credentials are configured.
func (s SecurityConfig) AdminEnabled() bool {
	return s.AdminUsername != "" && s.AdminPassword != ""
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// ReleasesConfig points the update proxy at a GitHub repository.
type ReleasesConfig struct {
	Enabled bool   `koanf:"enabled"`
	APIURL  string `koanf:"api_url"`
	Repo    string `koanf:"repo"` // owner/name
	Token   string `koanf:"token"`

	// PublicURL prefixes the proxied download links handed to clients.
	// Empty means links are relative to this server.
	PublicURL string `koanf:"public_url"`

	Timeout  time.Duration `koanf:"timeout"`
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// AnalyticsConfig toggles the usage counters.
type AnalyticsConfig struct {
	Enabled bool `koanf:"enabled"`

	// RetentionDays is how long day counters are kept; it also bounds the
	// "all" report range.
	RetentionDays int `koanf:"retention_days"`
}

// IsProduction returns true when ENVIRONMENT is production or prod.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// Load reads the layered configuration and validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
