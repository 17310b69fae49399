// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/radiolite/config.yaml",
	"/etc/radiolite/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultDirectoryURL is the public radio-browser mirror used when none is
// configured.
const DefaultDirectoryURL = "https://de1.api.radio-browser.info/json"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8000,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Directory: DirectoryConfig{
			BaseURL:             DefaultDirectoryURL,
			Timeout:             15 * time.Second,
			SearchTimeout:       20 * time.Second,
			UserAgent:           "Radiolite/1.0",
			RequestsPerSec:      10,
			Burst:               20,
			MaxResponseBytes:    32 << 20,
			FeaturedConcurrency: 8,
		},
		Cache: CacheConfig{
			Backend:    "badger",
			MaxEntries: 100,
			TTL:        24 * time.Hour,
		},
		Storage: StorageConfig{
			Path:       "/data/radiolite",
			GCInterval: 10 * time.Minute,
		},
		Security: SecurityConfig{
			SessionTimeout:  24 * time.Hour,
			RateLimitReqs:   300,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Releases: ReleasesConfig{
			Enabled:  true,
			APIURL:   "https://api.github.com",
			Timeout:  15 * time.Second,
			CacheTTL: 5 * time.Minute,
		},
		Analytics: AnalyticsConfig{
			Enabled:       true,
			RetentionDays: 400,
		},
	}
}

// LoadWithKoanf loads configuration in three layers:
//  1. built-in defaults
//  2. optional YAML file
//  3. environment variables
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}
	if err := processDurationFields(k); err != nil {
		return nil, fmt.Errorf("failed to process duration fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields splits comma-separated env values into slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		var parts []string
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

var durationConfigPaths = []string{
	"cache.ttl",
	"cache.hot_ttl",
	"cache.long_ttl",
	"directory.timeout",
	"directory.search_timeout",
	"releases.cache_ttl",
	"security.session_timeout",
}

// processDurationFields accepts bare integers as seconds, so CACHE_TTL=86400
// keeps working next to CACHE_TTL=24h.
func processDurationFields(k *koanf.Koanf) error {
	for _, path := range durationConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		secs, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			continue
		}
		if err := k.Set(path, (time.Duration(secs) * time.Second).String()); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment names onto koanf paths.
var envMappings = map[string]string{
	// Server
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	// Directory
	"radio_browser_url":            "directory.base_url",
	"directory_timeout":            "directory.timeout",
	"directory_search_timeout":     "directory.search_timeout",
	"directory_user_agent":         "directory.user_agent",
	"directory_requests_per_sec":   "directory.requests_per_sec",
	"directory_burst":              "directory.burst",
	"directory_featured_workers":   "directory.featured_concurrency",
	"directory_max_response_bytes": "directory.max_response_bytes",

	// Cache
	"cache_backend":  "cache.backend",
	"cache_max_size": "cache.max_entries",
	"cache_ttl":      "cache.ttl",
	"cache_hot_ttl":  "cache.hot_ttl",
	"cache_long_ttl": "cache.long_ttl",

	// Storage
	"data_path":       "storage.path",
	"badger_path":     "storage.path",
	"badger_inmemory": "storage.in_memory",
	"badger_gc":       "storage.gc_interval",

	// Security
	"jwt_secret":          "security.jwt_secret",
	"session_timeout":     "security.session_timeout",
	"admin_username":      "security.admin_username",
	"admin_password":      "security.admin_password",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Releases
	"releases_enabled":   "releases.enabled",
	"github_api_url":     "releases.api_url",
	"github_repo":        "releases.repo",
	"github_token":       "releases.token",
	"public_url":         "releases.public_url",
	"releases_timeout":   "releases.timeout",
	"releases_cache_ttl": "releases.cache_ttl",

	// Analytics
	"analytics_enabled":        "analytics.enabled",
	"analytics_retention_days": "analytics.retention_days",
}

// envTransformFunc returns "" for variables that are not ours, which makes
// koanf skip them.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
