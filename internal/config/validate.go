// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"
)

const (
	minJWTSecretLength   = 32
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// Validate checks that the loaded configuration is usable.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateDirectory,
		c.validateCache,
		c.validateSecurity,
		c.validateReleases,
		c.validateLogging,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	return nil
}

func (c *Config) validateDirectory() error {
	u, err := url.Parse(c.Directory.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("RADIO_BROWSER_URL must be an absolute http(s) URL, got %q", c.Directory.BaseURL)
	}
	if c.Directory.Timeout <= 0 || c.Directory.SearchTimeout <= 0 {
		return fmt.Errorf("directory timeouts must be positive")
	}
	if c.Directory.RequestsPerSec < 0 {
		return fmt.Errorf("DIRECTORY_REQUESTS_PER_SEC must not be negative")
	}
	if c.Directory.FeaturedConcurrency < 1 {
		return fmt.Errorf("DIRECTORY_FEATURED_WORKERS must be at least 1")
	}
	return nil
}

func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case "badger":
		if c.Storage.Path == "" && !c.Storage.InMemory {
			return fmt.Errorf("DATA_PATH is required when CACHE_BACKEND=badger")
		}
	case "memory":
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("CACHE_MAX_SIZE must be at least 1")
		}
	default:
		return fmt.Errorf("CACHE_BACKEND must be one of: badger, memory")
	}
	if c.Cache.EffectiveHotTTL() <= 0 || c.Cache.EffectiveLongTTL() <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	s := c.Security
	if s.AdminEnabled() && len(s.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters when ADMIN_USERNAME is set", minJWTSecretLength)
	}
	if (s.AdminUsername == "") != (s.AdminPassword == "") {
		return fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}
	if s.AdminEnabled() && s.SessionTimeout <= 0 {
		return fmt.Errorf("SESSION_TIMEOUT must be positive")
	}
	if c.IsProduction() && slices.Contains(s.CORSOrigins, "*") && s.AdminEnabled() {
		return fmt.Errorf("CORS_ORIGINS=* is not allowed in production with admin login enabled")
	}
	if s.RateLimitDisabled {
		return nil
	}
	if s.RateLimitReqs < minRateLimitRequests || s.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if s.RateLimitWindow < minRateLimitWindow || s.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

func (c *Config) validateReleases() error {
	if !c.Releases.Enabled {
		return nil
	}
	if c.Releases.Repo != "" && strings.Count(c.Releases.Repo, "/") != 1 {
		return fmt.Errorf("GITHUB_REPO must look like owner/name, got %q", c.Releases.Repo)
	}
	return nil
}

var validLogLevels = []string{"trace", "debug", "info", "warn", "error"}

func (c *Config) validateLogging() error {
	if !slices.Contains(validLogLevels, strings.ToLower(c.Logging.Level)) {
		return fmt.Errorf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", "))
	}
	if f := strings.ToLower(c.Logging.Format); f != "json" && f != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console")
	}
	return nil
}
