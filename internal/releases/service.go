// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

// Package releases proxies desktop-app release metadata and installer
// downloads from GitHub.
//
// The latest-release document is served in the updater format when the
// release carries a latest.json asset, and in a minimal compatible shape
// otherwise. Installer links always point back at this service so the
// GitHub token never reaches clients.
package releases

import (
	"context"
	"maps"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/radiolite/internal/config"
	"github.com/tomtom215/radiolite/internal/logging"
	"github.com/tomtom215/radiolite/internal/models"
)

const (
	updaterManifest = "latest.json"

	// DownloadPath is the route prefix for proxied installer downloads.
	DownloadPath = "/api/v1/releases/download/"
)

// installerExtensions are the assets exposed to legacy clients.
var installerExtensions = []string{".dmg", ".exe", ".msi"}

// Latest is the latest-release document. Keys beyond tag_name and assets
// come from latest.json when present.
type Latest map[string]any

// Source is the GitHub surface the service needs.
type Source interface {
	LatestRelease(ctx context.Context) (*Release, error)
	AssetRedirect(ctx context.Context, assetID int64) (string, error)
	AssetContent(ctx context.Context, assetID int64) ([]byte, error)
}

var _ Source = (*Client)(nil)

// Service builds release documents and caches the latest one.
type Service struct {
	source    Source
	publicURL string
	ttl       time.Duration
	now       func() time.Time

	group singleflight.Group

	mu        sync.Mutex
	cached    Latest
	expiresAt time.Time
}

// NewService creates a release service over source.
func NewService(source Source, cfg *config.ReleasesConfig) *Service {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Service{
		source:    source,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		ttl:       ttl,
		now:       time.Now,
	}
}

// Latest returns the latest-release document, cached for the configured
// TTL. Concurrent misses share one upstream fetch.
func (s *Service) Latest(ctx context.Context) (Latest, error) {
	if doc, ok := s.fromCache(); ok {
		return doc, nil
	}

	v, err, _ := s.group.Do("latest", func() (any, error) {
		doc, err := s.build(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.cached = doc
		s.expiresAt = s.now().Add(s.ttl)
		s.mu.Unlock()
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	return maps.Clone(v.(Latest)), nil
}

// DownloadURL resolves the redirect target for an installer.
func (s *Service) DownloadURL(ctx context.Context, assetID int64) (string, error) {
	return s.source.AssetRedirect(ctx, assetID)
}

// Invalidate drops the cached document.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

func (s *Service) fromCache() (Latest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached == nil || !s.now().Before(s.expiresAt) {
		return nil, false
	}
	return maps.Clone(s.cached), true
}

func (s *Service) build(ctx context.Context) (Latest, error) {
	release, err := s.source.LatestRelease(ctx)
	if err != nil {
		return nil, err
	}

	assets := s.installerAssets(release.Assets)

	for _, a := range release.Assets {
		if a.Name != updaterManifest {
			continue
		}
		doc, err := s.manifest(ctx, a.ID)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Int64("asset_id", a.ID).Msg("Ignoring unusable latest.json")
			break
		}
		doc["tag_name"] = release.TagName
		doc["assets"] = assets
		return doc, nil
	}

	return Latest{
		"version":   strings.TrimPrefix(release.TagName, "v"),
		"tag_name":  release.TagName,
		"assets":    assets,
		"platforms": map[string]any{},
	}, nil
}

func (s *Service) manifest(ctx context.Context, assetID int64) (Latest, error) {
	body, err := s.source.AssetContent(ctx, assetID)
	if err != nil {
		return nil, err
	}
	var doc Latest
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = Latest{}
	}
	return doc, nil
}

func (s *Service) installerAssets(in []Asset) []models.ReleaseAsset {
	out := make([]models.ReleaseAsset, 0, len(in))
	for _, a := range in {
		if !isInstaller(a.Name) {
			continue
		}
		out = append(out, models.ReleaseAsset{
			ID:                 a.ID,
			Name:               a.Name,
			Size:               a.Size,
			BrowserDownloadURL: s.publicURL + DownloadPath + strconv.FormatInt(a.ID, 10),
		})
	}
	return out
}

func isInstaller(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range installerExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
