// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/radiolite/internal/analytics"
	"github.com/tomtom215/radiolite/internal/api"
	"github.com/tomtom215/radiolite/internal/auth"
	"github.com/tomtom215/radiolite/internal/cache"
	"github.com/tomtom215/radiolite/internal/config"
	"github.com/tomtom215/radiolite/internal/directory"
	"github.com/tomtom215/radiolite/internal/logging"
	"github.com/tomtom215/radiolite/internal/releases"
	"github.com/tomtom215/radiolite/internal/stations"
	"github.com/tomtom215/radiolite/internal/storage"
	"github.com/tomtom215/radiolite/internal/supervisor"
	"github.com/tomtom215/radiolite/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("version", version).
		Str("directory", cfg.Directory.BaseURL).
		Str("cache_backend", cfg.Cache.Backend).
		Dur("hot_ttl", cfg.Cache.EffectiveHotTTL()).
		Dur("long_ttl", cfg.Cache.EffectiveLongTTL()).
		Msg("Starting Radiolite")

	db, err := storage.Open(cfg.Storage)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close storage")
		}
	}()

	store, err := cache.New(cfg.Cache, db.Badger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create cache")
	}

	catalog, err := stations.DefaultCatalog()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load station catalog")
	}

	stationService := stations.NewService(directory.NewClient(&cfg.Directory), store, catalog, stations.Config{
		HotTTL:              cfg.Cache.EffectiveHotTTL(),
		LongTTL:             cfg.Cache.EffectiveLongTTL(),
		FeaturedConcurrency: cfg.Directory.FeaturedConcurrency,
	})

	deps := api.Deps{
		Stations:  stationService,
		Analytics: analytics.NewStore(db.Badger(), cfg.Analytics),
		Storage:   db,
		Version:   version,
	}

	if cfg.Security.AdminEnabled() {
		deps.Auth, err = auth.NewAdminAuthenticator(&cfg.Security)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize admin authentication")
		}
		logging.Info().Str("username", cfg.Security.AdminUsername).Msg("Admin API enabled")
	} else {
		logging.Info().Msg("Admin API disabled (ADMIN_USERNAME/ADMIN_PASSWORD not set)")
	}

	// Assign only when configured: a typed nil would not read as disabled.
	if client := releases.NewClient(&cfg.Releases); cfg.Releases.Enabled && client.Configured() {
		deps.Releases = releases.NewService(client, &cfg.Releases)
		logging.Info().Str("repo", cfg.Releases.Repo).Msg("Release proxy enabled")
	} else {
		logging.Info().Msg("Release proxy disabled")
	}

	if deps.Analytics.Enabled() {
		logging.Info().Int("retention_days", cfg.Analytics.RetentionDays).Msg("Analytics enabled")
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           api.NewRouter(api.NewHandler(deps), api.MiddlewareConfigFrom(&cfg.Security)),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		// Global search may legitimately run longer than the read timeout.
		WriteTimeout: cfg.Server.Timeout + cfg.Directory.SearchTimeout,
		IdleTimeout:  60 * time.Second,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())

	tree.AddDataService(storage.NewGCService(db, cfg.Storage.GCInterval))
	if mem, ok := store.(*cache.MemoryStore); ok {
		tree.AddDataService(mem)
		logging.Info().Int("max_entries", cfg.Cache.MaxEntries).Msg("Memory cache sweeper added")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish...")
		serveErr = <-errCh
	case serveErr = <-errCh:
		stop()
	}
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Error().Err(serveErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Radiolite stopped")
}
