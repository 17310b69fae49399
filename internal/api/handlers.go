// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package api

import (
	"context"
	"time"

	"github.com/tomtom215/radiolite/internal/analytics"
	"github.com/tomtom215/radiolite/internal/auth"
	"github.com/tomtom215/radiolite/internal/releases"
	"github.com/tomtom215/radiolite/internal/stations"
)

// ReleaseService is the part of releases.Service the handlers use.
type ReleaseService interface {
	Latest(ctx context.Context) (releases.Latest, error)
	DownloadURL(ctx context.Context, assetID int64) (string, error)
}

// Pinger reports whether a dependency is usable.
type Pinger interface {
	Ping() error
}

// Handler holds the dependencies of every route. Optional dependencies
// may be nil; their routes then answer 503.
type Handler struct {
	stations  *stations.Service
	auth      *auth.AdminAuthenticator
	releases  ReleaseService
	analytics *analytics.Store
	storage   Pinger
	version   string
	startTime time.Time
}

// Deps lists the handler dependencies.
type Deps struct {
	Stations  *stations.Service
	Auth      *auth.AdminAuthenticator
	Releases  ReleaseService
	Analytics *analytics.Store
	Storage   Pinger
	Version   string
}

// NewHandler creates the route handlers.
func NewHandler(d Deps) *Handler {
	version := d.Version
	if version == "" {
		version = "dev"
	}
	return &Handler{
		stations:  d.Stations,
		auth:      d.Auth,
		releases:  d.Releases,
		analytics: d.Analytics,
		storage:   d.Storage,
		version:   version,
		startTime: time.Now(),
	}
}
