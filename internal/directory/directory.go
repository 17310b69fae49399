// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

// Package directory queries the community radio-browser API and maps its
// records into models.Station and models.Category.
//
// Failure policy: methods never return errors. A transport error, timeout,
// non-2xx status or undecodable body is logged and becomes an empty slice
// (zero counts for SummaryStats), so a directory outage degrades browsing
// to empty results instead of failing requests. Individual records decode
// independently; a malformed record is skipped.
//
// Two implementations exist: Client talks HTTP, Memory serves fixed data
// and counts calls for tests.
package directory

import (
	"context"
	"errors"

	"github.com/tomtom215/radiolite/internal/models"
)

// ErrUpstream marks a failed or unusable directory response.
var ErrUpstream = errors.New("directory request failed")

// Directory is the upstream station directory. Each method issues exactly
// one upstream query.
type Directory interface {
	TopStations(ctx context.Context, limit int) []models.Station
	SearchStations(ctx context.Context, p SearchParams) []models.Station
	Countries(ctx context.Context, p ListParams) []models.Category
	Languages(ctx context.Context, p ListParams) []models.Category
	Tags(ctx context.Context, p ListParams) []models.Category
	SummaryStats(ctx context.Context) models.SummaryStats
}

// Operation names, shared by metrics labels and Memory call counters.
const (
	OpTopStations    = "top_stations"
	OpSearchStations = "search_stations"
	OpCountries      = "countries"
	OpLanguages      = "languages"
	OpTags           = "tags"
	OpSummaryStats   = "summary_stats"
)

var (
	_ Directory = (*Client)(nil)
	_ Directory = (*Memory)(nil)
)
