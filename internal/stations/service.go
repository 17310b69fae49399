// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

// Package stations is the station service: it answers station and
// category queries from the cache when it can and from the directory when
// it must, and composes global search and featured regions out of
// several directory queries.
//
// Caching policy:
//   - hot TTL: top stations, summary stats, featured regions
//   - long TTL: category browses (search without a name) and
//     country/language/tag listings
//   - never: searches carrying a free-text name
//   - empty results and all-zero stats are never written
//
// There is no locking around a read-then-write: two concurrent misses for
// one key may both fetch and both write, and the last write wins.
package stations

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/radiolite/internal/cache"
	"github.com/tomtom215/radiolite/internal/directory"
	"github.com/tomtom215/radiolite/internal/logging"
	"github.com/tomtom215/radiolite/internal/metrics"
	"github.com/tomtom215/radiolite/internal/models"
)

// Global search limits per sub-query.
const (
	globalCategoryLimit = 4
	globalStationLimit  = 20
	minGlobalQueryRunes = 2
)

const (
	ttlClassHot  = "hot"
	ttlClassLong = "long"
)

// Config tunes the service.
type Config struct {
	HotTTL              time.Duration
	LongTTL             time.Duration
	FeaturedConcurrency int
}

// Service is safe for concurrent use.
type Service struct {
	dir     directory.Directory
	store   cache.Store
	catalog *Catalog

	hotTTL              time.Duration
	longTTL             time.Duration
	featuredConcurrency int
}

// NewService wires a directory and a cache store. catalog may be nil, in
// which case no featured regions exist.
func NewService(dir directory.Directory, store cache.Store, catalog *Catalog, cfg Config) *Service {
	if cfg.HotTTL <= 0 {
		cfg.HotTTL = 24 * time.Hour
	}
	if cfg.LongTTL <= 0 {
		cfg.LongTTL = 24 * time.Hour
	}
	if cfg.FeaturedConcurrency <= 0 {
		cfg.FeaturedConcurrency = 8
	}
	return &Service{
		dir:                 dir,
		store:               store,
		catalog:             catalog,
		hotTTL:              cfg.HotTTL,
		longTTL:             cfg.LongTTL,
		featuredConcurrency: cfg.FeaturedConcurrency,
	}
}

// TopStations returns the most voted stations. A non-positive limit means
// the default of 100.
func (s *Service) TopStations(ctx context.Context, limit int) []models.Station {
	if limit <= 0 {
		limit = directory.DefaultTopLimit
	}
	return cachedList(ctx, s, opTopStations, topStationsKey(limit), s.hotTTL, ttlClassHot, func() []models.Station {
		return s.dir.TopStations(ctx, limit)
	})
}

// SearchStations searches the directory. Searches with a name always go
// upstream; all others are cached with the long TTL.
func (s *Service) SearchStations(ctx context.Context, p directory.SearchParams) []models.Station {
	p = p.WithDefaults()
	if p.Name != "" {
		metrics.RecordCacheLookup(opSearch, false)
		return nonNil(s.dir.SearchStations(ctx, p))
	}
	return cachedList(ctx, s, opSearch, cacheKey(opSearch, p.Values()), s.longTTL, ttlClassLong, func() []models.Station {
		return s.dir.SearchStations(ctx, p)
	})
}

// Countries lists countries, optionally filtered by name.
func (s *Service) Countries(ctx context.Context, p directory.ListParams) []models.Category {
	return s.listing(ctx, opCountries, p, s.dir.Countries)
}

// Languages lists languages, optionally filtered by name.
func (s *Service) Languages(ctx context.Context, p directory.ListParams) []models.Category {
	return s.listing(ctx, opLanguages, p, s.dir.Languages)
}

// Tags lists tags, optionally filtered by name.
func (s *Service) Tags(ctx context.Context, p directory.ListParams) []models.Category {
	return s.listing(ctx, opTags, p, s.dir.Tags)
}

func (s *Service) listing(
	ctx context.Context,
	op string,
	p directory.ListParams,
	fetch func(context.Context, directory.ListParams) []models.Category,
) []models.Category {
	p = p.WithDefaults()
	return cachedList(ctx, s, op, cacheKey(op, p.Values()), s.longTTL, ttlClassLong, func() []models.Category {
		return fetch(ctx, p)
	})
}

// SummaryStats returns directory-wide counts. Zero counts, which is how
// the directory reports failure, are not cached.
func (s *Service) SummaryStats(ctx context.Context) models.SummaryStats {
	key := cacheKey(opStats, nil)
	var stats models.SummaryStats
	if s.lookup(ctx, opStats, key, &stats) {
		return stats
	}

	stats = s.dir.SummaryStats(ctx)
	if !stats.IsZero() {
		s.write(ctx, opStats, key, stats, s.hotTTL, ttlClassHot)
	}
	return stats
}

// SearchGlobal runs four sub-queries concurrently and joins them by role.
// A query shorter than two characters returns an empty result without
// touching the directory.
func (s *Service) SearchGlobal(ctx context.Context, query string) models.GlobalSearchResult {
	result := models.EmptyGlobalSearchResult()
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minGlobalQueryRunes {
		return result
	}

	list := directory.ListParams{Name: query, Limit: globalCategoryLimit}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result.Countries = s.Countries(gctx, list)
		return nil
	})
	g.Go(func() error {
		result.Languages = s.Languages(gctx, list)
		return nil
	})
	g.Go(func() error {
		result.Tags = s.Tags(gctx, list)
		return nil
	})
	g.Go(func() error {
		result.Stations = s.SearchStations(gctx, directory.SearchParams{Name: query, Limit: globalStationLimit})
		return nil
	})
	_ = g.Wait()
	return result
}

// FlushCache wipes the whole cache store.
func (s *Service) FlushCache(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Cache flush failed")
		return err
	}
	metrics.CacheFlushes.Inc()
	logging.Ctx(ctx).Info().Msg("Station cache flushed")
	return nil
}

// CacheStats reports store statistics when the backend tracks them.
func (s *Service) CacheStats() (cache.Stats, bool) {
	r, ok := s.store.(cache.StatsReporter)
	if !ok {
		return cache.Stats{}, false
	}
	return r.Stats(), true
}

// cachedList serves a list from the cache or fetches it, writing back
// non-empty results.
func cachedList[T any](
	ctx context.Context,
	s *Service,
	op, key string,
	ttl time.Duration,
	class string,
	fetch func() []T,
) []T {
	var cached []T
	if s.lookup(ctx, op, key, &cached) {
		return nonNil(cached)
	}

	fresh := nonNil(fetch())
	if len(fresh) > 0 {
		s.write(ctx, op, key, fresh, ttl, class)
	}
	return fresh
}

// lookup decodes a cached value into dst. An undecodable entry counts as
// a miss and is overwritten by the next successful fetch.
func (s *Service) lookup(ctx context.Context, op, key string, dst any) bool {
	data, ok := s.store.Get(ctx, key)
	if ok {
		if err := json.Unmarshal(data, dst); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Discarding undecodable cache entry")
			ok = false
		}
	}
	metrics.RecordCacheLookup(op, ok)
	return ok
}

func (s *Service) write(ctx context.Context, op, key string, value any, ttl time.Duration, class string) {
	data, err := json.Marshal(value)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Failed to encode cache entry")
		return
	}
	s.store.Set(ctx, key, data, ttl)
	metrics.CacheWrites.WithLabelValues(op, class).Inc()
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
