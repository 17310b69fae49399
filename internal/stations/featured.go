// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package stations

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/radiolite/internal/directory"
	"github.com/tomtom215/radiolite/internal/logging"
	"github.com/tomtom215/radiolite/internal/models"
)

// Regions lists the curated featured regions.
func (s *Service) Regions() []models.FeaturedRegion {
	return s.catalog.Regions()
}

// Featured resolves a curated region into stations, in curated order. Each
// entry is looked up by name within its country and the best match kept;
// entries the directory cannot find are left out. An unknown region
// returns an empty list without any directory call.
func (s *Service) Featured(ctx context.Context, region string) []models.Station {
	name, entries, ok := s.catalog.Lookup(region)
	if !ok || len(entries) == 0 {
		return []models.Station{}
	}

	return cachedList(ctx, s, opFeatured, featuredKey(name), s.hotTTL, ttlClassHot, func() []models.Station {
		return s.resolveFeatured(ctx, name, entries)
	})
}

func (s *Service) resolveFeatured(ctx context.Context, region string, entries []FeaturedEntry) []models.Station {
	found := make([]*models.Station, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.featuredConcurrency)
	for i, e := range entries {
		g.Go(func() error {
			res := s.dir.SearchStations(gctx, directory.SearchParams{
				Name:        e.Name,
				CountryCode: e.CountryCode,
				Limit:       1,
			})
			if len(res) > 0 {
				found[i] = &res[0]
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]models.Station, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, st := range found {
		if st == nil {
			continue
		}
		if st.StationUUID != "" {
			if _, dup := seen[st.StationUUID]; dup {
				continue
			}
			seen[st.StationUUID] = struct{}{}
		}
		out = append(out, *st)
	}

	logging.Ctx(ctx).Debug().
		Str("region", region).
		Int("curated", len(entries)).
		Int("resolved", len(out)).
		Msg("Featured region resolved")
	return out
}
