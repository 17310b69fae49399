// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package directory

import (
	"cmp"
	"slices"
	"strings"

	"github.com/tomtom215/radiolite/internal/models"
)

// dedupeStations drops repeated stationuuid values, keeping the first.
// Stations without a uuid are kept as-is.
func dedupeStations(in []models.Station) []models.Station {
	seen := make(map[string]struct{}, len(in))
	out := make([]models.Station, 0, len(in))
	for _, s := range in {
		if s.StationUUID != "" {
			if _, dup := seen[s.StationUUID]; dup {
				continue
			}
			seen[s.StationUUID] = struct{}{}
		}
		out = append(out, s)
	}
	return out
}

// mergeCategories folds entries whose names differ only by case or
// surrounding space ("Jazz", "jazz ", "JAZZ") into one, summing counts.
// The first spelling seen wins. Output is sorted by count, descending,
// with ties kept in first-seen order.
func mergeCategories(in []models.Category) []models.Category {
	index := make(map[string]int, len(in))
	out := make([]models.Category, 0, len(in))
	for _, c := range in {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			continue
		}
		count := max(c.StationCount, 0)

		key := strings.ToLower(name)
		if i, ok := index[key]; ok {
			out[i].StationCount += count
			continue
		}
		index[key] = len(out)
		out = append(out, models.Category{Name: name, StationCount: count})
	}

	slices.SortStableFunc(out, func(a, b models.Category) int {
		return cmp.Compare(b.StationCount, a.StationCount)
	})
	return out
}
