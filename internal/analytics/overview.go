// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package analytics

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/radiolite/internal/models"
)

// Range selects the report window.
type Range string

const (
	RangeToday   Range = "1d"
	Range7Days   Range = "7d"
	Range30Days  Range = "30d"
	RangeAllTime Range = "all"

	// DefaultRange is used when the caller gives none.
	DefaultRange = Range7Days

	// TopLimit bounds the station and country rankings in an overview.
	TopLimit = 20

	// allTimeDailyLimit caps the daily series of an all-time report.
	allTimeDailyLimit = 30
)

// ErrInvalidRange is returned for an unknown range value.
var ErrInvalidRange = errors.New("invalid range")

// ParseRange validates a range query value; "" means DefaultRange.
func ParseRange(s string) (Range, error) {
	switch r := Range(s); r {
	case "":
		return DefaultRange, nil
	case RangeToday, Range7Days, Range30Days, RangeAllTime:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q (want 1d, 7d, 30d or all)", ErrInvalidRange, s)
	}
}

// days returns the report days newest first. 7d and 30d include the
// boundary day, so 7d covers eight calendar days.
func (s *Store) days(r Range) []time.Time {
	today := s.today()
	var back int
	switch r {
	case RangeToday:
		back = 0
	case Range7Days:
		back = 7
	case Range30Days:
		back = 30
	default:
		back = s.retention - 1
	}

	out := make([]time.Time, 0, back+1)
	for i := 0; i <= back; i++ {
		out = append(out, today.AddDate(0, 0, -i))
	}
	return out
}

// Overview builds the admin dashboard for r.
func (s *Store) Overview(ctx context.Context, r Range) (*models.AnalyticsOverview, error) {
	if !s.enabled {
		return nil, ErrDisabled
	}

	out := &models.AnalyticsOverview{
		Range:            string(r),
		RecentDailyStats: []models.DailyStats{},
	}
	stations := map[string]int64{}
	countries := map[string]int64{}

	err := s.db.View(func(txn *badger.Txn) error {
		for _, day := range s.days(r) {
			if err := ctx.Err(); err != nil {
				return err
			}
			opens, err := readCounter(txn, dayKey(day, "opens"))
			if err != nil {
				return err
			}
			plays, err := readCounter(txn, dayKey(day, "plays"))
			if err != nil {
				return err
			}
			if opens == 0 && plays == 0 {
				continue
			}

			out.TotalAppOpens += opens
			out.TotalPlays += plays
			if r != RangeAllTime || len(out.RecentDailyStats) < allTimeDailyLimit {
				out.RecentDailyStats = append(out.RecentDailyStats, models.DailyStats{
					Date:       day.Format(dayLayout),
					AppOpens:   opens,
					TotalPlays: plays,
				})
			}

			if err := sumPrefix(txn, stationPrefix(day), stations); err != nil {
				return err
			}
			if err := sumPrefix(txn, countryPrefix(day), countries); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("build overview: %w", err)
	}

	out.TopStations = rank(stations, TopLimit, func(id string, n int64) models.StationPlays {
		return models.StationPlays{StationID: id, PlayCount: n}
	})
	out.TopCountries = rank(countries, TopLimit, func(code string, n int64) models.CountryOpens {
		return models.CountryOpens{CountryCode: code, OpenCount: n}
	})
	return out, nil
}

// TopStations ranks stations by plays over r.
func (s *Store) TopStations(ctx context.Context, r Range, limit int) ([]models.StationPlays, error) {
	if !s.enabled {
		return nil, ErrDisabled
	}
	totals := map[string]int64{}
	err := s.db.View(func(txn *badger.Txn) error {
		for _, day := range s.days(r) {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := sumPrefix(txn, stationPrefix(day), totals); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("rank stations: %w", err)
	}
	return rank(totals, limit, func(id string, n int64) models.StationPlays {
		return models.StationPlays{StationID: id, PlayCount: n}
	}), nil
}

// sumPrefix adds every counter under prefix into totals, keyed by the
// remainder of the key.
func sumPrefix(txn *badger.Txn, prefix []byte, totals map[string]int64) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		item := it.Item()
		name := string(item.Key()[len(prefix):])
		err := item.Value(func(val []byte) error {
			totals[name] += decodeCounter(val)
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// rank orders totals by count descending, then name, and keeps limit.
func rank[T any](totals map[string]int64, limit int, build func(string, int64) T) []T {
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if c := cmp.Compare(totals[b], totals[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}

	out := make([]T, 0, len(names))
	for _, name := range names {
		out = append(out, build(name, totals[name]))
	}
	return out
}
