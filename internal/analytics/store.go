// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

// Package analytics keeps per-day usage counters in BadgerDB.
//
// Every counter is an 8-byte big-endian integer stored with a TTL of the
// retention period, so old days expire without a cleanup job. Keys live
// under the "analytics:" prefix and share the database with the station
// cache:
//
//	analytics:day:2026-01-31:opens
//	analytics:day:2026-01-31:plays
//	analytics:station:2026-01-31:<station uuid>
//	analytics:country:2026-01-31:<country code>
package analytics

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/radiolite/internal/config"
	"github.com/tomtom215/radiolite/internal/logging"
	"github.com/tomtom215/radiolite/internal/metrics"
)

const (
	keyPrefix = "analytics:"
	dayLayout = "2006-01-02"

	// UnknownCountry is recorded when no country can be resolved.
	UnknownCountry = "Unknown"

	maxConflictRetries = 5
)

// ErrDisabled is returned by Overview when analytics is switched off.
var ErrDisabled = errors.New("analytics disabled")

// Store records and reports usage counters.
type Store struct {
	db        *badger.DB
	enabled   bool
	retention int
	now       func() time.Time
}

// NewStore creates a store over a shared badger database.
func NewStore(db *badger.DB, cfg config.AnalyticsConfig) *Store {
	retention := cfg.RetentionDays
	if retention <= 0 {
		retention = 400
	}
	return &Store{
		db:        db,
		enabled:   cfg.Enabled && db != nil,
		retention: retention,
		now:       time.Now,
	}
}

// Enabled reports whether events are recorded.
func (s *Store) Enabled() bool {
	return s.enabled
}

// ResolveCountry picks the country for an app-open event: the client's
// own value unless blank or "Unknown", then the CF-IPCountry header.
func ResolveCountry(payload, header string) string {
	if p := strings.TrimSpace(payload); p != "" && p != UnknownCountry {
		return p
	}
	if h := strings.TrimSpace(header); h != "" {
		return h
	}
	return UnknownCountry
}

// RecordAppOpen counts one app start for today and country.
func (s *Store) RecordAppOpen(ctx context.Context, country string) error {
	if !s.enabled {
		return nil
	}
	if country == "" {
		country = UnknownCountry
	}
	day := s.today()
	err := s.increment(ctx, dayKey(day, "opens"), countryKey(day, country))
	if err != nil {
		return fmt.Errorf("record app open: %w", err)
	}
	metrics.AnalyticsEvents.WithLabelValues("app_open").Inc()
	return nil
}

// RecordPlay counts one station play for today.
func (s *Store) RecordPlay(ctx context.Context, stationID string) error {
	if !s.enabled {
		return nil
	}
	day := s.today()
	err := s.increment(ctx, dayKey(day, "plays"), stationKey(day, stationID))
	if err != nil {
		return fmt.Errorf("record play: %w", err)
	}
	metrics.AnalyticsEvents.WithLabelValues("station_play").Inc()
	return nil
}

// increment adds one to every key in a single transaction, retrying when
// a concurrent writer touched the same keys.
func (s *Store) increment(ctx context.Context, keys ...[]byte) error {
	ttl := time.Duration(s.retention) * 24 * time.Hour

	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err = s.db.Update(func(txn *badger.Txn) error {
			for _, key := range keys {
				n, err := readCounter(txn, key)
				if err != nil {
					return err
				}
				if err := txn.SetEntry(badger.NewEntry(key, encodeCounter(n+1)).WithTTL(ttl)); err != nil {
					return err
				}
			}
			return nil
		})
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		logging.Ctx(ctx).Debug().Int("attempt", attempt+1).Msg("Analytics write conflict, retrying")
	}
	return err
}

func (s *Store) today() time.Time {
	return truncateDay(s.now())
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayKey(day time.Time, field string) []byte {
	return []byte(keyPrefix + "day:" + day.Format(dayLayout) + ":" + field)
}

func stationPrefix(day time.Time) []byte {
	return []byte(keyPrefix + "station:" + day.Format(dayLayout) + ":")
}

func stationKey(day time.Time, id string) []byte {
	return append(stationPrefix(day), id...)
}

func countryPrefix(day time.Time) []byte {
	return []byte(keyPrefix + "country:" + day.Format(dayLayout) + ":")
}

func countryKey(day time.Time, code string) []byte {
	return append(countryPrefix(day), code...)
}

func readCounter(txn *badger.Txn, key []byte) (int64, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var n int64
	err = item.Value(func(val []byte) error {
		n = decodeCounter(val)
		return nil
	})
	return n, err
}

func encodeCounter(n int64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(n))
	return buf
}

func decodeCounter(b []byte) int64 {
	if len(b) != 8 {
		return 0
	}
	return int64(binary.BigEndian.Uint64(b))
}
