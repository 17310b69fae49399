// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package analytics

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/radiolite/internal/config"
)

func newTestStore(t *testing.T) (*Store, *time.Time) {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	s := NewStore(db, config.AnalyticsConfig{Enabled: true, RetentionDays: 60})
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	return s, &now
}

func TestResolveCountry(t *testing.T) {
	t.Parallel()
	tests := []struct {
		payload, header, want string
	}{
		{"DE", "FR", "DE"},
		{"Unknown", "FR", "FR"},
		{"  ", "FR", "FR"},
		{"", "", UnknownCountry},
		{"Unknown", "", UnknownCountry},
	}
	for _, tt := range tests {
		if got := ResolveCountry(tt.payload, tt.header); got != tt.want {
			t.Errorf("ResolveCountry(%q, %q) = %q, want %q", tt.payload, tt.header, got, tt.want)
		}
	}
}

func TestParseRange(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]Range{"": Range7Days, "1d": RangeToday, "30d": Range30Days, "all": RangeAllTime} {
		got, err := ParseRange(in)
		if err != nil || got != want {
			t.Errorf("ParseRange(%q) = %q, %v, want %q", in, got, err, want)
		}
	}
	if _, err := ParseRange("1y"); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("ParseRange(1y) error = %v, want ErrInvalidRange", err)
	}
}

func TestStore_Overview(t *testing.T) {
	t.Parallel()
	s, now := newTestStore(t)
	ctx := context.Background()

	record := func(opens map[string]int, plays map[string]int) {
		t.Helper()
		for country, n := range opens {
			for range n {
				if err := s.RecordAppOpen(ctx, country); err != nil {
					t.Fatal(err)
				}
			}
		}
		for station, n := range plays {
			for range n {
				if err := s.RecordPlay(ctx, station); err != nil {
					t.Fatal(err)
				}
			}
		}
	}

	// 10 days ago
	*now = now.AddDate(0, 0, -10)
	record(map[string]int{"US": 5}, map[string]int{"old": 9})
	// 3 days ago
	*now = now.AddDate(0, 0, 7)
	record(map[string]int{"DE": 2}, map[string]int{"a": 1, "b": 2})
	// today
	*now = now.AddDate(0, 0, 3)
	record(map[string]int{"DE": 1, "": 1}, map[string]int{"a": 3})

	today, err := s.Overview(ctx, RangeToday)
	if err != nil {
		t.Fatalf("Overview(1d) error = %v", err)
	}
	if today.TotalAppOpens != 2 || today.TotalPlays != 3 {
		t.Errorf("today totals = %d opens, %d plays", today.TotalAppOpens, today.TotalPlays)
	}
	if len(today.RecentDailyStats) != 1 || today.RecentDailyStats[0].Date != "2026-03-15" {
		t.Errorf("today daily = %+v", today.RecentDailyStats)
	}

	week, err := s.Overview(ctx, Range7Days)
	if err != nil {
		t.Fatal(err)
	}
	if week.TotalAppOpens != 4 || week.TotalPlays != 6 {
		t.Errorf("7d totals = %d opens, %d plays", week.TotalAppOpens, week.TotalPlays)
	}
	if got := week.RecentDailyStats; len(got) != 2 || got[0].Date != "2026-03-15" || got[1].Date != "2026-03-12" {
		t.Errorf("7d daily = %+v, want newest first", got)
	}
	if got := week.TopStations; len(got) != 2 || got[0].StationID != "a" || got[0].PlayCount != 4 {
		t.Errorf("7d top stations = %+v", got)
	}
	if got := week.TopCountries; len(got) != 2 || got[0].CountryCode != "DE" || got[0].OpenCount != 3 || got[1].CountryCode != UnknownCountry {
		t.Errorf("7d top countries = %+v", got)
	}

	all, err := s.Overview(ctx, RangeAllTime)
	if err != nil {
		t.Fatal(err)
	}
	if all.TotalPlays != 15 || all.TopStations[0].StationID != "old" {
		t.Errorf("all = %+v", all)
	}
}

func TestStore_OverviewEmpty(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t)

	o, err := s.Overview(context.Background(), Range30Days)
	if err != nil {
		t.Fatal(err)
	}
	if o.RecentDailyStats == nil || o.TopStations == nil || o.TopCountries == nil {
		t.Errorf("expected empty non-nil lists: %+v", o)
	}
}

func TestStore_TopStationsLimit(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t)
	ctx := context.Background()

	for i := range 5 {
		for range i + 1 {
			if err := s.RecordPlay(ctx, fmt.Sprintf("s%d", i)); err != nil {
				t.Fatal(err)
			}
		}
	}
	got, err := s.TopStations(ctx, RangeAllTime, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0].StationID != "s4" || got[2].StationID != "s2" {
		t.Errorf("TopStations() = %+v", got)
	}
}

func TestStore_ConcurrentIncrements(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t)
	ctx := context.Background()

	const workers, each = 8, 25
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range each {
				if err := s.RecordPlay(ctx, "hot"); err != nil && !errors.Is(err, badger.ErrConflict) {
					t.Error(err)
				}
			}
		}()
	}
	wg.Wait()

	o, err := s.Overview(ctx, RangeToday)
	if err != nil {
		t.Fatal(err)
	}
	// Retries absorb most conflicts; a counter is never over-counted.
	if o.TotalPlays > workers*each || o.TotalPlays < workers*each/2 {
		t.Errorf("TotalPlays = %d, want close to %d", o.TotalPlays, workers*each)
	}
}

func TestStore_Disabled(t *testing.T) {
	t.Parallel()
	s := NewStore(nil, config.AnalyticsConfig{Enabled: true})

	if s.Enabled() {
		t.Error("store without a database must be disabled")
	}
	if err := s.RecordPlay(context.Background(), "x"); err != nil {
		t.Errorf("RecordPlay() on disabled store = %v", err)
	}
	if _, err := s.Overview(context.Background(), Range7Days); !errors.Is(err, ErrDisabled) {
		t.Errorf("Overview() error = %v, want ErrDisabled", err)
	}
}

func TestCounterEncoding(t *testing.T) {
	t.Parallel()
	if got := decodeCounter(encodeCounter(123456789)); got != 123456789 {
		t.Errorf("decode(encode) = %d", got)
	}
	if got := decodeCounter([]byte{1, 2}); got != 0 {
		t.Errorf("short value decoded to %d", got)
	}
}
