// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package stations

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/radiolite/internal/cache"
	"github.com/tomtom215/radiolite/internal/directory"
	"github.com/tomtom215/radiolite/internal/models"
)

const (
	testHotTTL  = time.Hour
	testLongTTL = 48 * time.Hour
)

// recordingStore remembers the ttl of every write.
type recordingStore struct {
	*cache.MemoryStore

	mu   sync.Mutex
	ttls map[string]time.Duration
	err  error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{MemoryStore: cache.NewMemoryStore(1000), ttls: make(map[string]time.Duration)}
}

func (r *recordingStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	r.mu.Lock()
	r.ttls[key] = ttl
	r.mu.Unlock()
	r.MemoryStore.Set(ctx, key, value, ttl)
}

func (r *recordingStore) Clear(ctx context.Context) error {
	if r.err != nil {
		return r.err
	}
	return r.MemoryStore.Clear(ctx)
}

func (r *recordingStore) ttl(key string) (time.Duration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.ttls[key]
	return d, ok
}

func (r *recordingStore) writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ttls)
}

func strPtr(s string) *string { return &s }

func sampleDirectory() *directory.Memory {
	m := directory.NewMemory()
	m.StationData = []models.Station{
		{StationUUID: "s1", Name: "Jazz FM", Country: "United Kingdom", CountryCode: strPtr("GB"), Language: "english", Tags: []string{"jazz"}},
		{StationUUID: "s2", Name: "FIP", Country: "France", CountryCode: strPtr("FR"), Language: "french", Tags: []string{"jazz", "eclectic"}},
		{StationUUID: "s3", Name: "Radio Swiss Jazz", Country: "Switzerland", CountryCode: strPtr("CH"), Language: "german", Tags: []string{"jazz"}},
		{StationUUID: "s4", Name: "BBC Radio 1", Country: "United Kingdom", CountryCode: strPtr("GB"), Language: "english", Tags: []string{"pop"}},
	}
	m.CountryData = []models.Category{{Name: "France", StationCount: 900}, {Name: "French Guiana", StationCount: 3}, {Name: "Germany", StationCount: 3000}}
	m.LanguageData = []models.Category{{Name: "french", StationCount: 1200}, {Name: "english", StationCount: 9000}}
	m.TagData = []models.Category{{Name: "jazz", StationCount: 2000}, {Name: "acid jazz", StationCount: 40}}
	m.Stats = models.SummaryStats{Countries: 3, Languages: 2, Tags: 2, Stations: 4}
	return m
}

func newTestService(t *testing.T, dir directory.Directory, catalog *Catalog) (*Service, *recordingStore) {
	t.Helper()
	store := newRecordingStore()
	svc := NewService(dir, store, catalog, Config{HotTTL: testHotTTL, LongTTL: testLongTTL, FeaturedConcurrency: 2})
	return svc, store
}

func TestService_CountriesCachedWithinTTL(t *testing.T) {
	t.Parallel()

	dir := sampleDirectory()
	svc, _ := newTestService(t, dir, nil)
	ctx := context.Background()

	first := svc.Countries(ctx, directory.ListParams{Limit: 10, Name: "franc"})
	second := svc.Countries(ctx, directory.ListParams{Limit: 10, Name: "franc"})

	if n := dir.Calls(directory.OpCountries); n != 1 {
		t.Errorf("upstream calls = %d, want 1", n)
	}
	if len(first) != 1 || len(second) != 1 || second[0].Name != "France" {
		t.Errorf("results = %+v / %+v", first, second)
	}
}

func TestService_NameSearchNeverCached(t *testing.T) {
	t.Parallel()

	dir := sampleDirectory()
	svc, store := newTestService(t, dir, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if got := svc.SearchStations(ctx, directory.SearchParams{Name: "jazz", Country: "Switzerland"}); len(got) != 1 {
			t.Fatalf("search %d = %+v", i, got)
		}
	}
	if n := dir.Calls(directory.OpSearchStations); n != 3 {
		t.Errorf("upstream calls = %d, want 3", n)
	}
	if store.writes() != 0 {
		t.Errorf("name search wrote %d cache entries", store.writes())
	}
}

func TestService_BrowseCachedWithLongTTL(t *testing.T) {
	t.Parallel()

	dir := sampleDirectory()
	svc, store := newTestService(t, dir, nil)
	ctx := context.Background()

	p := directory.SearchParams{Tag: "jazz"}
	svc.SearchStations(ctx, p)
	got := svc.SearchStations(ctx, directory.SearchParams{Tag: "jazz", Limit: 100, Offset: 0})

	if n := dir.Calls(directory.OpSearchStations); n != 1 {
		t.Errorf("upstream calls = %d, want 1", n)
	}
	if len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}
	if ttl, ok := store.ttl(cacheKey(opSearch, p.Values())); !ok || ttl != testLongTTL {
		t.Errorf("browse ttl = %v (written=%v), want %v", ttl, ok, testLongTTL)
	}
}

func TestService_EmptyBrowseNotCached(t *testing.T) {
	t.Parallel()

	dir := sampleDirectory()
	svc, store := newTestService(t, dir, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		got := svc.SearchStations(ctx, directory.SearchParams{Country: "Atlantis"})
		if got == nil || len(got) != 0 {
			t.Fatalf("search = %#v, want empty slice", got)
		}
	}
	if n := dir.Calls(directory.OpSearchStations); n != 2 {
		t.Errorf("upstream calls = %d, want 2", n)
	}
	if store.writes() != 0 {
		t.Errorf("empty result was cached")
	}
}

func TestService_TopStationsHotTTL(t *testing.T) {
	t.Parallel()

	dir := sampleDirectory()
	svc, store := newTestService(t, dir, nil)
	ctx := context.Background()

	if got := svc.TopStations(ctx, 2); len(got) != 2 {
		t.Fatalf("TopStations(2) = %d stations", len(got))
	}
	svc.TopStations(ctx, 2)
	svc.TopStations(ctx, 0)
	svc.TopStations(ctx, 100)

	if n := dir.Calls(directory.OpTopStations); n != 2 {
		t.Errorf("upstream calls = %d, want 2 (limit 2, then default 100 shared with explicit 100)", n)
	}
	if ttl, _ := store.ttl(topStationsKey(2)); ttl != testHotTTL {
		t.Errorf("top ttl = %v, want %v", ttl, testHotTTL)
	}
}

func TestService_UpstreamOutageDegradesToEmpty(t *testing.T) {
	t.Parallel()

	dir := sampleDirectory()
	dir.Down = true
	svc, store := newTestService(t, dir, nil)
	ctx := context.Background()

	if got := svc.TopStations(ctx, 50); got == nil || len(got) != 0 {
		t.Errorf("TopStations() = %#v, want []", got)
	}
	if got := svc.Tags(ctx, directory.ListParams{}); got == nil || len(got) != 0 {
		t.Errorf("Tags() = %#v, want []", got)
	}
	if got := svc.SummaryStats(ctx); !got.IsZero() {
		t.Errorf("SummaryStats() = %+v, want zero", got)
	}
	if store.writes() != 0 {
		t.Errorf("outage results were cached (%d writes)", store.writes())
	}

	dir.Down = false
	if got := svc.TopStations(ctx, 50); len(got) == 0 {
		t.Error("recovered upstream still served empty result")
	}
}

func TestService_UpstreamTimeout(t *testing.T) {
	t.Parallel()

	dir := sampleDirectory()
	dir.Delay = time.Second
	svc, _ := newTestService(t, dir, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if got := svc.TopStations(ctx, 50); got == nil || len(got) != 0 {
		t.Errorf("TopStations() = %#v, want []", got)
	}
}

func TestService_SummaryStats(t *testing.T) {
	t.Parallel()

	dir := sampleDirectory()
	svc, store := newTestService(t, dir, nil)
	ctx := context.Background()

	first := svc.SummaryStats(ctx)
	second := svc.SummaryStats(ctx)
	if first != dir.Stats || second != dir.Stats {
		t.Errorf("stats = %+v / %+v", first, second)
	}
	if n := dir.Calls(directory.OpSummaryStats); n != 1 {
		t.Errorf("upstream calls = %d, want 1", n)
	}
	if ttl, _ := store.ttl(cacheKey(opStats, nil)); ttl != testHotTTL {
		t.Errorf("stats ttl = %v, want hot", ttl)
	}
}

func TestService_SearchGlobalShortQuery(t *testing.T) {
	t.Parallel()

	for _, q := range []string{"", "a", "  a  ", "é", "   "} {
		dir := sampleDirectory()
		svc, _ := newTestService(t, dir, nil)

		got := svc.SearchGlobal(context.Background(), q)
		if dir.TotalCalls() != 0 {
			t.Errorf("SearchGlobal(%q) made %d upstream calls", q, dir.TotalCalls())
		}
		if got.Countries == nil || got.Languages == nil || got.Tags == nil || got.Stations == nil {
			t.Errorf("SearchGlobal(%q) has nil lists: %+v", q, got)
		}
		if len(got.Countries)+len(got.Languages)+len(got.Tags)+len(got.Stations) != 0 {
			t.Errorf("SearchGlobal(%q) = %+v, want empty", q, got)
		}
	}
}

func TestService_SearchGlobal(t *testing.T) {
	t.Parallel()

	dir := sampleDirectory()
	svc, _ := newTestService(t, dir, nil)
	ctx := context.Background()

	got := svc.SearchGlobal(ctx, " fr ")
	if len(got.Countries) != 2 || len(got.Languages) != 1 || len(got.Stations) != 0 {
		t.Errorf("SearchGlobal(fr) = %+v", got)
	}

	got = svc.SearchGlobal(ctx, "jazz")
	if len(got.Tags) != 2 || len(got.Stations) != 2 || len(got.Countries) != 0 {
		t.Errorf("SearchGlobal(jazz) = %+v", got)
	}
	for _, p := range dir.Searches() {
		if p.Limit != globalStationLimit {
			t.Errorf("station sub-query limit = %d, want %d", p.Limit, globalStationLimit)
		}
	}

	for _, op := range []string{directory.OpCountries, directory.OpLanguages, directory.OpTags, directory.OpSearchStations} {
		if n := dir.Calls(op); n != 2 {
			t.Errorf("%s calls = %d, want 2", op, n)
		}
	}

	// Category sub-queries go through the cached listings; station search
	// by name does not.
	svc.SearchGlobal(ctx, "jazz")
	if n := dir.Calls(directory.OpTags); n != 2 {
		t.Errorf("tags calls after repeat = %d, want 2", n)
	}
	if n := dir.Calls(directory.OpSearchStations); n != 3 {
		t.Errorf("station calls after repeat = %d, want 3", n)
	}
}

func TestService_FlushCache(t *testing.T) {
	t.Parallel()

	dir := sampleDirectory()
	svc, _ := newTestService(t, dir, nil)
	ctx := context.Background()

	svc.Languages(ctx, directory.ListParams{})
	if err := svc.FlushCache(ctx); err != nil {
		t.Fatalf("FlushCache() error = %v", err)
	}
	svc.Languages(ctx, directory.ListParams{})

	if n := dir.Calls(directory.OpLanguages); n != 2 {
		t.Errorf("calls = %d, want 2 after flush", n)
	}
}

func TestService_FlushCacheError(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t, sampleDirectory(), nil)
	store.err = errors.New("disk full")
	if err := svc.FlushCache(context.Background()); err == nil {
		t.Error("FlushCache() error = nil, want store error")
	}
}

func TestService_UndecodableEntryIsMiss(t *testing.T) {
	t.Parallel()

	dir := sampleDirectory()
	svc, store := newTestService(t, dir, nil)
	ctx := context.Background()

	store.MemoryStore.Set(ctx, topStationsKey(1), []byte("{not json"), time.Hour)
	if got := svc.TopStations(ctx, 1); len(got) != 1 {
		t.Errorf("TopStations() = %+v", got)
	}
	if n := dir.Calls(directory.OpTopStations); n != 1 {
		t.Errorf("calls = %d, want 1", n)
	}
}

func TestService_CacheStats(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, sampleDirectory(), nil)
	svc.TopStations(context.Background(), 1)
	st, ok := svc.CacheStats()
	if !ok || st.Misses != 1 || st.Writes != 1 {
		t.Errorf("CacheStats() = %+v, %v", st, ok)
	}
}
