// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package stations

import (
	"context"
	"testing"

	"github.com/tomtom215/radiolite/internal/directory"
	"github.com/tomtom215/radiolite/internal/models"
)

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	c, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog() error = %v", err)
	}

	regions := c.Regions()
	if len(regions) != 7 {
		t.Fatalf("regions = %d, want 7", len(regions))
	}
	if regions[0].Name != "Asia" {
		t.Errorf("first region = %q, want Asia", regions[0].Name)
	}

	for _, r := range regions {
		name, entries, ok := c.Lookup(r.Name)
		if !ok || name != r.Name || len(entries) != r.Entries || r.Entries == 0 {
			t.Errorf("Lookup(%q) = %q, %d entries, %v", r.Name, name, len(entries), ok)
		}
		for _, e := range entries {
			if e.Name == "" || len(e.CountryCode) != 2 {
				t.Errorf("%s: bad entry %+v", r.Name, e)
			}
		}
	}
}

func TestRegionKey(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"North America":    "north_america",
		"north_america":    "north_america",
		"  NORTH  AMERICA": "north_america",
		"Asia":             "asia",
		"Arab World":       "arab_world",
	}
	for in, want := range tests {
		if got := RegionKey(in); got != want {
			t.Errorf("RegionKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseCatalog_Errors(t *testing.T) {
	t.Parallel()

	bad := map[string]string{
		"syntax":       "regions: [",
		"unnamed":      "regions:\n  - stations: []\n",
		"duplicate":    "regions:\n  - name: Asia\n  - name: asia\n",
		"wrong shapes": "regions: 5\n",
	}
	for name, doc := range bad {
		if _, err := ParseCatalog([]byte(doc)); err == nil {
			t.Errorf("%s: ParseCatalog() error = nil", name)
		}
	}
}

const testCatalog = `
regions:
  - name: Test Region
    stations:
      - {name: "Jazz FM", countrycode: "GB"}
      - {name: "Missing Station", countrycode: "US"}
      - {name: "FIP", countrycode: "FR"}
      - {name: "Jazz", countrycode: "GB"}
  - name: Empty
    stations: []
`

func TestService_Featured(t *testing.T) {
	t.Parallel()

	catalog, err := ParseCatalog([]byte(testCatalog))
	if err != nil {
		t.Fatalf("ParseCatalog() error = %v", err)
	}
	dir := sampleDirectory()
	svc, store := newTestService(t, dir, catalog)
	ctx := context.Background()

	got := svc.Featured(ctx, "test_region")
	var ids []string
	for _, s := range got {
		ids = append(ids, s.StationUUID)
	}
	// "Jazz" in GB resolves to the same station as "Jazz FM" and is folded.
	if len(ids) != 2 || ids[0] != "s1" || ids[1] != "s2" {
		t.Errorf("Featured() ids = %v, want [s1 s2]", ids)
	}
	if n := dir.Calls(directory.OpSearchStations); n != 4 {
		t.Errorf("lookups = %d, want one per curated entry", n)
	}
	for _, p := range dir.Searches() {
		if p.Limit != 1 || p.CountryCode == "" {
			t.Errorf("lookup params = %+v", p)
		}
	}
	if ttl, _ := store.ttl(featuredKey("Test Region")); ttl != testHotTTL {
		t.Errorf("featured ttl = %v, want hot", ttl)
	}

	again := svc.Featured(ctx, "TEST REGION")
	if len(again) != 2 || dir.Calls(directory.OpSearchStations) != 4 {
		t.Errorf("second lookup was not served from cache")
	}
}

func TestService_FeaturedUnknownOrEmpty(t *testing.T) {
	t.Parallel()

	catalog, err := ParseCatalog([]byte(testCatalog))
	if err != nil {
		t.Fatalf("ParseCatalog() error = %v", err)
	}
	dir := sampleDirectory()
	svc, _ := newTestService(t, dir, catalog)

	for _, region := range []string{"atlantis", "empty", ""} {
		got := svc.Featured(context.Background(), region)
		if got == nil || len(got) != 0 {
			t.Errorf("Featured(%q) = %#v, want []", region, got)
		}
	}
	if dir.TotalCalls() != 0 {
		t.Errorf("upstream calls = %d, want 0", dir.TotalCalls())
	}

	nilCatalog, _ := newTestService(t, dir, nil)
	if got := nilCatalog.Regions(); got == nil || len(got) != 0 {
		t.Errorf("Regions() without catalog = %#v", got)
	}
	if got := nilCatalog.Featured(context.Background(), "asia"); len(got) != 0 {
		t.Errorf("Featured() without catalog = %+v", got)
	}
}

func TestService_FeaturedNothingResolvedNotCached(t *testing.T) {
	t.Parallel()

	catalog, err := ParseCatalog([]byte(testCatalog))
	if err != nil {
		t.Fatalf("ParseCatalog() error = %v", err)
	}
	dir := directory.NewMemory()
	dir.StationData = []models.Station{}
	svc, store := newTestService(t, dir, catalog)

	if got := svc.Featured(context.Background(), "Test Region"); len(got) != 0 {
		t.Errorf("Featured() = %+v", got)
	}
	if store.writes() != 0 {
		t.Error("empty featured list was cached")
	}
}
