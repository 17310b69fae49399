// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package stations

import (
	"testing"

	"github.com/tomtom215/radiolite/internal/directory"
)

func searchKey(p directory.SearchParams) string {
	return cacheKey(opSearch, p.Values())
}

func TestCacheKey_SameEffectiveParams(t *testing.T) {
	t.Parallel()

	pairs := []struct {
		name string
		a, b directory.SearchParams
	}{
		{"defaults explicit", directory.SearchParams{Tag: "jazz"}, directory.SearchParams{Tag: "jazz", Limit: 100, Offset: 0}},
		{"negative offset", directory.SearchParams{Tag: "jazz", Offset: -1}, directory.SearchParams{Tag: "jazz"}},
		{"surrounding space", directory.SearchParams{Country: " France "}, directory.SearchParams{Country: "France"}},
		{"empty filter", directory.SearchParams{Country: "France", Language: ""}, directory.SearchParams{Country: "France"}},
	}
	for _, tt := range pairs {
		if ka, kb := searchKey(tt.a), searchKey(tt.b); ka != kb {
			t.Errorf("%s: %q != %q", tt.name, ka, kb)
		}
	}
}

func TestCacheKey_DistinctParams(t *testing.T) {
	t.Parallel()

	base := directory.SearchParams{Name: "n", Country: "c", CountryCode: "cc", Language: "l", Tag: "t", Limit: 10, Offset: 5}
	variants := []directory.SearchParams{base}
	for i := 0; i < 7; i++ {
		v := base
		switch i {
		case 0:
			v.Name = "x"
		case 1:
			v.Country = "x"
		case 2:
			v.CountryCode = "x"
		case 3:
			v.Language = "x"
		case 4:
			v.Tag = "x"
		case 5:
			v.Limit = 11
		case 6:
			v.Offset = 6
		}
		variants = append(variants, v)
	}
	// Values that could be confused if keys were naively concatenated.
	variants = append(variants,
		directory.SearchParams{Country: "a&tag=b"},
		directory.SearchParams{Country: "a", Tag: "b"},
	)

	seen := make(map[string]int)
	for i, v := range variants {
		k := searchKey(v)
		if j, dup := seen[k]; dup {
			t.Errorf("variants %d and %d collide on %q", j, i, k)
		}
		seen[k] = i
	}
}

func TestCacheKey_OperationsDoNotCollide(t *testing.T) {
	t.Parallel()

	p := directory.ListParams{Name: "jazz"}
	keys := []string{
		cacheKey(opCountries, p.Values()),
		cacheKey(opLanguages, p.Values()),
		cacheKey(opTags, p.Values()),
		cacheKey(opStats, nil),
		topStationsKey(24),
		featuredKey("jazz"),
	}
	seen := make(map[string]bool)
	for _, k := range keys {
		if seen[k] {
			t.Errorf("duplicate key %q", k)
		}
		seen[k] = true
	}

	if got := cacheKey(opTags, p.Values()); got != "v1:tags?limit=24&name=jazz&offset=0" {
		t.Errorf("tags key = %q", got)
	}
	if got := featuredKey("North America"); got != "v1:featured?region=north_america" {
		t.Errorf("featured key = %q", got)
	}
}
