// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package stations

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/tomtom215/radiolite/internal/models"
)

//go:embed featured.yaml
var featuredYAML []byte

// FeaturedEntry is one curated station, resolved against the directory by
// name within a country.
type FeaturedEntry struct {
	Name        string `yaml:"name"`
	CountryCode string `yaml:"countrycode"`
}

type featuredRegion struct {
	Name     string          `yaml:"name"`
	Stations []FeaturedEntry `yaml:"stations"`
}

// Catalog holds the curated featured regions in display order.
type Catalog struct {
	regions []featuredRegion
	byKey   map[string]int
}

// ParseCatalog decodes a catalog document:
//
//	regions:
//	  - name: Europe
//	    stations:
//	      - {name: "BBC Radio 1", countrycode: "GB"}
func ParseCatalog(data []byte) (*Catalog, error) {
	var doc struct {
		Regions []featuredRegion `yaml:"regions"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse featured catalog: %w", err)
	}

	c := &Catalog{byKey: make(map[string]int, len(doc.Regions))}
	for _, r := range doc.Regions {
		r.Name = strings.TrimSpace(r.Name)
		if r.Name == "" {
			return nil, fmt.Errorf("parse featured catalog: region without a name")
		}
		key := RegionKey(r.Name)
		if _, dup := c.byKey[key]; dup {
			return nil, fmt.Errorf("parse featured catalog: duplicate region %q", r.Name)
		}
		c.byKey[key] = len(c.regions)
		c.regions = append(c.regions, r)
	}
	return c, nil
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return ParseCatalog(featuredYAML)
})

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() (*Catalog, error) {
	return defaultCatalog()
}

// RegionKey folds a region name for lookups and cache keys:
// "North America" and "north_america" both become "north_america".
func RegionKey(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.ReplaceAll(name, "_", " "))), "_")
}

// Lookup finds a region case-insensitively.
func (c *Catalog) Lookup(region string) (name string, entries []FeaturedEntry, ok bool) {
	if c == nil {
		return "", nil, false
	}
	i, ok := c.byKey[RegionKey(region)]
	if !ok {
		return "", nil, false
	}
	r := c.regions[i]
	return r.Name, r.Stations, true
}

// Regions lists region names with their curated entry counts.
func (c *Catalog) Regions() []models.FeaturedRegion {
	if c == nil {
		return []models.FeaturedRegion{}
	}
	out := make([]models.FeaturedRegion, 0, len(c.regions))
	for _, r := range c.regions {
		out = append(out, models.FeaturedRegion{Name: r.Name, Entries: len(r.Stations)})
	}
	return out
}
