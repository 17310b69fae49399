// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

// Package models defines the values exchanged between the directory
// client, the station service and the HTTP layer.
//
// JSON field names follow the radio-browser vocabulary so existing
// frontends can consume responses unchanged.
package models

// Station is one broadcastable entry from the upstream directory after
// mapping and location normalization.
//
// Name is never empty. City and State are never redundant with each
// other. Optional upstream fields are nil when absent.
type Station struct {
	StationUUID string   `json:"stationuuid"`
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	URLResolved string   `json:"url_resolved"`
	Homepage    *string  `json:"homepage"`
	Favicon     *string  `json:"favicon"`
	Country     string   `json:"country"`
	CountryCode *string  `json:"countrycode"`
	State       string   `json:"state"`
	City        string   `json:"city"`
	Language    string   `json:"language"`
	Tags        []string `json:"tags"`
	ClickCount  int      `json:"clickcount"`
	Votes       int      `json:"votes"`
	Codec       *string  `json:"codec"`
	Bitrate     *int     `json:"bitrate"`
	ChangeUUID  *string  `json:"changeuuid"`
}

// Category is a named facet (country, language or tag) with the number of
// stations carrying it.
type Category struct {
	Name         string `json:"name"`
	StationCount int    `json:"stationcount"`
}

// SummaryStats holds the directory-wide counts.
type SummaryStats struct {
	Countries int `json:"countries"`
	Languages int `json:"languages"`
	Tags      int `json:"tags"`
	Stations  int `json:"stations"`
}

// IsZero reports whether every count is zero, which is also what the
// directory client returns on failure.
func (s SummaryStats) IsZero() bool {
	return s == SummaryStats{}
}

// GlobalSearchResult joins the four sub-queries of a global search by role.
// Slices are never nil so they encode as [].
type GlobalSearchResult struct {
	Countries []Category `json:"countries"`
	Languages []Category `json:"languages"`
	Tags      []Category `json:"tags"`
	Stations  []Station  `json:"stations"`
}

// EmptyGlobalSearchResult returns a composite with four empty lists.
func EmptyGlobalSearchResult() GlobalSearchResult {
	return GlobalSearchResult{
		Countries: []Category{},
		Languages: []Category{},
		Tags:      []Category{},
		Stations:  []Station{},
	}
}

// FeaturedRegion names a curated region and how many stations it lists.
type FeaturedRegion struct {
	Name    string `json:"name"`
	Entries int    `json:"entries"`
}
