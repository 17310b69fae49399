// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package stations

import (
	"net/url"
	"strconv"
)

// keyVersion prefixes every key. Bump it when the cached encoding changes.
const keyVersion = "v1"

// Operation names used in cache keys and metrics.
const (
	opTopStations = "top_stations"
	opSearch      = "search_stations"
	opCountries   = "countries"
	opLanguages   = "languages"
	opTags        = "tags"
	opStats       = "summary_stats"
	opFeatured    = "featured"
)

// cacheKey encodes an operation and its effective parameters. url.Values
// sorts by name and escapes values, so equal parameter sets always produce
// the same key and a value can never spill into another parameter.
func cacheKey(op string, params url.Values) string {
	if len(params) == 0 {
		return keyVersion + ":" + op
	}
	return keyVersion + ":" + op + "?" + params.Encode()
}

func topStationsKey(limit int) string {
	return cacheKey(opTopStations, url.Values{"limit": {strconv.Itoa(limit)}})
}

func featuredKey(region string) string {
	return cacheKey(opFeatured, url.Values{"region": {RegionKey(region)}})
}
