// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package models

// DailyStats aggregates one calendar day (UTC) of usage.
type DailyStats struct {
	Date       string `json:"date"` // YYYY-MM-DD
	AppOpens   int64  `json:"app_opens"`
	TotalPlays int64  `json:"total_plays"`
}

// StationPlays is a per-station play total over a report window.
type StationPlays struct {
	StationID string `json:"station_id"`
	PlayCount int64  `json:"play_count"`
}

// CountryOpens is a per-country app-open total over a report window.
type CountryOpens struct {
	CountryCode string `json:"country_code"`
	OpenCount   int64  `json:"open_count"`
}

// AnalyticsOverview is the admin dashboard payload.
type AnalyticsOverview struct {
	Range            string         `json:"range"`
	TotalAppOpens    int64          `json:"total_app_opens"`
	TotalPlays       int64          `json:"total_plays"`
	RecentDailyStats []DailyStats   `json:"recent_daily_stats"`
	TopStations      []StationPlays `json:"top_stations"`
	TopCountries     []CountryOpens `json:"top_countries"`
}
