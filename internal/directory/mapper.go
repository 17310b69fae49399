// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package directory

import (
	"strings"
	"unicode"

	"github.com/tomtom215/radiolite/internal/location"
	"github.com/tomtom215/radiolite/internal/models"
)

// RawStation is one station record as the directory returns it.
type RawStation struct {
	StationUUID FlexString `json:"stationuuid"`
	ChangeUUID  FlexString `json:"changeuuid"`
	Name        FlexString `json:"name"`
	URL         FlexString `json:"url"`
	URLResolved FlexString `json:"url_resolved"`
	Homepage    FlexString `json:"homepage"`
	Favicon     FlexString `json:"favicon"`
	Tags        FlexString `json:"tags"`
	Country     FlexString `json:"country"`
	CountryCode FlexString `json:"countrycode"`
	State       FlexString `json:"state"`
	City        FlexString `json:"city"`
	Language    FlexString `json:"language"`
	Codec       FlexString `json:"codec"`
	Bitrate     FlexInt    `json:"bitrate"`
	ClickCount  FlexInt    `json:"clickcount"`
	Votes       FlexInt    `json:"votes"`
}

// RawCategory is one country, language or tag record.
type RawCategory struct {
	Name         FlexString `json:"name"`
	StationCount FlexInt    `json:"stationcount"`
}

// rawStats is the /stats payload. Only the four counts are surfaced.
type rawStats struct {
	Stations  FlexInt `json:"stations"`
	Countries FlexInt `json:"countries"`
	Languages FlexInt `json:"languages"`
	Tags      FlexInt `json:"tags"`
}

const nameNoise = "@*#$%()=!_-."

// SanitizeName strips decoration such as "@@", "!!" and padding from both
// ends of a station name. A name made only of noise is returned unchanged
// so a non-empty input never maps to "".
func SanitizeName(raw string) string {
	cleaned := strings.TrimFunc(raw, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(nameNoise, r)
	})
	if cleaned == "" {
		return raw
	}
	return cleaned
}

// ParseTags splits a comma-separated tag string. Order and duplicates are
// kept; the result is never nil.
func ParseTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// MapStation converts a raw record into a Station with a cleaned name and
// a normalized location.
func MapStation(raw RawStation) models.Station {
	place := location.Normalize(raw.City.Value, raw.State.Value, raw.Country.Value)

	resolved := raw.URLResolved.Value
	if resolved == "" {
		resolved = raw.URL.Value
	}

	return models.Station{
		StationUUID: raw.StationUUID.Value,
		Name:        SanitizeName(raw.Name.Value),
		URL:         raw.URL.Value,
		URLResolved: resolved,
		Homepage:    raw.Homepage.Ptr(),
		Favicon:     raw.Favicon.Ptr(),
		Country:     place.Country,
		CountryCode: raw.CountryCode.Ptr(),
		State:       place.State,
		City:        place.City,
		Language:    raw.Language.Value,
		Tags:        ParseTags(raw.Tags.Value),
		ClickCount:  raw.ClickCount.Value,
		Votes:       raw.Votes.Value,
		Codec:       raw.Codec.Ptr(),
		Bitrate:     raw.Bitrate.Ptr(),
		ChangeUUID:  raw.ChangeUUID.Ptr(),
	}
}

// MapCategory passes name and count through unchanged.
func MapCategory(raw RawCategory) models.Category {
	return models.Category{
		Name:         raw.Name.Value,
		StationCount: raw.StationCount.Value,
	}
}
