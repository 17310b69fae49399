// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package directory

import (
	"net/url"
	"strconv"
	"strings"
)

// Default page sizes applied when a caller passes a non-positive limit.
const (
	DefaultTopLimit    = 100
	DefaultSearchLimit = 100
	DefaultListLimit   = 24
)

// SearchParams filters a station search. Empty strings mean "no filter".
type SearchParams struct {
	Name        string
	Country     string
	CountryCode string
	Language    string
	Tag         string
	Limit       int
	Offset      int
}

// WithDefaults trims filters and applies the default limit and offset.
func (p SearchParams) WithDefaults() SearchParams {
	p.Name = strings.TrimSpace(p.Name)
	p.Country = strings.TrimSpace(p.Country)
	p.CountryCode = strings.TrimSpace(p.CountryCode)
	p.Language = strings.TrimSpace(p.Language)
	p.Tag = strings.TrimSpace(p.Tag)
	if p.Limit <= 0 {
		p.Limit = DefaultSearchLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// IsBrowse reports whether the search is a category browse: filtered by
// country, country code, language or tag, without a free-text name.
func (p SearchParams) IsBrowse() bool {
	return p.Name == "" && (p.Country != "" || p.CountryCode != "" || p.Language != "" || p.Tag != "")
}

// Values returns every effective parameter. Empty filters are omitted so
// an empty string and an absent filter encode identically.
func (p SearchParams) Values() url.Values {
	p = p.WithDefaults()
	v := url.Values{}
	setNonEmpty(v, "name", p.Name)
	setNonEmpty(v, "country", p.Country)
	setNonEmpty(v, "countrycode", p.CountryCode)
	setNonEmpty(v, "language", p.Language)
	setNonEmpty(v, "tag", p.Tag)
	v.Set("limit", strconv.Itoa(p.Limit))
	v.Set("offset", strconv.Itoa(p.Offset))
	return v
}

// ListParams pages through a category listing, optionally filtered by
// name.
type ListParams struct {
	Name   string
	Limit  int
	Offset int
}

// WithDefaults trims the name and applies the default limit and offset.
func (p ListParams) WithDefaults() ListParams {
	p.Name = strings.TrimSpace(p.Name)
	if p.Limit <= 0 {
		p.Limit = DefaultListLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Values returns every effective parameter.
func (p ListParams) Values() url.Values {
	p = p.WithDefaults()
	v := url.Values{}
	setNonEmpty(v, "name", p.Name)
	v.Set("limit", strconv.Itoa(p.Limit))
	v.Set("offset", strconv.Itoa(p.Offset))
	return v
}

func setNonEmpty(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}
