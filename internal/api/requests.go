// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/radiolite/internal/directory"
	"github.com/tomtom215/radiolite/internal/validation"
)

// TopStationsRequest is GET /stations/top.
type TopStationsRequest struct {
	Limit int `query:"limit" validate:"min=0,max=1000"`
}

// SearchStationsRequest is GET /stations/search.
type SearchStationsRequest struct {
	Name        string `query:"name" validate:"max=200"`
	Country     string `query:"country" validate:"max=100"`
	CountryCode string `query:"countrycode" validate:"omitempty,countrycode"`
	Language    string `query:"language" validate:"max=100"`
	Tag         string `query:"tag" validate:"max=100"`
	Limit       int    `query:"limit" validate:"min=0,max=1000"`
	Offset      int    `query:"offset" validate:"min=0,max=1000000"`
}

// Params converts the request for the station service.
func (r SearchStationsRequest) Params() directory.SearchParams {
	return directory.SearchParams{
		Name:        r.Name,
		Country:     r.Country,
		CountryCode: r.CountryCode,
		Language:    r.Language,
		Tag:         r.Tag,
		Limit:       r.Limit,
		Offset:      r.Offset,
	}
}

// ListRequest is GET /stations/countries, /languages and /tags.
type ListRequest struct {
	Name   string `query:"name" validate:"max=100"`
	Limit  int    `query:"limit" validate:"min=0,max=1000"`
	Offset int    `query:"offset" validate:"min=0,max=1000000"`
}

// Params converts the request for the station service.
func (r ListRequest) Params() directory.ListParams {
	return directory.ListParams{Name: r.Name, Limit: r.Limit, Offset: r.Offset}
}

// GlobalSearchRequest is GET /stations/global-search.
type GlobalSearchRequest struct {
	// Empty and one-rune queries are valid; the service answers them with
	// an empty result.
	Query string `query:"query" validate:"max=200"`
}

// FeaturedRequest is GET /stations/featured/{region}.
type FeaturedRequest struct {
	Region string `query:"region" validate:"required,region"`
}

// TokenRequest is the POST /auth/token form.
type TokenRequest struct {
	Username string `form:"username" validate:"required,max=128"`
	Password string `form:"password" validate:"required,max=256"`
}

// AppOpenRequest is the optional POST /track/app-open body.
type AppOpenRequest struct {
	CountryCode string `json:"country_code" validate:"max=64"`
}

// StationPlayRequest is the POST /track/station-play body.
type StationPlayRequest struct {
	StationID string `json:"station_id" validate:"required,max=128"`
}

// OverviewRequest is GET /admin/overview.
type OverviewRequest struct {
	Range string `query:"range" validate:"omitempty,oneof=1d 7d 30d all"`
}

// AdminStationsRequest is GET /admin/stations.
type AdminStationsRequest struct {
	Range string `query:"range" validate:"omitempty,oneof=1d 7d 30d all"`
	Limit int    `query:"limit" validate:"min=1,max=500"`
}

// AssetRequest is GET /releases/download/{assetID}.
type AssetRequest struct {
	AssetID int64 `query:"asset_id" validate:"gt=0"`
}

// queryInt reads an optional integer parameter; absent means def.
func queryInt(q url.Values, name string, def int) (int, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, notNumeric(name)
	}
	return n, nil
}

func parseInt64(name, raw string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, notNumeric(name)
	}
	return n, nil
}

func notNumeric(name string) *validation.RequestValidationError {
	return &validation.RequestValidationError{Fields: []validation.FieldError{{
		Field:   name,
		Tag:     "numeric",
		Message: fmt.Sprintf("%s must be numeric", name),
	}}}
}

// validate returns a plain error so callers can pass it to respondErr.
func validate(req interface{}) error {
	if verr := validation.ValidateStruct(req); verr != nil {
		return verr
	}
	return nil
}

func parseTopStations(q url.Values) (TopStationsRequest, error) {
	var req TopStationsRequest
	var err error
	if req.Limit, err = queryInt(q, "limit", directory.DefaultTopLimit); err != nil {
		return req, err
	}
	return req, validate(&req)
}

func parseSearchStations(q url.Values) (SearchStationsRequest, error) {
	req := SearchStationsRequest{
		Name:        q.Get("name"),
		Country:     q.Get("country"),
		CountryCode: strings.TrimSpace(q.Get("countrycode")),
		Language:    q.Get("language"),
		Tag:         q.Get("tag"),
	}
	var err error
	if req.Limit, err = queryInt(q, "limit", directory.DefaultSearchLimit); err != nil {
		return req, err
	}
	if req.Offset, err = queryInt(q, "offset", 0); err != nil {
		return req, err
	}
	return req, validate(&req)
}

func parseList(q url.Values) (ListRequest, error) {
	req := ListRequest{Name: q.Get("name")}
	var err error
	if req.Limit, err = queryInt(q, "limit", directory.DefaultListLimit); err != nil {
		return req, err
	}
	if req.Offset, err = queryInt(q, "offset", 0); err != nil {
		return req, err
	}
	return req, validate(&req)
}

func parseAdminStations(q url.Values) (AdminStationsRequest, error) {
	req := AdminStationsRequest{Range: q.Get("range")}
	var err error
	if req.Limit, err = queryInt(q, "limit", 50); err != nil {
		return req, err
	}
	return req, validate(&req)
}
