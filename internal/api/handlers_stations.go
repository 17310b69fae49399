// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// StationStats handles GET /stations/stats.
func (h *Handler) StationStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.stations.SummaryStats(r.Context()))
}

// TopStations handles GET /stations/top.
func (h *Handler) TopStations(w http.ResponseWriter, r *http.Request) {
	req, err := parseTopStations(r.URL.Query())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, h.stations.TopStations(r.Context(), req.Limit))
}

// SearchStations handles GET /stations/search.
func (h *Handler) SearchStations(w http.ResponseWriter, r *http.Request) {
	req, err := parseSearchStations(r.URL.Query())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, h.stations.SearchStations(r.Context(), req.Params()))
}

// Countries handles GET /stations/countries.
func (h *Handler) Countries(w http.ResponseWriter, r *http.Request) {
	req, err := parseList(r.URL.Query())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, h.stations.Countries(r.Context(), req.Params()))
}

// Languages handles GET /stations/languages.
func (h *Handler) Languages(w http.ResponseWriter, r *http.Request) {
	req, err := parseList(r.URL.Query())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, h.stations.Languages(r.Context(), req.Params()))
}

// Tags handles GET /stations/tags.
func (h *Handler) Tags(w http.ResponseWriter, r *http.Request) {
	req, err := parseList(r.URL.Query())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, h.stations.Tags(r.Context(), req.Params()))
}

// GlobalSearch handles GET /stations/global-search.
func (h *Handler) GlobalSearch(w http.ResponseWriter, r *http.Request) {
	req := GlobalSearchRequest{Query: r.URL.Query().Get("query")}
	if err := validate(&req); err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, h.stations.SearchGlobal(r.Context(), req.Query))
}

// FeaturedRegions handles GET /stations/featured.
func (h *Handler) FeaturedRegions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.stations.Regions())
}

// Featured handles GET /stations/featured/{region}. Unknown regions
// answer an empty list, not 404.
func (h *Handler) Featured(w http.ResponseWriter, r *http.Request) {
	req := FeaturedRequest{Region: chi.URLParam(r, "region")}
	if err := validate(&req); err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, h.stations.Featured(r.Context(), req.Region))
}

// FlushCache handles POST /stations/cache/flush (admin).
func (h *Handler) FlushCache(w http.ResponseWriter, r *http.Request) {
	if err := h.stations.FlushCache(r.Context()); err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Cache flushed",
	})
}
