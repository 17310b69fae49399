// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/radiolite/internal/analytics"
	"github.com/tomtom215/radiolite/internal/logging"
)

// maxTrackBodyBytes bounds tracking payloads.
const maxTrackBodyBytes = 4 << 10

var trackAccepted = map[string]string{"status": "ok"}

// TrackAppOpen handles POST /track/app-open. The body is optional.
func (h *Handler) TrackAppOpen(w http.ResponseWriter, r *http.Request) {
	var req AppOpenRequest
	if err := decodeOptionalJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, "Invalid JSON body", nil)
		return
	}
	if err := validate(&req); err != nil {
		respondErr(w, r, err)
		return
	}

	if h.analytics != nil {
		country := analytics.ResolveCountry(req.CountryCode, r.Header.Get("CF-IPCountry"))
		h.record(r, h.analytics.RecordAppOpen, country)
	}
	respondJSON(w, http.StatusAccepted, trackAccepted)
}

// TrackStationPlay handles POST /track/station-play.
func (h *Handler) TrackStationPlay(w http.ResponseWriter, r *http.Request) {
	var req StationPlayRequest
	if err := decodeOptionalJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, "Invalid JSON body", nil)
		return
	}
	if err := validate(&req); err != nil {
		respondErr(w, r, err)
		return
	}

	if h.analytics != nil {
		h.record(r, h.analytics.RecordPlay, req.StationID)
	}
	respondJSON(w, http.StatusAccepted, trackAccepted)
}

// record never fails the request; tracking is best effort.
func (h *Handler) record(r *http.Request, fn func(context.Context, string) error, v string) {
	if err := fn(r.Context(), v); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to record usage event")
	}
}

// AdminOverview handles GET /admin/overview (admin).
func (h *Handler) AdminOverview(w http.ResponseWriter, r *http.Request) {
	if h.analytics == nil {
		respondErr(w, r, analytics.ErrDisabled)
		return
	}
	req := OverviewRequest{Range: r.URL.Query().Get("range")}
	if err := validate(&req); err != nil {
		respondErr(w, r, err)
		return
	}
	rng, err := analytics.ParseRange(req.Range)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	overview, err := h.analytics.Overview(r.Context(), rng)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, overview)
}

// AdminStations handles GET /admin/stations (admin).
func (h *Handler) AdminStations(w http.ResponseWriter, r *http.Request) {
	if h.analytics == nil {
		respondErr(w, r, analytics.ErrDisabled)
		return
	}
	req, err := parseAdminStations(r.URL.Query())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	rng := analytics.RangeAllTime
	if req.Range != "" {
		rng = analytics.Range(req.Range)
	}

	top, err := h.analytics.TopStations(r.Context(), rng, req.Limit)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, top)
}

// decodeOptionalJSON decodes the body into dst; an empty body leaves dst
// untouched.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxTrackBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
