// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// LatestRelease handles GET /releases/latest.
func (h *Handler) LatestRelease(w http.ResponseWriter, r *http.Request) {
	if h.releases == nil {
		respondErr(w, r, ErrFeatureDisabled)
		return
	}
	doc, err := h.releases.Latest(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

// DownloadRelease handles GET /releases/download/{assetID} by redirecting
// to a short-lived download URL.
func (h *Handler) DownloadRelease(w http.ResponseWriter, r *http.Request) {
	if h.releases == nil {
		respondErr(w, r, ErrFeatureDisabled)
		return
	}

	id, err := parseInt64("asset_id", chi.URLParam(r, "assetID"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	req := AssetRequest{AssetID: id}
	if err := validate(&req); err != nil {
		respondErr(w, r, err)
		return
	}

	location, err := h.releases.DownloadURL(r.Context(), req.AssetID)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	http.Redirect(w, r, location, http.StatusFound)
}
