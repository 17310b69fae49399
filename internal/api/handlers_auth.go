// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package api

import (
	"net/http"

	"github.com/tomtom215/radiolite/internal/logging"
)

// maxFormBytes bounds the login form body.
const maxFormBytes = 8 << 10

// Token handles POST /auth/token with an OAuth2 password-grant style form.
func (h *Handler) Token(w http.ResponseWriter, r *http.Request) {
	if h.auth == nil {
		respondErr(w, r, ErrFeatureDisabled)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, "Invalid form body", nil)
		return
	}

	req := TokenRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	if err := validate(&req); err != nil {
		respondErr(w, r, err)
		return
	}

	token, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Str("username", req.Username).Msg("Admin login failed")
		respondErr(w, r, err)
		return
	}
	logging.Ctx(r.Context()).Info().Str("username", req.Username).Msg("Admin token issued")

	w.Header().Set("Cache-Control", "no-store")
	respondJSON(w, http.StatusOK, token)
}

// requireAdmin guards admin routes, answering in the error envelope.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	if h.auth == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			respondErr(w, r, ErrFeatureDisabled)
		})
	}
	return h.auth.RequireAdminWith(respondErr)(next)
}
