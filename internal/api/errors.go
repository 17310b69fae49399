// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/radiolite/internal/analytics"
	"github.com/tomtom215/radiolite/internal/auth"
	"github.com/tomtom215/radiolite/internal/logging"
	"github.com/tomtom215/radiolite/internal/releases"
	"github.com/tomtom215/radiolite/internal/validation"
)

// ErrFeatureDisabled is returned by routes whose backing component is not
// configured.
var ErrFeatureDisabled = errors.New("feature not enabled")

// respondErr maps a domain error onto a status and envelope code. Unknown
// errors are logged and reported as INTERNAL_ERROR without detail.
func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.RequestValidationError
	switch {
	case errors.As(err, &verr):
		apiErr := verr.ToAPIError()
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, apiErr.Message, apiErr.Details)
	case errors.Is(err, analytics.ErrInvalidRange):
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
	case errors.Is(err, auth.ErrInvalidCredentials):
		w.Header().Set("WWW-Authenticate", "Bearer")
		respondError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, "Incorrect username or password", nil)
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingToken):
		w.Header().Set("WWW-Authenticate", "Bearer")
		respondError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, "Could not validate credentials", nil)
	case errors.Is(err, releases.ErrAssetNotFound):
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Release asset not found", nil)
	case errors.Is(err, releases.ErrUpstream):
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Release host request failed")
		respondError(w, r, http.StatusBadGateway, ErrCodeExternalService, "Release host unavailable", nil)
	case errors.Is(err, releases.ErrNotConfigured), errors.Is(err, analytics.ErrDisabled), errors.Is(err, ErrFeatureDisabled):
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, err.Error(), nil)
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, "Internal server error", nil)
	}
}
