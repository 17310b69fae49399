// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/radiolite/internal/logging"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// ErrMissingToken is returned when no bearer token is present.
var ErrMissingToken = errors.New("missing bearer token")

// UnauthorizedFunc writes the response for a rejected request.
type UnauthorizedFunc func(w http.ResponseWriter, r *http.Request, err error)

// ContextWithClaims stores verified claims.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext returns the claims stored by RequireAdmin.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	return claims, ok
}

// RequireAdmin rejects requests without a valid admin bearer token using
// a plain-text 401.
func (a *AdminAuthenticator) RequireAdmin(next http.Handler) http.Handler {
	return a.RequireAdminWith(nil)(next)
}

// RequireAdminWith is RequireAdmin with a custom rejection writer.
func (a *AdminAuthenticator) RequireAdminWith(onUnauthorized UnauthorizedFunc) func(http.Handler) http.Handler {
	if onUnauthorized == nil {
		onUnauthorized = func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				onUnauthorized(w, r, err)
				return
			}
			claims, err := a.Verify(token)
			if err != nil {
				logging.Ctx(r.Context()).Warn().Err(err).Msg("Admin token rejected")
				onUnauthorized(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
		})
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
// The scheme is case-insensitive.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrMissingToken
	}
	return strings.TrimSpace(token), nil
}
