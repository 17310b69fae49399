// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

/*
Package auth issues and verifies admin access tokens.

Radiolite has a single administrator configured through ADMIN_USERNAME and
ADMIN_PASSWORD. The password may be given in clear text, in which case it
is bcrypt-hashed at startup, or as a bcrypt hash ($2a$, $2b$ or $2y$).

Key Components:

  - JWTManager: HS256 token generation and validation
  - AdminAuthenticator: credential check and token issuance
  - RequireAdmin: HTTP middleware that guards admin routes

Token Claims:

  - sub: the admin username
  - role: always "admin"
  - jti: random UUID
  - iss: "radiolite"
  - iat, nbf, exp: exp is now + SESSION_TIMEOUT (default 24h)

Usage Example:

	authn, err := auth.NewAdminAuthenticator(&cfg.Security)
	if err != nil {
	    return err
	}

	token, err := authn.Login(username, password)

	r.With(authn.RequireAdmin).Post("/stations/cache/flush", h.FlushCache)
*/
package auth
