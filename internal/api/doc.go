// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

/*
Package api exposes Radiolite over HTTP using the chi router.

Routes (all under /api/v1):

	GET  /stations/stats                     directory-wide counts
	GET  /stations/top?limit=                most voted stations
	GET  /stations/search?name=&country=&countrycode=&language=&tag=&limit=&offset=
	GET  /stations/countries|languages|tags?name=&limit=&offset=
	GET  /stations/global-search?query=
	GET  /stations/featured                  curated region names
	GET  /stations/featured/{region}         curated stations of one region
	POST /stations/cache/flush               admin
	POST /auth/token                         form username, password
	GET  /releases/latest
	GET  /releases/download/{assetID}        302 to the installer
	POST /track/app-open
	POST /track/station-play
	GET  /admin/overview?range=1d|7d|30d|all admin
	GET  /admin/stations?range=&limit=       admin
	GET  /health, /health/live, /health/ready

GET /metrics serves Prometheus metrics outside the versioned prefix.

Response Shapes:

Station, release, token and tracking endpoints answer with bare JSON so
existing desktop and web clients keep working. Admin and health endpoints
use the envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "..."}}

Every error, on every route, uses the envelope with one of the codes
VALIDATION_ERROR, UNAUTHORIZED, NOT_FOUND, RATE_LIMITED,
EXTERNAL_SERVICE_ERROR, SERVICE_UNAVAILABLE or INTERNAL_ERROR.

Station endpoints never fail because of the upstream directory: outages
and timeouts produce empty lists with status 200.
*/
package api
