// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

/*
Package main is the entry point for the Radiolite server.

Radiolite sits between radio apps and the community radio-browser
directory. It cleans station metadata, caches directory answers with a
tiered expiry, serves curated categories and featured regions, proxies
desktop release downloads from GitHub, and keeps anonymous usage counters.

# Process Layout

Long-running work runs under a Suture v4 supervision tree:

	RootSupervisor ("radiolite")
	├── DataSupervisor ("data-layer")
	│   ├── BadgerDB value log GC
	│   └── memory cache sweeper (CACHE_BACKEND=memory only)
	└── APISupervisor ("api-layer")
	    └── HTTP server

Startup order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog, with slog bridged for the supervisor
 3. Storage: one BadgerDB shared by the cache and analytics
 4. Directory client, cache store and station service
 5. Optional features: admin auth, release proxy, analytics
 6. Chi router and HTTP server
 7. Supervisor tree, until SIGINT or SIGTERM

# Configuration

Common environment variables:

	HTTP_PORT            listen port (default 8000)
	RADIO_BROWSER_URL    directory mirror
	CACHE_BACKEND        badger (default) or memory
	CACHE_TTL            fallback expiry, seconds or Go duration
	CACHE_HOT_TTL        expiry for top stations, stats and featured lists
	CACHE_LONG_TTL       expiry for category browses and listings
	DATA_PATH            BadgerDB directory
	ADMIN_USERNAME       enables the admin API together with ADMIN_PASSWORD
	JWT_SECRET           32+ characters, required with admin credentials
	GITHUB_REPO          owner/name for the release proxy
	LOG_LEVEL, LOG_FORMAT

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests before the tree stops, and BadgerDB is closed last.
*/
package main
