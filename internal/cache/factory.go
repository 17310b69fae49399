// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package cache

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/radiolite/internal/config"
)

// Backend names accepted in cache.backend.
const (
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// StatsReporter is implemented by both backends.
type StatsReporter interface {
	Stats() Stats
}

// New builds the configured backend. db is required for the badger
// backend and ignored otherwise.
func New(cfg config.CacheConfig, db *badger.DB) (Store, error) {
	switch cfg.Backend {
	case BackendBadger, "":
		if db == nil {
			return nil, fmt.Errorf("cache backend %q requires storage", BackendBadger)
		}
		return NewBadgerStore(db), nil
	case BackendMemory:
		return NewMemoryStore(cfg.MaxEntries), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
