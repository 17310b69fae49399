// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

// Package cache stores encoded query results under string keys with a
// per-entry expiry.
//
// Two backends implement Store: BadgerStore persists entries in the shared
// BadgerDB so they survive restarts, and MemoryStore keeps a bounded LRU
// in process. Neither surfaces read or write failures; a failed read is a
// miss and a failed write is dropped.
//
// Values are copied in and out. Callers replace entries wholesale and
// never mutate a stored value.
package cache

import (
	"context"
	"time"
)

// Store is a key/value cache with per-entry expiry.
type Store interface {
	// Get returns the value and true on a hit.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value until ttl elapses. A non-positive ttl stores
	// nothing.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)

	// Clear removes every entry.
	Clear(ctx context.Context) error
}

// Stats is a snapshot of store activity since start.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Writes    int64 `json:"writes"`
	Evictions int64 `json:"evictions"`
	Entries   int   `json:"entries"`
}

// HitRate returns hits as a percentage of lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

var (
	_ Store = (*BadgerStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
