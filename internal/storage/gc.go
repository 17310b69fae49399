// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package storage

import (
	"context"
	"time"

	"github.com/tomtom215/radiolite/internal/logging"
)

// GCService runs value log garbage collection on an interval. It
// implements suture.Service.
type GCService struct {
	db       *DB
	interval time.Duration
}

// NewGCService creates the GC loop. A non-positive interval defaults to
// ten minutes.
func NewGCService(db *DB, interval time.Duration) *GCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &GCService{db: db, interval: interval}
}

// Serve blocks until ctx is cancelled.
func (s *GCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.db.RunGC(); err != nil {
				logging.Warn().Err(err).Msg("Storage GC failed")
				continue
			}
			logging.Debug().Dur("duration", time.Since(start)).Msg("Storage GC completed")
		}
	}
}

// String implements fmt.Stringer for supervisor logs.
func (s *GCService) String() string {
	return "storage-gc"
}
