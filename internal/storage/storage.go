// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

// Package storage owns the BadgerDB instance shared by the station cache
// (badger backend) and the analytics counters. Each user keeps to its own
// key prefix.
package storage

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/radiolite/internal/config"
	"github.com/tomtom215/radiolite/internal/logging"
)

const (
	gcDiscardRatio = 0.5
	closeTimeout   = 30 * time.Second
)

// ErrClosed is returned after Close.
var ErrClosed = errors.New("storage is closed")

// DB is a BadgerDB handle with lifecycle helpers.
type DB struct {
	db   *badger.DB
	path string

	mu     sync.RWMutex
	closed bool
}

// Open opens (or creates) the database described by cfg.
func Open(cfg config.StorageConfig) (*DB, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Msg("Storage opened")
	return &DB{db: db, path: cfg.Path}, nil
}

// OpenInMemory opens a throwaway in-memory database, mainly for tests.
func OpenInMemory() (*DB, error) {
	return Open(config.StorageConfig{InMemory: true})
}

// Badger returns the underlying handle.
func (d *DB) Badger() *badger.DB {
	return d.db
}

// Ping verifies the database accepts reads.
func (d *DB) Ping() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrClosed
	}
	return d.db.View(func(*badger.Txn) error { return nil })
}

// RunGC rewrites value log files until badger reports nothing to reclaim.
// In-memory databases have no value log and return immediately.
func (d *DB) RunGC() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrClosed
	}
	if d.db.Opts().InMemory {
		return nil
	}

	for {
		err := d.db.RunValueLogGC(gcDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

// Close flushes and closes the database. A close that hangs past the
// timeout returns an error rather than blocking shutdown.
func (d *DB) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- d.db.Close()
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("close BadgerDB: %w", err)
		}
		logging.Info().Str("path", d.path).Msg("Storage closed")
		return nil
	case <-time.After(closeTimeout):
		logging.Warn().Dur("timeout", closeTimeout).Msg("BadgerDB close timed out")
		return fmt.Errorf("badgerdb close timeout after %v", closeTimeout)
	}
}
