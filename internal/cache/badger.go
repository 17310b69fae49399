// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/radiolite/internal/logging"
)

// Key prefix for BadgerDB storage
const badgerKeyPrefix = "cache:"

// BadgerStore keeps entries in BadgerDB under the "cache:" prefix with
// native TTLs, so expiry survives restarts and Clear leaves other users of
// the database untouched.
type BadgerStore struct {
	db     *badger.DB
	prefix []byte

	hits   atomic.Int64
	misses atomic.Int64
	writes atomic.Int64
}

// NewBadgerStore creates a store over an open database. The caller owns
// the database lifecycle.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db, prefix: []byte(badgerKeyPrefix)}
}

func (s *BadgerStore) key(k string) []byte {
	return append(append(make([]byte, 0, len(s.prefix)+len(k)), s.prefix...), k...)
}

// Get returns a copy of the stored value.
func (s *BadgerStore) Get(ctx context.Context, key string) ([]byte, bool) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})

	switch {
	case err == nil:
		s.hits.Add(1)
		return value, true
	case errors.Is(err, badger.ErrKeyNotFound):
	default:
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Cache read failed")
	}
	s.misses.Add(1)
	return nil, false
}

// Set writes the entry with a badger TTL.
func (s *BadgerStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(s.key(key), value).WithTTL(ttl))
	})
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Cache write failed")
		return
	}
	s.writes.Add(1)
}

// Clear drops every key under the cache prefix.
func (s *BadgerStore) Clear(_ context.Context) error {
	if err := s.db.DropPrefix(s.prefix); err != nil {
		return fmt.Errorf("drop cache prefix: %w", err)
	}
	return nil
}

// Len counts live entries. It walks keys only and is meant for stats, not
// the request path.
func (s *BadgerStore) Len() int {
	n := 0
	_ = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = s.prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n
}

// Stats returns a snapshot. Badger expires entries itself, so evictions
// are not tracked.
func (s *BadgerStore) Stats() Stats {
	return Stats{
		Hits:    s.hits.Load(),
		Misses:  s.misses.Load(),
		Writes:  s.writes.Load(),
		Entries: s.Len(),
	}
}
