// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package cache

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/tomtom215/radiolite/internal/metrics"
)

const (
	defaultMemoryCapacity = 100
	sweepInterval         = time.Minute
)

type memoryEntry struct {
	key       string
	value     []byte
	expiresAt time.Time
	prev      *memoryEntry
	next      *memoryEntry
}

// MemoryStore is a bounded in-process Store. Entries expire lazily on
// read and in a periodic sweep; when capacity is reached the least
// recently used entry is evicted.
//
// It uses a doubly-linked list for ordering and a map for lookups, so Get,
// Set and eviction are O(1).
type MemoryStore struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*memoryEntry

	// head.next is the most recently used, tail.prev the least
	head *memoryEntry
	tail *memoryEntry

	stats Stats
	now   func() time.Time
}

// NewMemoryStore creates a store holding at most capacity entries.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = defaultMemoryCapacity
	}
	s := &MemoryStore{
		capacity: capacity,
		items:    make(map[string]*memoryEntry, capacity),
		head:     &memoryEntry{},
		tail:     &memoryEntry{},
		now:      time.Now,
	}
	s.head.next = s.tail
	s.tail.prev = s.head
	return s
}

// Get returns a copy of the value and marks the entry recently used.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.items[key]
	if !ok {
		s.stats.Misses++
		return nil, false
	}
	if !s.now().Before(entry.expiresAt) {
		s.removeEntry(entry)
		s.recordEviction()
		s.stats.Misses++
		return nil, false
	}

	s.moveToFront(entry)
	s.stats.Hits++
	return slices.Clone(entry.value), true
}

// Set stores a copy of value, replacing any existing entry.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.Writes++
	expiresAt := s.now().Add(ttl)
	if entry, ok := s.items[key]; ok {
		entry.value = slices.Clone(value)
		entry.expiresAt = expiresAt
		s.moveToFront(entry)
		return
	}

	entry := &memoryEntry{key: key, value: slices.Clone(value), expiresAt: expiresAt}
	s.addToFront(entry)
	s.items[key] = entry

	for len(s.items) > s.capacity {
		s.evictOldest()
	}
}

// Clear removes every entry. Statistics are kept.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]*memoryEntry, s.capacity)
	s.head.next = s.tail
	s.tail.prev = s.head
	return nil
}

// Len returns the number of entries, including expired ones not yet
// swept.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Stats returns a snapshot.
func (s *MemoryStore) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stats
	st.Entries = len(s.items)
	return st
}

// Sweep removes expired entries and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	// Walk from tail (oldest) to head (newest)
	for entry := s.tail.prev; entry != s.head; {
		prev := entry.prev
		if !now.Before(entry.expiresAt) {
			s.removeEntry(entry)
			s.recordEviction()
			removed++
		}
		entry = prev
	}
	return removed
}

// Serve sweeps expired entries every minute until ctx is cancelled. It
// implements suture.Service.
func (s *MemoryStore) Serve(ctx context.Context) error {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// String implements fmt.Stringer for supervisor logs.
func (s *MemoryStore) String() string {
	return "memory-cache-sweeper"
}

// Internal methods (must be called with lock held)

func (s *MemoryStore) recordEviction() {
	s.stats.Evictions++
	metrics.CacheEvictions.WithLabelValues("memory").Inc()
}

func (s *MemoryStore) addToFront(entry *memoryEntry) {
	entry.prev = s.head
	entry.next = s.head.next
	s.head.next.prev = entry
	s.head.next = entry
}

func (s *MemoryStore) moveToFront(entry *memoryEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	s.addToFront(entry)
}

func (s *MemoryStore) removeEntry(entry *memoryEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	delete(s.items, entry.key)
}

func (s *MemoryStore) evictOldest() {
	oldest := s.tail.prev
	if oldest == s.head {
		return
	}
	s.removeEntry(oldest)
	s.recordEviction()
}
