// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package directory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/tomtom215/radiolite/internal/models"
)

// Memory is an in-process Directory over fixed data. It filters the way
// the real directory does, closely enough for service tests, and counts
// every call.
//
// Populate the exported fields before first use.
type Memory struct {
	StationData  []models.Station
	CountryData  []models.Category
	LanguageData []models.Category
	TagData      []models.Category
	Stats        models.SummaryStats

	// Delay is applied before every call. A call whose context ends first
	// returns an empty result, like a client timeout.
	Delay time.Duration

	// Down makes every call return an empty result.
	Down bool

	mu       sync.Mutex
	calls    map[string]int
	searches []SearchParams
}

// NewMemory returns an empty Memory directory.
func NewMemory() *Memory {
	return &Memory{calls: make(map[string]int)}
}

// Calls returns how many times op was invoked.
func (m *Memory) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

// TotalCalls returns the number of calls across all operations.
func (m *Memory) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

// Searches returns the parameters of every SearchStations call, in order.
func (m *Memory) Searches() []SearchParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.searches)
}

// begin records a call and reports whether data should be served.
func (m *Memory) begin(ctx context.Context, op string) bool {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[op]++
	m.mu.Unlock()

	if m.Delay > 0 {
		t := time.NewTimer(m.Delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return false
		}
	}
	return !m.Down
}

func (m *Memory) TopStations(ctx context.Context, limit int) []models.Station {
	if !m.begin(ctx, OpTopStations) {
		return []models.Station{}
	}
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	return page(m.StationData, 0, limit)
}

func (m *Memory) SearchStations(ctx context.Context, p SearchParams) []models.Station {
	p = p.WithDefaults()
	m.mu.Lock()
	m.searches = append(m.searches, p)
	m.mu.Unlock()
	if !m.begin(ctx, OpSearchStations) {
		return []models.Station{}
	}

	var matched []models.Station
	for _, s := range m.StationData {
		if matchesSearch(s, p) {
			matched = append(matched, s)
		}
	}
	return page(matched, p.Offset, p.Limit)
}

func (m *Memory) Countries(ctx context.Context, p ListParams) []models.Category {
	return m.list(ctx, OpCountries, m.CountryData, p)
}

func (m *Memory) Languages(ctx context.Context, p ListParams) []models.Category {
	return m.list(ctx, OpLanguages, m.LanguageData, p)
}

func (m *Memory) Tags(ctx context.Context, p ListParams) []models.Category {
	return m.list(ctx, OpTags, m.TagData, p)
}

func (m *Memory) SummaryStats(ctx context.Context) models.SummaryStats {
	if !m.begin(ctx, OpSummaryStats) {
		return models.SummaryStats{}
	}
	return m.Stats
}

func (m *Memory) list(ctx context.Context, op string, data []models.Category, p ListParams) []models.Category {
	if !m.begin(ctx, op) {
		return []models.Category{}
	}
	p = p.WithDefaults()
	var matched []models.Category
	for _, c := range data {
		if p.Name == "" || containsFold(c.Name, p.Name) {
			matched = append(matched, c)
		}
	}
	return mergeCategories(page(matched, p.Offset, p.Limit))
}

func matchesSearch(s models.Station, p SearchParams) bool {
	if p.Name != "" && !containsFold(s.Name, p.Name) {
		return false
	}
	if p.Country != "" && !strings.EqualFold(s.Country, p.Country) {
		return false
	}
	if p.CountryCode != "" && (s.CountryCode == nil || !strings.EqualFold(*s.CountryCode, p.CountryCode)) {
		return false
	}
	if p.Language != "" && !containsFold(s.Language, p.Language) {
		return false
	}
	if p.Tag != "" && !slices.ContainsFunc(s.Tags, func(t string) bool { return strings.EqualFold(t, p.Tag) }) {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// page returns a copy of in[offset:offset+limit], never nil.
func page[T any](in []T, offset, limit int) []T {
	if offset >= len(in) {
		return []T{}
	}
	end := min(offset+limit, len(in))
	return slices.Clone(in[offset:end])
}
