// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the GET /health payload.
type HealthStatus struct {
	Status           string      `json:"status"` // healthy or degraded
	Version          string      `json:"version"`
	StorageConnected bool        `json:"storage_connected"`
	Cache            *CacheStats `json:"cache,omitempty"`
	Uptime           float64     `json:"uptime_seconds"`
}

// CacheStats summarizes the station cache.
type CacheStats struct {
	Entries int     `json:"entries"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	storageOK := h.storageReady()
	status := HealthStatus{
		Status:           "healthy",
		Version:          h.version,
		StorageConnected: storageOK,
		Uptime:           time.Since(h.startTime).Seconds(),
	}
	if !storageOK {
		status.Status = "degraded"
	}
	if stats, ok := h.stations.CacheStats(); ok {
		status.Cache = &CacheStats{
			Entries: stats.Entries,
			Hits:    stats.Hits,
			Misses:  stats.Misses,
			HitRate: stats.HitRate(),
		}
	}
	respondData(w, r, http.StatusOK, status)
}

// HealthLive handles GET /health/live: 200 while the process runs.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondData(w, r, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles GET /health/ready. The upstream directory is not
// checked: station routes degrade to empty results instead of failing.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if !h.storageReady() {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Storage not ready", nil)
		return
	}
	respondData(w, r, http.StatusOK, map[string]interface{}{"ready": true})
}

// storageReady treats a missing store (memory cache, analytics off) as
// ready.
func (h *Handler) storageReady() bool {
	return h.storage == nil || h.storage.Ping() == nil
}
