// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package directory

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/radiolite/internal/breaker"
	"github.com/tomtom215/radiolite/internal/config"
	"github.com/tomtom215/radiolite/internal/logging"
	"github.com/tomtom215/radiolite/internal/metrics"
	"github.com/tomtom215/radiolite/internal/models"
)

const upstreamName = "radio-browser"

// Client queries the radio-browser HTTP API.
//
// Calls are rate limited, guarded by a circuit breaker, and bounded by a
// per-operation timeout. Upstream calls are detached from the caller's
// cancellation: a client that disconnects does not abort a fetch whose
// result may still be cached.
type Client struct {
	baseURL       string
	userAgent     string
	timeout       time.Duration
	searchTimeout time.Duration
	maxBody       int64

	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *breaker.Breaker[[]byte]
}

// NewClient creates a directory client from configuration.
func NewClient(cfg *config.DirectoryConfig) *Client {
	limit := rate.Inf
	if cfg.RequestsPerSec > 0 {
		limit = rate.Limit(cfg.RequestsPerSec)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	searchTimeout := cfg.SearchTimeout
	if searchTimeout <= 0 {
		searchTimeout = timeout
	}
	maxBody := cfg.MaxResponseBytes
	if maxBody <= 0 {
		maxBody = 32 << 20
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 16

	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:     cfg.UserAgent,
		timeout:       timeout,
		searchTimeout: searchTimeout,
		maxBody:       maxBody,
		httpClient:    &http.Client{Transport: transport},
		limiter:       rate.NewLimiter(limit, burst),
		breaker:       breaker.New[[]byte]("radio-browser-api"),
	}
}

// TopStations returns the most voted stations.
func (c *Client) TopStations(ctx context.Context, limit int) []models.Station {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	req := newAPIRequest(OpTopStations, "/stations/topvote/"+strconv.Itoa(limit)).
		addParam("hidebroken", "true")
	return c.stations(ctx, req, c.timeout)
}

// SearchStations searches stations ordered by click count, descending.
// A country filter matches exactly.
func (c *Client) SearchStations(ctx context.Context, p SearchParams) []models.Station {
	p = p.WithDefaults()
	req := newAPIRequest(OpSearchStations, "/stations/search").
		addIntParamZero("limit", p.Limit).
		addIntParamZero("offset", p.Offset).
		addParam("hidebroken", "true").
		addParam("order", "clickcount").
		addParam("reverse", "true").
		addParam("name", p.Name).
		addParam("countrycode", p.CountryCode).
		addParam("language", p.Language).
		addParam("tag", p.Tag)
	if p.Country != "" {
		req.addParam("country", p.Country).addParam("countryexact", "true")
	}
	return c.stations(ctx, req, c.searchTimeout)
}

// Countries lists countries by station count.
func (c *Client) Countries(ctx context.Context, p ListParams) []models.Category {
	return c.categories(ctx, OpCountries, "countries", p, c.timeout)
}

// Languages lists languages by station count.
func (c *Client) Languages(ctx context.Context, p ListParams) []models.Category {
	return c.categories(ctx, OpLanguages, "languages", p, c.timeout)
}

// Tags lists tags by station count. The tag table is large, so it gets
// the search timeout.
func (c *Client) Tags(ctx context.Context, p ListParams) []models.Category {
	return c.categories(ctx, OpTags, "tags", p, c.searchTimeout)
}

// SummaryStats returns directory-wide counts, or zeros on failure.
func (c *Client) SummaryStats(ctx context.Context) models.SummaryStats {
	req := newAPIRequest(OpSummaryStats, "/stats")
	body, err := c.fetch(ctx, req, c.timeout)
	if err != nil {
		return models.SummaryStats{}
	}

	var raw rawStats
	if err := json.Unmarshal(body, &raw); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("operation", req.op).Msg("Failed to decode directory stats")
		return models.SummaryStats{}
	}
	return models.SummaryStats{
		Countries: raw.Countries.Value,
		Languages: raw.Languages.Value,
		Tags:      raw.Tags.Value,
		Stations:  raw.Stations.Value,
	}
}

func (c *Client) categories(ctx context.Context, op, kind string, p ListParams, timeout time.Duration) []models.Category {
	p = p.WithDefaults()
	req := newAPIRequest(op, categoryPath(kind, p.Name)).
		addIntParamZero("limit", p.Limit).
		addIntParamZero("offset", p.Offset).
		addParam("order", "stationcount").
		addParam("reverse", "true").
		addParam("hidebroken", "true")

	records := c.records(ctx, req, timeout)
	out := make([]models.Category, 0, len(records))
	skipped := 0
	for _, rec := range records {
		var raw RawCategory
		if err := json.Unmarshal(rec, &raw); err != nil {
			skipped++
			continue
		}
		out = append(out, MapCategory(raw))
	}
	logSkipped(ctx, op, skipped)
	return mergeCategories(out)
}

func (c *Client) stations(ctx context.Context, req *apiRequest, timeout time.Duration) []models.Station {
	records := c.records(ctx, req, timeout)
	out := make([]models.Station, 0, len(records))
	skipped := 0
	for _, rec := range records {
		var raw RawStation
		if err := json.Unmarshal(rec, &raw); err != nil {
			skipped++
			continue
		}
		out = append(out, MapStation(raw))
	}
	logSkipped(ctx, req.op, skipped)
	return dedupeStations(out)
}

// records fetches a JSON array and splits it into undecoded elements.
func (c *Client) records(ctx context.Context, req *apiRequest, timeout time.Duration) []json.RawMessage {
	body, err := c.fetch(ctx, req, timeout)
	if err != nil {
		return nil
	}
	var records []json.RawMessage
	if err := json.Unmarshal(body, &records); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("operation", req.op).Msg("Directory returned a non-array body")
		return nil
	}
	return records
}

// fetch performs one upstream GET. Errors are logged here; callers only
// need to fall back to an empty result.
func (c *Client) fetch(ctx context.Context, req *apiRequest, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	start := time.Now()
	body, err := c.breaker.Execute(func() ([]byte, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}
		return c.get(ctx, req.buildURL(c.baseURL))
	})
	elapsed := time.Since(start)

	switch {
	case err == nil:
		metrics.RecordUpstream(upstreamName, req.op, "ok", elapsed)
		return body, nil
	case breaker.IsRejection(err):
		metrics.RecordUpstream(upstreamName, req.op, "rejected", elapsed)
	default:
		metrics.RecordUpstream(upstreamName, req.op, "error", elapsed)
	}
	logging.Ctx(ctx).Warn().
		Err(err).
		Str("operation", req.op).
		Dur("elapsed", elapsed).
		Msg("Directory request failed")
	return nil, err
}

func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := readBodyForError(resp.Body)
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrUpstream, err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("%w: response larger than %d bytes", ErrUpstream, c.maxBody)
	}
	return body, nil
}

func logSkipped(ctx context.Context, op string, skipped int) {
	if skipped > 0 {
		logging.Ctx(ctx).Debug().Str("operation", op).Int("skipped", skipped).Msg("Skipped malformed directory records")
	}
}
