// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package releases

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/radiolite/internal/breaker"
	"github.com/tomtom215/radiolite/internal/config"
	"github.com/tomtom215/radiolite/internal/logging"
	"github.com/tomtom215/radiolite/internal/metrics"
)

const (
	upstreamName = "github"

	opLatestRelease = "latest_release"
	opAssetRedirect = "asset_redirect"
	opAssetContent  = "asset_content"

	maxBodySize      = 4 << 20
	maxErrorBodySize = 64 * 1024
)

var (
	// ErrNotConfigured is returned when no repository is configured.
	ErrNotConfigured = errors.New("release repository not configured")

	// ErrAssetNotFound is returned when GitHub has no such asset.
	ErrAssetNotFound = errors.New("release asset not found")

	// ErrUpstream wraps GitHub failures.
	ErrUpstream = errors.New("release host error")
)

// Asset is a GitHub release asset.
type Asset struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Release is the part of a GitHub release the proxy reads.
type Release struct {
	TagName string  `json:"tag_name"`
	Assets  []Asset `json:"assets"`
}

// response is what crosses the circuit breaker. 4xx responses are
// returned, not failed, so they do not trip the breaker.
type response struct {
	status   int
	location string
	body     []byte
}

// Client talks to the GitHub releases API.
type Client struct {
	apiURL string
	repo   string
	token  string

	// api never follows redirects; asset downloads answer 302.
	api      *http.Client
	download *http.Client
	breaker  *breaker.Breaker[*response]
}

// NewClient builds a GitHub client from config.
func NewClient(cfg *config.ReleasesConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	apiURL := strings.TrimRight(cfg.APIURL, "/")
	if apiURL == "" {
		apiURL = "https://api.github.com"
	}

	return &Client{
		apiURL: apiURL,
		repo:   strings.Trim(cfg.Repo, "/"),
		token:  cfg.Token,
		api: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		download: &http.Client{Timeout: timeout},
		breaker:  breaker.New[*response]("github-releases"),
	}
}

// Configured reports whether a repository is set.
func (c *Client) Configured() bool {
	return c.repo != ""
}

// LatestRelease fetches /repos/{repo}/releases/latest.
func (c *Client) LatestRelease(ctx context.Context) (*Release, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	resp, err := c.do(ctx, opLatestRelease, c.repoURL("/releases/latest"), "application/vnd.github+json", c.api)
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusOK {
		return nil, fmt.Errorf("%w: latest release: status %d", ErrUpstream, resp.status)
	}

	var release Release
	if err := json.Unmarshal(resp.body, &release); err != nil {
		return nil, fmt.Errorf("%w: decode latest release: %w", ErrUpstream, err)
	}
	return &release, nil
}

// AssetRedirect resolves the short-lived download location of an asset.
func (c *Client) AssetRedirect(ctx context.Context, assetID int64) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	url := c.repoURL("/releases/assets/" + strconv.FormatInt(assetID, 10))
	resp, err := c.do(ctx, opAssetRedirect, url, "application/octet-stream", c.api)
	if err != nil {
		return "", err
	}

	switch {
	case resp.status == http.StatusNotFound:
		return "", ErrAssetNotFound
	case resp.status >= 300 && resp.status < 400 && resp.location != "":
		return resp.location, nil
	default:
		return "", fmt.Errorf("%w: asset %d: status %d", ErrUpstream, assetID, resp.status)
	}
}

// AssetContent downloads a (small) asset body.
func (c *Client) AssetContent(ctx context.Context, assetID int64) ([]byte, error) {
	location, err := c.AssetRedirect(ctx, assetID)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, opAssetContent, location, "", c.download)
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusOK {
		return nil, fmt.Errorf("%w: asset %d content: status %d", ErrUpstream, assetID, resp.status)
	}
	return resp.body, nil
}

func (c *Client) repoURL(path string) string {
	return c.apiURL + "/repos/" + c.repo + path
}

func (c *Client) do(ctx context.Context, op, url, accept string, hc *http.Client) (*response, error) {
	start := time.Now()
	resp, err := c.breaker.Execute(func() (*response, error) {
		return c.send(ctx, url, accept, hc)
	})
	elapsed := time.Since(start)

	switch {
	case breaker.IsRejection(err):
		metrics.RecordUpstream(upstreamName, op, "rejected", elapsed)
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	case err != nil:
		metrics.RecordUpstream(upstreamName, op, "error", elapsed)
		logging.Ctx(ctx).Warn().Err(err).Str("operation", op).Msg("GitHub request failed")
		return nil, err
	}
	metrics.RecordUpstream(upstreamName, op, "ok", elapsed)
	return resp, nil
}

func (c *Client) send(ctx context.Context, url, accept string, hc *http.Client) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	// Redirect targets are pre-signed; the token only goes to the API host.
	if c.token != "" && strings.HasPrefix(url, c.apiURL) {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, readBodyForError(resp.Body))
	}

	out := &response{status: resp.StatusCode, location: resp.Header.Get("Location")}
	if resp.StatusCode == http.StatusOK {
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
		if err != nil {
			return nil, fmt.Errorf("%w: read body: %w", ErrUpstream, err)
		}
		if len(body) > maxBodySize {
			return nil, fmt.Errorf("%w: response exceeds %d bytes", ErrUpstream, maxBodySize)
		}
		out.body = body
	}
	return out, nil
}

func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return fmt.Sprintf("(failed to read body: %v)", err)
	}
	return string(body)
}
