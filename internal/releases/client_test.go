// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package releases

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/radiolite/internal/config"
)

// fakeGitHub serves a release with one installer and a latest.json asset.
func fakeGitHub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var srv *httptest.Server

	mux.HandleFunc("GET /repos/acme/radio/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tag_name":"v1.4.0","assets":[
			{"id":11,"name":"Radiolite_1.4.0_x64.dmg","size":1000},
			{"id":12,"name":"latest.json","size":200},
			{"id":13,"name":"Radiolite.AppImage","size":3000}]}`))
	})
	mux.HandleFunc("GET /repos/acme/radio/releases/assets/{id}", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/octet-stream" {
			t.Errorf("Accept = %q", got)
		}
		switch r.PathValue("id") {
		case "11", "12":
			w.Header().Set("Location", srv.URL+"/blob/"+r.PathValue("id"))
			w.WriteHeader(http.StatusFound)
		case "500":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	mux.HandleFunc("GET /blob/12", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"version":"1.4.0","platforms":{"darwin-x86_64":{"url":"x"}}}`))
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(url string) *Client {
	return NewClient(&config.ReleasesConfig{
		APIURL:  url,
		Repo:    "acme/radio",
		Token:   "tok",
		Timeout: 2 * time.Second,
	})
}

func TestClient_LatestRelease(t *testing.T) {
	t.Parallel()
	c := newTestClient(fakeGitHub(t).URL)

	rel, err := c.LatestRelease(context.Background())
	if err != nil {
		t.Fatalf("LatestRelease() error = %v", err)
	}
	if rel.TagName != "v1.4.0" || len(rel.Assets) != 3 {
		t.Errorf("release = %+v", rel)
	}
}

func TestClient_AssetRedirect(t *testing.T) {
	t.Parallel()
	srv := fakeGitHub(t)
	c := newTestClient(srv.URL)
	ctx := context.Background()

	loc, err := c.AssetRedirect(ctx, 11)
	if err != nil {
		t.Fatalf("AssetRedirect() error = %v", err)
	}
	if loc != srv.URL+"/blob/11" {
		t.Errorf("location = %q", loc)
	}

	if _, err := c.AssetRedirect(ctx, 99); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("missing asset error = %v, want ErrAssetNotFound", err)
	}
	if _, err := c.AssetRedirect(ctx, 500); !errors.Is(err, ErrUpstream) {
		t.Errorf("server error = %v, want ErrUpstream", err)
	}
}

func TestClient_AssetContent(t *testing.T) {
	t.Parallel()
	c := newTestClient(fakeGitHub(t).URL)

	body, err := c.AssetContent(context.Background(), 12)
	if err != nil {
		t.Fatalf("AssetContent() error = %v", err)
	}
	if len(body) == 0 {
		t.Error("expected manifest body")
	}
}

func TestClient_NotConfigured(t *testing.T) {
	t.Parallel()
	c := NewClient(&config.ReleasesConfig{})

	if c.Configured() {
		t.Error("Configured() = true without a repo")
	}
	if _, err := c.LatestRelease(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
	if _, err := c.AssetRedirect(context.Background(), 1); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
}
