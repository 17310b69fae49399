// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package directory

import (
	"io"
	"net/url"
	"strconv"
)

const maxErrorBodySize = 64 * 1024

// apiRequest holds one directory GET request
type apiRequest struct {
	op     string
	path   string
	params url.Values
}

func newAPIRequest(op, path string) *apiRequest {
	return &apiRequest{op: op, path: path, params: url.Values{}}
}

// addParam adds a parameter only when value is non-empty
func (r *apiRequest) addParam(key, value string) *apiRequest {
	if value != "" {
		r.params.Set(key, value)
	}
	return r
}

// addIntParamZero adds an integer parameter (even if 0)
func (r *apiRequest) addIntParamZero(key string, value int) *apiRequest {
	if value >= 0 {
		r.params.Set(key, strconv.Itoa(value))
	}
	return r
}

// buildURL joins base URL, path and encoded query
func (r *apiRequest) buildURL(baseURL string) string {
	u := baseURL + r.path
	if len(r.params) > 0 {
		u += "?" + r.params.Encode()
	}
	return u
}

// categoryPath returns /countries or /countries/{name}.
func categoryPath(kind, name string) string {
	if name == "" {
		return "/" + kind
	}
	return "/" + kind + "/" + url.PathEscape(name)
}

// readBodyForError reads up to maxErrorBodySize bytes for error messages.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}
