// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package directory

import (
	"bytes"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// FlexInt decodes a JSON number, a numeric string or null. Mirrors in the
// wild report counts both ways ("stationcount": 12 and "stationcount":
// "12"). Anything unparsable decodes to an invalid zero value instead of
// failing the record.
type FlexInt struct {
	Value int
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	*f = FlexInt{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	s := string(b)
	if b[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(b, &unquoted); err != nil {
			return nil
		}
		s = strings.TrimSpace(unquoted)
	}

	if n, err := strconv.Atoi(s); err == nil {
		*f = FlexInt{Value: n, Valid: true}
		return nil
	}
	if fl, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(fl) && !math.IsInf(fl, 0) &&
		fl >= math.MinInt32 && fl <= math.MaxInt32 {
		*f = FlexInt{Value: int(fl), Valid: true}
	}
	return nil
}

// Ptr returns nil for an absent value.
func (f FlexInt) Ptr() *int {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

// FlexString decodes a JSON string, or the literal text of a number or
// boolean. null leaves it invalid.
type FlexString struct {
	Value string
	Valid bool
}

var errNotScalar = errors.New("expected a JSON scalar")

// UnmarshalJSON implements json.Unmarshaler. Objects and arrays are
// rejected, which skips the enclosing record.
func (f *FlexString) UnmarshalJSON(b []byte) error {
	*f = FlexString{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString{Value: s, Valid: true}
	case '{', '[':
		return errNotScalar
	default:
		*f = FlexString{Value: string(b), Valid: true}
	}
	return nil
}

// Ptr returns nil for an absent value.
func (f FlexString) Ptr() *string {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}
