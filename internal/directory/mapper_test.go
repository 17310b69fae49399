// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package directory

import (
	"reflect"
	"testing"

	"github.com/goccy/go-json"
)

func TestSanitizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{"  @@Classic Rock!! ", "Classic Rock"},
		{"*** Jazz FM ***", "Jazz FM"},
		{"(Radio 1)", "Radio 1"},
		{"_-=Dance=-_", "Dance"},
		{"Plain", "Plain"},
		{"Rock & Roll", "Rock & Roll"},
		{"Radio.", "Radio"},
		{"@@!!", "@@!!"},
		{"   ", "   "},
		{"", ""},
		{"\t#1 Hits\n", "1 Hits"},
	}

	for _, tt := range tests {
		if got := SanitizeName(tt.raw); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestSanitizeName_NeverEmpty(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"@", ".", " ", "()", "-_-", "a", "@a@"} {
		if SanitizeName(raw) == "" {
			t.Errorf("SanitizeName(%q) returned empty", raw)
		}
	}
}

func TestParseTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want []string
	}{
		{"", []string{}},
		{"rock", []string{"rock"}},
		{"rock, pop ,,jazz", []string{"rock", "pop", "jazz"}},
		{"pop,pop", []string{"pop", "pop"}},
		{" , ,", []string{}},
	}

	for _, tt := range tests {
		got := ParseTags(tt.raw)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseTags(%q) = %#v, want %#v", tt.raw, got, tt.want)
		}
	}
}

func TestMapStation(t *testing.T) {
	t.Parallel()

	payload := `{
		"stationuuid": "9617a958-0601-11e8-ae97-52543be04c81",
		"name": "  @@Classic Rock!! ",
		"url": "http://stream.example/rock",
		"homepage": "https://example.com",
		"city": "CA",
		"state": "California, Los Angeles",
		"country": "united states",
		"countrycode": "US",
		"language": "english",
		"tags": "rock,classic rock, 70s",
		"clickcount": "42",
		"votes": 7,
		"codec": "MP3",
		"bitrate": 128
	}`

	var raw RawStation
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := MapStation(raw)

	if got.Name != "Classic Rock" {
		t.Errorf("Name = %q, want Classic Rock", got.Name)
	}
	if got.City != "Los Angeles" || got.State != "California" || got.Country != "United States" {
		t.Errorf("location = %q/%q/%q, want Los Angeles/California/United States", got.City, got.State, got.Country)
	}
	if got.URLResolved != "http://stream.example/rock" {
		t.Errorf("URLResolved = %q, want fallback to url", got.URLResolved)
	}
	if got.ClickCount != 42 || got.Votes != 7 {
		t.Errorf("counts = %d/%d, want 42/7", got.ClickCount, got.Votes)
	}
	if got.Bitrate == nil || *got.Bitrate != 128 {
		t.Errorf("Bitrate = %v, want 128", got.Bitrate)
	}
	if got.Favicon != nil || got.ChangeUUID != nil {
		t.Errorf("absent optional fields should be nil, got favicon=%v changeuuid=%v", got.Favicon, got.ChangeUUID)
	}
	if got.Homepage == nil || *got.Homepage != "https://example.com" {
		t.Errorf("Homepage = %v", got.Homepage)
	}
	if got.CountryCode == nil || *got.CountryCode != "US" {
		t.Errorf("CountryCode = %v", got.CountryCode)
	}
	if want := []string{"rock", "classic rock", "70s"}; !reflect.DeepEqual(got.Tags, want) {
		t.Errorf("Tags = %v, want %v", got.Tags, want)
	}
}

func TestMapStation_EmptyRecord(t *testing.T) {
	t.Parallel()

	got := MapStation(RawStation{})
	if got.Tags == nil {
		t.Error("Tags should be an empty slice, not nil")
	}
	if got.Bitrate != nil || got.Codec != nil || got.Homepage != nil {
		t.Error("optional fields should be nil")
	}
	if got.City != "" || got.State != "" || got.Country != "" {
		t.Errorf("location = %+v, want empty", got)
	}
}

func TestMapCategory(t *testing.T) {
	t.Parallel()

	var raw RawCategory
	if err := json.Unmarshal([]byte(`{"name":" german ","stationcount":"1234"}`), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := MapCategory(raw)
	if got.Name != " german " || got.StationCount != 1234 {
		t.Errorf("MapCategory() = %+v, want verbatim name and 1234", got)
	}
}
