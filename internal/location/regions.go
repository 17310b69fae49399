// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package location

import (
	"cmp"
	"slices"
	"strings"
)

// usStates maps two-letter postal abbreviations to full state names,
// spelled the way Normalize title-cases them.
var usStates = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas", "CA": "California",
	"CO": "Colorado", "CT": "Connecticut", "DE": "Delaware", "FL": "Florida", "GA": "Georgia",
	"HI": "Hawaii", "ID": "Idaho", "IL": "Illinois", "IN": "Indiana", "IA": "Iowa",
	"KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi", "MO": "Missouri",
	"MT": "Montana", "NE": "Nebraska", "NV": "Nevada", "NH": "New Hampshire", "NJ": "New Jersey",
	"NM": "New Mexico", "NY": "New York", "NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio",
	"OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
	"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah", "VT": "Vermont",
	"VA": "Virginia", "WA": "Washington", "WV": "West Virginia", "WI": "Wisconsin", "WY": "Wyoming",
	"DC": "District Of Columbia",
}

// aliases fixes misspellings and variant names seen in directory data.
// Keys are lower case.
var aliases = map[string]string{
	"panjab":        "Punjab",
	"rajashtan":     "Rajasthan",
	"nyc":           "New York",
	"new york city": "New York",
	"ny city":       "New York",
	"calfornia":     "California",
	"colarado":      "Colorado",
}

// regionTokens lists every full state name and abbreviation, longest
// first, so "West Virginia" is tried before "Virginia".
var regionTokens []string

// fullNames indexes full state names by lower case.
var fullNames map[string]string

//nolint:gochecknoinits // derived lookup tables
func init() {
	fullNames = make(map[string]string, len(usStates))
	regionTokens = make([]string, 0, 2*len(usStates))
	for abbr, name := range usStates {
		fullNames[strings.ToLower(name)] = name
		regionTokens = append(regionTokens, name, abbr)
	}
	slices.SortFunc(regionTokens, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
}

// expandAbbreviation returns the full state name for a two-letter postal
// code, or s unchanged.
func expandAbbreviation(s string) string {
	if name, ok := usStates[strings.ToUpper(s)]; ok {
		return name
	}
	return s
}

// knownRegion returns the canonical state name when s is a state name or
// abbreviation.
func knownRegion(s string) (string, bool) {
	if name, ok := usStates[strings.ToUpper(s)]; ok {
		return name, true
	}
	name, ok := fullNames[strings.ToLower(s)]
	return name, ok
}

func applyAlias(s string) string {
	if v, ok := aliases[strings.ToLower(s)]; ok {
		return v
	}
	return s
}
