// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

// Package location cleans the free-text city, state and country strings
// that the radio directory reports for each station.
//
// Directory data is crowd-sourced: states arrive as postal codes, cities
// carry the state as a prefix or suffix, and some entries merge the city
// into the state field ("California, Los Angeles"). Normalize turns all of
// these into one title-cased triple where city and state never repeat each
// other.
//
//	p := location.Normalize("CA", "California, Los Angeles", "united states")
//	// p == Place{City: "Los Angeles", State: "California", Country: "United States"}
package location

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// maxPasses bounds the fixpoint loop in Normalize. In practice the second
// pass already returns its input.
const maxPasses = 4

// Place is a normalized location. Fields are "" when unknown.
type Place struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// Normalize returns the canonical form of a raw location triple.
// It is pure and safe for concurrent use, and Normalize applied to its own
// output returns the same Place.
func Normalize(city, state, country string) Place {
	// cases.Caser keeps internal state and must not be shared.
	n := normalizer{title: cases.Title(language.Und)}

	p := Place{City: city, State: state, Country: country}
	for i := 0; i < maxPasses; i++ {
		next := n.pass(p)
		if next == p {
			return next
		}
		p = next
	}
	return p
}

type normalizer struct {
	title cases.Caser
}

func (n normalizer) pass(in Place) Place {
	city := n.clean(in.City)
	state := n.clean(in.State)
	country := n.clean(in.Country)
	// Equal raw values must leave state empty. Checked before expansion:
	// ("tx", "tx") would otherwise become ("Tx", "Texas"), and "texas"
	// does not contain "tx".
	if strings.EqualFold(city, state) {
		state = ""
	}

	city, state = applyAlias(city), applyAlias(state)
	state = expandAbbreviation(state)
	city = stripRegions(city)
	city, state = splitMerged(city, state)
	city, state = resolveRedundancy(city, state)
	city, state = applyAlias(city), applyAlias(state)

	return Place{
		City:    n.clean(city),
		State:   n.clean(state),
		Country: n.clean(country),
	}
}

// clean trims surrounding whitespace, commas and dots and title-cases.
func (n normalizer) clean(s string) string {
	s = trimNoise(s)
	if s == "" {
		return ""
	}
	return trimNoise(n.title.String(s))
}

func trimNoise(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return r == ',' || r == '.' || unicode.IsSpace(r)
	})
}

// placeWords are remainders that show the region token is part of the
// city's own name ("Kansas City", "Virginia Beach", "Port Washington").
var placeWords = map[string]bool{
	"city": true, "beach": true, "springs": true, "falls": true, "heights": true,
	"park": true, "island": true, "county": true, "mills": true, "hills": true,
	"port": true, "fort": true, "mount": true, "lake": true, "new": true,
	"north": true, "south": true, "east": true, "west": true,
}

// stripRegions removes a leading or trailing state name or abbreviation
// from a city, e.g. "California Los Angeles" or "Austin, TX". It repeats
// until no token matches. A city that is itself a region name, or whose
// remainder would be a bare place word, is left alone.
func stripRegions(city string) string {
	if _, ok := knownRegion(city); ok {
		return city
	}
	for {
		stripped, ok := stripOneRegion(city)
		if !ok {
			return city
		}
		city = stripped
	}
}

func stripOneRegion(city string) (string, bool) {
	for _, region := range regionTokens {
		for _, prefix := range [...]string{region + " ", region + ", "} {
			if len(city) > len(prefix) && strings.EqualFold(city[:len(prefix)], prefix) {
				if rest := trimNoise(city[len(prefix):]); !placeWords[strings.ToLower(rest)] {
					return rest, true
				}
			}
		}
		for _, suffix := range [...]string{" " + region, ", " + region} {
			if len(city) > len(suffix) && strings.EqualFold(city[len(city)-len(suffix):], suffix) {
				if rest := trimNoise(city[:len(city)-len(suffix)]); !placeWords[strings.ToLower(rest)] {
					return rest, true
				}
			}
		}
	}
	return city, false
}

// splitMerged handles a state field that carries "A, B". The parts are
// only used when the city is empty or already one of the parts.
func splitMerged(city, state string) (string, string) {
	if !strings.Contains(state, ",") {
		return city, state
	}

	var parts []string
	for _, p := range strings.Split(state, ",") {
		if p = trimNoise(p); p != "" {
			parts = append(parts, p)
		}
	}
	switch {
	case len(parts) == 0:
		return city, ""
	case len(parts) == 1:
		return city, expandAbbreviation(parts[0])
	case city != "" && !duplicatesPart(city, parts):
		return city, state
	}

	first, second := parts[0], parts[1]
	if region, ok := knownRegion(first); ok {
		if _, secondIsRegion := knownRegion(second); !secondIsRegion {
			return second, region
		}
	}
	return first, expandAbbreviation(second)
}

func duplicatesPart(city string, parts []string) bool {
	expanded := expandAbbreviation(city)
	for _, p := range parts {
		if strings.EqualFold(city, p) || strings.EqualFold(expanded, p) || strings.EqualFold(city, expandAbbreviation(p)) {
			return true
		}
	}
	return false
}

// resolveRedundancy guarantees city and state do not repeat each other.
// Substring checks only apply when both are present.
func resolveRedundancy(city, state string) (string, string) {
	if city == "" || state == "" {
		return city, state
	}
	lc, ls := strings.ToLower(city), strings.ToLower(state)
	switch {
	case lc == ls || strings.Contains(lc, ls) || strings.EqualFold(expandAbbreviation(city), state):
		return city, ""
	case strings.Contains(ls, lc):
		return state, ""
	}
	return city, state
}
