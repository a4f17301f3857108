// Copyright 2025 The CoordParse Authors
// SPDX-License-Identifier: Apache-2.0

// Package coords parses free-text catalogue coordinates, points and
// bounding boxes in hemisphere-prefixed degrees/minutes/seconds, into
// decimal latitude and longitude.
package coords

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/jcodagnone/coordparse/spatial"
)

const (
	maxLatitude  = 90
	maxLongitude = 180

	// trimmed from both ends before parsing
	wrapperChars = "()[]. "
)

// Parse converts a raw coordinate field into a Record.
//
//	(E 145°33ʹ/S 37°42ʹ)                                point
//	(E 114°00ʹ00ʺ--E 130°00ʹ00ʺ/S 14°00ʹ00ʺ--S 34°00ʹ00ʺ) box
//
// An empty or blank input is a missing value: the empty Record and a nil
// error. Any other failure returns the empty Record and a *ParseError.
// Parse is a pure function.
func Parse(raw string) (Record, error) {
	if strings.TrimSpace(raw) == "" {
		return Record{}, nil
	}

	s := strings.Trim(normalizeSymbols(raw), wrapperChars)

	lngText, latText, found := strings.Cut(s, "/")
	if !found {
		return Record{}, newParseError(ErrorTypeStructural, raw, "missing '/' between longitude and latitude", nil)
	}

	lngText, latText = strings.TrimSpace(lngText), strings.TrimSpace(latText)
	if lngText == "" || latText == "" {
		return Record{}, newParseError(ErrorTypeStructural, raw, "empty coordinate component", nil)
	}

	// some records list latitude first
	if isLatitude(lngText) {
		lngText, latText = latText, lngText
	}

	lngs, err := axisValues(lngText)
	if err != nil {
		return Record{}, newParseError(ErrorTypeToken, raw, "longitude", err)
	}

	lats, err := axisValues(latText)
	if err != nil {
		return Record{}, newParseError(ErrorTypeToken, raw, "latitude", err)
	}

	if err := validateAll(lats, lngs); err != nil {
		return Record{}, newParseError(ErrorTypeRange, raw, "out of bounds", err)
	}

	switch {
	case len(lngs) == 2 && len(lats) == 2:
		box := spatial.Box{West: lngs[0], East: lngs[1], South: lats[0], North: lats[1]}

		center := box.Center()
		if err := validateCoordinates(center.Lat, center.Lng); err != nil {
			return Record{}, newParseError(ErrorTypeRange, raw, "centroid out of bounds", err)
		}

		return newBox(box, center), nil
	case len(lngs) == 1 && len(lats) == 1:
		return newPoint(spatial.Point{Lat: lats[0], Lng: lngs[0]}), nil
	default:
		return Record{}, newParseError(
			ErrorTypeStructural,
			raw,
			fmt.Sprintf("%d longitude and %d latitude values", len(lngs), len(lats)),
			nil,
		)
	}
}

// Centroid returns the midpoint of a box rounded to four decimals.
func Centroid(west, east, south, north float64) (lat, lng float64) {
	c := spatial.Box{West: west, East: east, South: south, North: north}.Center()

	return c.Lat, c.Lng
}

// axisValues converts one component, a single value or a range, into
// ascending decimal degrees.
func axisValues(s string) ([]float64, error) {
	tokens := splitRange(s)
	values := make([]float64, 0, len(tokens))

	for _, tok := range tokens {
		// "-70--60" can't tell a separator from a sign
		if len(tokens) > 1 && strings.HasPrefix(strings.TrimSpace(tok), "-") {
			return nil, fmt.Errorf("%q: %w", s, errSignedRange)
		}

		v, err := ParseDMS(tok)
		if err != nil {
			return nil, err
		}

		values = append(values, v)
	}

	slices.Sort(values)

	return values, nil
}

// isLatitude reports whether a component is marked north or south.
func isLatitude(s string) bool {
	h, ok := hemisphereLetter(s)

	return ok && strings.IndexByte("NnSs", h) >= 0
}

// splitRange splits on "--", falling back to a single "-" which some
// records use as the range separator.
func splitRange(s string) []string {
	parts := strings.Split(s, "--")
	if len(parts) > 1 {
		return parts
	}

	parts = strings.Split(s, "-")
	// leading minus sign, not a separator
	if len(parts) > 1 && strings.TrimSpace(parts[0]) == "" {
		parts[1] = "-" + parts[1]
		parts = parts[1:]
	}

	return parts
}

func validateAll(lats, lngs []float64) error {
	for _, lat := range lats {
		if err := validateLatitude(lat); err != nil {
			return err
		}
	}

	for _, lng := range lngs {
		if err := validateLongitude(lng); err != nil {
			return err
		}
	}

	return nil
}

func validateCoordinates(lat, lng float64) error {
	if err := validateLatitude(lat); err != nil {
		return err
	}

	return validateLongitude(lng)
}

func validateLatitude(lat float64) error {
	if math.IsNaN(lat) || math.Abs(lat) > maxLatitude {
		return fmt.Errorf("latitude must be between -90 and 90 (got %f)", lat)
	}

	return nil
}

func validateLongitude(lng float64) error {
	if math.IsNaN(lng) || math.Abs(lng) > maxLongitude {
		return fmt.Errorf("longitude must be between -180 and 180 (got %f)", lng)
	}

	return nil
}
