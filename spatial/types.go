// Copyright 2025 The CoordParse Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"database/sql/driver"
	"fmt"
	"math"
)

const earthRadius = 6371e3 // meters

// centroidPrecision is the number of decimals kept for box centers.
const centroidPrecision = 4

// Point represents a geographical point with latitude and longitude.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String returns the WKT representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("POINT(%f %f)", p.Lng, p.Lat)
}

// Value implements the driver.Valuer interface for database serialization.
func (p Point) Value() (driver.Value, error) {
	return p.String(), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
func (p *Point) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		p.Lat, p.Lng = 0, 0

		return nil
	case string:
		return p.scanWKT(v)
	case []byte:
		return p.scanWKT(string(v))
	default:
		return fmt.Errorf("spatial: unsupported type for Point scan: %T", value)
	}
}

func (p *Point) scanWKT(s string) error {
	// DuckDB spatial renders "POINT (lng lat)", String() omits the space.
	if _, err := fmt.Sscanf(s, "POINT(%f %f)", &p.Lng, &p.Lat); err == nil {
		return nil
	}

	if _, err := fmt.Sscanf(s, "POINT (%f %f)", &p.Lng, &p.Lat); err != nil {
		return fmt.Errorf("spatial: invalid point %q: %w", s, err)
	}

	return nil
}

// HaversineDistance calculates the distance between two points on Earth in meters.
func (p *Point) HaversineDistance(other *Point) float64 {
	lat1 := p.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - p.Lat) * math.Pi / 180
	dLng := (other.Lng - p.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// Box is a rectangular region bounded by two meridians and two parallels.
type Box struct {
	West  float64 `json:"west"`
	East  float64 `json:"east"`
	South float64 `json:"south"`
	North float64 `json:"north"`
}

// Center returns the midpoint of the box rounded to four decimals.
// Edges are not assumed to be ordered.
func (b Box) Center() Point {
	width := math.Abs(b.East - b.West)
	height := math.Abs(b.North - b.South)

	return Point{
		Lat: Round(math.Min(b.South, b.North)+height/2, centroidPrecision),
		Lng: Round(math.Min(b.West, b.East)+width/2, centroidPrecision),
	}
}

// Diagonal returns the great-circle length in meters from the south-west to
// the north-east corner.
func (b Box) Diagonal() float64 {
	sw := Point{Lat: math.Min(b.South, b.North), Lng: math.Min(b.West, b.East)}
	ne := Point{Lat: math.Max(b.South, b.North), Lng: math.Max(b.West, b.East)}

	return sw.HaversineDistance(&ne)
}

// Contains reports whether p lies inside the box, edges included.
func (b Box) Contains(p Point) bool {
	return p.Lat >= math.Min(b.South, b.North) && p.Lat <= math.Max(b.South, b.North) &&
		p.Lng >= math.Min(b.West, b.East) && p.Lng <= math.Max(b.West, b.East)
}

// Round rounds v half away from zero to the given number of decimals.
func Round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))

	r := math.Round(v*scale) / scale
	if r == 0 {
		return 0
	}

	return r
}
