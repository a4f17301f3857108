// Copyright 2025 The CoordParse Authors
// SPDX-License-Identifier: Apache-2.0

package coords

import (
	"strconv"

	"github.com/jcodagnone/coordparse/spatial"
)

// Kind is the shape of a parsed record.
type Kind int

const (
	// KindNone nothing could be parsed, or the input was missing.
	KindNone Kind = iota
	// KindPoint only Latitude and Longitude are set.
	KindPoint
	// KindBox all six fields are set; Latitude and Longitude hold the centroid.
	KindBox
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindBox:
		return "box"
	default:
		return "none"
	}
}

// Columns are the names of the fields appended to tabular output, in order.
var Columns = []string{"east", "west", "north", "south", "latitude", "longitude"}

// Record is the parsed form of one coordinate field.
type Record struct {
	East      *float64 `json:"east,omitempty"`
	West      *float64 `json:"west,omitempty"`
	North     *float64 `json:"north,omitempty"`
	South     *float64 `json:"south,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func newPoint(p spatial.Point) Record {
	return Record{
		Latitude:  &p.Lat,
		Longitude: &p.Lng,
	}
}

func newBox(b spatial.Box, center spatial.Point) Record {
	return Record{
		East:      &b.East,
		West:      &b.West,
		North:     &b.North,
		South:     &b.South,
		Latitude:  &center.Lat,
		Longitude: &center.Lng,
	}
}

// Kind reports the shape of the record.
func (r Record) Kind() Kind {
	switch {
	case r.East != nil && r.West != nil && r.North != nil && r.South != nil &&
		r.Latitude != nil && r.Longitude != nil:
		return KindBox
	case r.East == nil && r.West == nil && r.North == nil && r.South == nil &&
		r.Latitude != nil && r.Longitude != nil:
		return KindPoint
	default:
		return KindNone
	}
}

// Point returns the representative point: the coordinate itself, or the
// centroid of a box.
func (r Record) Point() (spatial.Point, bool) {
	if r.Kind() == KindNone {
		return spatial.Point{}, false
	}

	return spatial.Point{Lat: *r.Latitude, Lng: *r.Longitude}, true
}

// Box returns the bounding box when the record is a box.
func (r Record) Box() (spatial.Box, bool) {
	if r.Kind() != KindBox {
		return spatial.Box{}, false
	}

	return spatial.Box{West: *r.West, East: *r.East, South: *r.South, North: *r.North}, true
}

// Values renders the record as strings in Columns order, unset fields empty.
func (r Record) Values() []string {
	fields := []*float64{r.East, r.West, r.North, r.South, r.Latitude, r.Longitude}
	out := make([]string, len(fields))

	for i, f := range fields {
		if f == nil {
			continue
		}

		v := *f
		if v == 0 {
			v = 0 // -0
		}

		out[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}

	return out
}
