// Copyright 2025 The CoordParse Authors
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldHeader(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"coordinates", "coordinates"},
		{"  Coordinates ", "coordinates"},
		{"COÖRDINATES", "coordinates"},
		{"Coordenadas Geográficas", "coordenadas_geograficas"},
		{"map-coordinates", "map_coordinates"},
		{"map__coordinates", "map_coordinates"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, FoldHeader(tc.input))
		})
	}
}

func TestFormatInt(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0"},
		{1, "1"},
		{123, "123"},
		{1234, "1,234"},
		{123456, "123,456"},
		{1234567, "1,234,567"},
		{-1, "-1"},
		{-123, "-123"},
		{-1234, "-1,234"},
		{-1234567, "-1,234,567"},
		{math.MinInt64, "-9,223,372,036,854,775,808"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatInt(tc.input))
		})
	}
}
