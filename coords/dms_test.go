// Copyright 2025 The CoordParse Authors
// SPDX-License-Identifier: Apache-2.0

package coords

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDMS(t *testing.T) {
	tests := []struct {
		token string
		want  float64
	}{
		{"E 145°33ʹ", 145.55},
		{"S 37°42ʹ", -37.7},
		{"W 58°22'30\"", -58.375},
		{"N 0°", 0},
		{"E 114°00ʹ00ʺ", 114},
		{"E 145⁰50'", 145 + 50.0/60},
		{"E 145º 33′ 20″", 145 + 33.0/60 + 20.0/3600},
		{"E 10°0'30''", 10 + 30.0/3600},
		{"37°42'S", -37.7},
		{"145°33'E", 145.55},
		{"s 12°30'", -12.5},
		{"E145°33'", 145.55},
		{"145 33", 145.55},
		{"-33.5", -33.5},
		{"12.25", 12.25},
		{"W 71.5°", -71.5},
		{"  N 45°  ", 45},
		{"E 145°59'59.5\"", 145 + 59.0/60 + 59.5/3600},
		{"S 12 30 15", -(12 + 30.0/60 + 15.0/3600)},
		{"N 12° 30", 12.5},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseDMS(tt.token)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseDMSErrors(t *testing.T) {
	for _, token := range []string{
		"",
		"   ",
		"E",
		"abc",
		"E 145°33ʹ approx",
		"E 145°33'12\"4",
		"E 1,5",
		"33'",
		"E 37'",
		"S 4530'",
		"E 145\"",
		"E 145°3312",
		"E 145°33'1210",
		"E 145°60'",
		"E 145°30'60\"",
		"N 1 2 3 4",
	} {
		t.Run(fmt.Sprintf("%q", token), func(t *testing.T) {
			_, err := ParseDMS(token)
			assert.Error(t, err)
		})
	}
}

func TestParseDMSHemisphereSign(t *testing.T) {
	for deg := 0; deg <= 180; deg += 15 {
		for minute := 0; minute < 60; minute += 7 {
			for sec := 0; sec < 60; sec += 11 {
				abs := float64(deg) + float64(minute)/60 + float64(sec)/3600

				for hemi, sign := range map[string]float64{"N": 1, "E": 1, "S": -1, "W": -1} {
					token := fmt.Sprintf("%s %d°%02dʹ%02dʺ", hemi, deg, minute, sec)

					got, err := ParseDMS(token)
					require.NoError(t, err, token)
					assert.InDelta(t, sign*abs, got, 1e-9, token)
				}
			}
		}
	}
}

func TestParseDMSMinutesRange(t *testing.T) {
	_, err := ParseDMS("E 145°60'")
	require.ErrorIs(t, err, errBadMinutes)

	_, err = ParseDMS("E 145°59'60\"")
	require.ErrorIs(t, err, errBadMinutes)

	_, err = ParseDMS("S 4530'")
	require.ErrorIs(t, err, errBadNumber)
}

func TestParseDMSZeroIsUnsigned(t *testing.T) {
	for _, token := range []string{"W 0°", "S 0°00'00\"", "-0"} {
		got, err := ParseDMS(token)
		require.NoError(t, err)
		assert.False(t, math.Signbit(got), token)
	}
}

func TestNormalizeSymbols(t *testing.T) {
	assert.Equal(t, `E 145°33'10"`, normalizeSymbols("E 145⁰33ʹ10ʺ"))
	assert.Equal(t, `E 145°33'10"`, normalizeSymbols("E 145º33′10″"))
	assert.Equal(t, `E 145°33'10"`, normalizeSymbols("E 145°33'10''"))
	assert.Equal(t, "Ñandú", normalizeSymbols("Ñandú"))
}
