// Copyright 2025 The CoordParse Authors
// SPDX-License-Identifier: Apache-2.0

package coords

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	errEmptyToken = errors.New("empty token")
	errBadNumber  = errors.New("not a degree/minute/second value")
	errBadMinutes = errors.New("minutes and seconds must be below 60")

	errSignedRange = errors.New("signed values can't be used in a range")
)

// degrees, then optional minutes and seconds. Consecutive numbers must be
// separated by their unit mark or by whitespace; a trailing mark is optional
// so "145 33" and "145°33'" are read alike.
var dmsRegex = regexp.MustCompile(
	`^(\d+(?:\.\d+)?)` +
		`(?:\s*°|(?:\s*°\s*|\s+)(\d+(?:\.\d+)?)` +
		`(?:\s*'|(?:\s*'\s*|\s+)(\d+(?:\.\d+)?)\s*"?)?)?$`,
)

// minutes and seconds are sexagesimal
const maxSexagesimal = 60

// foldSymbol maps the many degree, minute and second look-alikes found in
// catalogue metadata to '°', '\'' and '"'.
func foldSymbol(r rune) rune {
	switch r {
	case 'º', '⁰', '˚', '∘':
		return '°'
	case '′', 'ʹ', '’', '‘', '´', 'ˊ', '`':
		return '\''
	case '″', 'ʺ', '”', '“', '˝':
		return '"'
	default:
		return r
	}
}

// normalizeSymbols composes the string and folds unit marks. A doubled
// prime is read as a second mark.
func normalizeSymbols(s string) string {
	s, _, _ = transform.String(
		transform.Chain(
			norm.NFC,
			runes.Map(foldSymbol),
		),
		s,
	)

	return strings.ReplaceAll(s, "''", `"`)
}

// hemisphereSign returns the sign for a hemisphere letter.
func hemisphereSign(b byte) (float64, bool) {
	switch b {
	case 'N', 'n', 'E', 'e':
		return 1, true
	case 'S', 's', 'W', 'w':
		return -1, true
	default:
		return 0, false
	}
}

// hemisphereLetter returns the hemisphere letter that leads s or, failing
// that, trails it.
func hemisphereLetter(s string) (byte, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	for _, b := range []byte{s[0], s[len(s)-1]} {
		if _, ok := hemisphereSign(b); ok {
			return b, true
		}
	}

	return 0, false
}

// ParseDMS converts a hemisphere-marked degree/minute/second token such as
// `E 145°33'` or `37°42'10"S` into signed decimal degrees. North and East
// are positive, South and West negative. A bare number, optionally with a
// leading minus, is accepted as well.
func ParseDMS(token string) (float64, error) {
	s := strings.TrimSpace(normalizeSymbols(token))
	if s == "" {
		return 0, errEmptyToken
	}

	sign := 1.0

	if h, ok := hemisphereLetter(s); ok {
		sign, _ = hemisphereSign(h)

		if s[0] == h {
			s = strings.TrimSpace(s[1:])
		} else {
			s = strings.TrimSpace(s[:len(s)-1])
		}
	}

	if strings.HasPrefix(s, "-") {
		sign = -sign
		s = strings.TrimSpace(s[1:])
	}

	m := dmsRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%q: %w", token, errBadNumber)
	}

	var parts [3]float64

	for i, txt := range m[1:] {
		if txt == "" {
			continue
		}

		v, err := strconv.ParseFloat(txt, 64)
		if err != nil {
			return 0, fmt.Errorf("%q: %w", token, err)
		}

		if i > 0 && v >= maxSexagesimal {
			return 0, fmt.Errorf("%q: %w", token, errBadMinutes)
		}

		parts[i] = v
	}

	v := parts[0] + parts[1]/60 + parts[2]/3600
	if v == 0 {
		// no signed zero for the equator or prime meridian
		return 0, nil
	}

	return sign * v, nil
}
