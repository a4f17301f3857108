// Copyright 2025 The CoordParse Authors
// SPDX-License-Identifier: Apache-2.0

package coords

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorClassification(t *testing.T) {
	structural := &ParseError{Type: ErrorTypeStructural, Input: "x", Message: "missing '/'"}
	token := &ParseError{Type: ErrorTypeToken, Input: "x", Message: "latitude", Err: errBadNumber}
	rng := &ParseError{Type: ErrorTypeRange, Input: "x", Message: "out of bounds"}
	wrapped := fmt.Errorf("row 12: %w", rng)
	plain := errors.New("range")

	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"structural", structural, IsStructuralError, true},
		{"structural is not token", structural, IsTokenError, false},
		{"token", token, IsTokenError, true},
		{"range", rng, IsRangeError, true},
		{"wrapped range", wrapped, IsRangeError, true},
		{"plain error", plain, IsRangeError, false},
		{"nil", nil, IsStructuralError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("check(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	err := &ParseError{Type: ErrorTypeToken, Input: "(E x/S 1)", Message: "longitude", Err: errBadNumber}

	want := `token error parsing "(E x/S 1)": longitude: not a degree/minute/second value`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	if !errors.Is(err, errBadNumber) {
		t.Errorf("errors.Is(%v, errBadNumber) = false", err)
	}

	err = &ParseError{Type: ErrorTypeStructural, Input: "()", Message: "missing '/'"}

	want = `structural error parsing "()": missing '/'`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
