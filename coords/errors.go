// Copyright 2025 The CoordParse Authors
// SPDX-License-Identifier: Apache-2.0

package coords

import (
	"errors"
	"fmt"
)

// ErrorType classifies why a coordinate string was rejected.
type ErrorType int

const (
	// ErrorTypeUnknown unclassified failure.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeStructural missing separator, empty component or a point mixed with a box.
	ErrorTypeStructural
	// ErrorTypeToken a degree/minute/second token could not be converted.
	ErrorTypeToken
	// ErrorTypeRange a value lies outside the latitude or longitude bounds.
	ErrorTypeRange
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeStructural:
		return "structural"
	case ErrorTypeToken:
		return "token"
	case ErrorTypeRange:
		return "range"
	default:
		return "unknown"
	}
}

// ParseError is returned by Parse for any rejected input.
type ParseError struct {
	Type    ErrorType
	Input   string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error parsing %q: %s: %v", e.Type, e.Input, e.Message, e.Err)
	}

	return fmt.Sprintf("%s error parsing %q: %s", e.Type, e.Input, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(typ ErrorType, input, message string, err error) *ParseError {
	return &ParseError{
		Type:    typ,
		Input:   input,
		Message: message,
		Err:     err,
	}
}

func isErrorType(err error, typ ErrorType) bool {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Type == typ
	}

	return false
}

// IsStructuralError reports whether err is a structural parse failure.
func IsStructuralError(err error) bool {
	return isErrorType(err, ErrorTypeStructural)
}

// IsTokenError reports whether err is a token conversion failure.
func IsTokenError(err error) bool {
	return isErrorType(err, ErrorTypeToken)
}

// IsRangeError reports whether err is a range validation failure.
func IsRangeError(err error) bool {
	return isErrorType(err, ErrorTypeRange)
}
