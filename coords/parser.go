// Copyright 2025 The CoordParse Authors
// SPDX-License-Identifier: Apache-2.0

package coords

import (
	"fmt"
	"io"
	"log"
	"sync"
)

// Diagnostics receives the raw strings that could not be parsed.
type Diagnostics interface {
	Report(raw string, err error)
}

type discard struct{}

func (discard) Report(string, error) {}

// Discard is a Diagnostics that drops every report.
var Discard Diagnostics = discard{}

// LineLog writes one rejected raw string per line. It is safe for
// concurrent use.
type LineLog struct {
	mu    sync.Mutex
	w     io.Writer
	count int
}

// NewLineLog creates a LineLog writing to w.
func NewLineLog(w io.Writer) *LineLog {
	return &LineLog{w: w}
}

// Report appends raw to the log. Write failures are logged, never returned.
func (l *LineLog) Report(raw string, _ error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.count++

	if _, err := fmt.Fprintln(l.w, raw); err != nil {
		log.Printf("writing parse diagnostic for %q: %v", raw, err)
	}
}

// Count returns the number of reports received so far.
func (l *LineLog) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.count
}

// Parser wraps Parse for batch use: failures are reported to its
// Diagnostics and degrade to the empty Record.
type Parser struct {
	diag Diagnostics
}

// NewParser returns a Parser reporting to diag; nil means Discard.
func NewParser(diag Diagnostics) *Parser {
	if diag == nil {
		diag = Discard
	}

	return &Parser{diag: diag}
}

// Parse never fails. Rejected input yields the empty Record and a report.
func (p *Parser) Parse(raw string) Record {
	r, err := Parse(raw)
	if err != nil {
		p.diag.Report(raw, err)

		return Record{}
	}

	return r
}

// ParseField is Parse for sources that distinguish a missing value from an
// empty string. Missing values are never reported.
func (p *Parser) ParseField(raw string, present bool) Record {
	if !present {
		return Record{}
	}

	return p.Parse(raw)
}
