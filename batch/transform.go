// Copyright 2025 The CoordParse Authors
// SPDX-License-Identifier: Apache-2.0

// Package batch appends parsed coordinate columns to tabular data.
package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/jcodagnone/coordparse/coords"
	"github.com/jcodagnone/coordparse/utils"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// DefaultColumn is the header looked up when Options.Column is empty.
const DefaultColumn = "coordinates"

// ErrColumnNotFound is returned when the header has no coordinate column.
var ErrColumnNotFound = errors.New("coordinate column not found")

// Options configures Transform.
type Options struct {
	// Column is the header of the coordinate field, matched ignoring case,
	// accents and separators.
	Column string
	// MaxProcs bounds the number of parsing workers. Defaults to the number of CPUs.
	MaxProcs int
	// Description labels the progress bar.
	Description string
}

// Row statuses, as stored and counted.
const (
	StatusPoint   = "point"
	StatusBox     = "box"
	StatusMissing = "missing"
	StatusFailed  = "failed"
)

// Row is the parse outcome of one input record.
type Row struct {
	Index  int
	Raw    string
	Record coords.Record
}

// Status tells a missing coordinate apart from one that failed to parse.
func (r *Row) Status() string {
	switch r.Record.Kind() {
	case coords.KindPoint:
		return StatusPoint
	case coords.KindBox:
		return StatusBox
	default:
		if strings.TrimSpace(r.Raw) == "" {
			return StatusMissing
		}

		return StatusFailed
	}
}

// Metrics counts the outcome of a transform.
type Metrics struct {
	Rows    int
	Points  int
	Boxes   int
	Missing int
	Failed  int
}

// Merge adds the counts of other into m.
func (m *Metrics) Merge(other *Metrics) {
	m.Rows += other.Rows
	m.Points += other.Points
	m.Boxes += other.Boxes
	m.Missing += other.Missing
	m.Failed += other.Failed
}

func (m *Metrics) add(row *Row) {
	m.Rows++

	switch row.Status() {
	case StatusPoint:
		m.Points++
	case StatusBox:
		m.Boxes++
	case StatusMissing:
		m.Missing++
	default:
		m.Failed++
	}
}

func findColumn(header []string, name string) (int, error) {
	if name == "" {
		name = DefaultColumn
	}

	want := utils.FoldHeader(name)

	for i, h := range header {
		if utils.FoldHeader(h) == want {
			return i, nil
		}
	}

	return -1, fmt.Errorf("%w: %q in %v", ErrColumnNotFound, name, header)
}

// Transform reads CSV with a header row from r, parses the coordinate column
// of every record and writes the input with coords.Columns appended to w.
// Output order matches input order. Unparsable coordinates never fail the
// transform; they are reported to p and leave the new columns empty.
func Transform(r io.Reader, w io.Writer, p *coords.Parser, opts *Options) ([]Row, *Metrics, error) {
	if opts == nil {
		opts = &Options{}
	}

	if p == nil {
		p = coords.NewParser(coords.Discard)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading csv: %w", err)
	}

	if len(records) == 0 {
		return nil, nil, errors.New("reading csv: missing header")
	}

	header, body := records[0], records[1:]

	col, err := findColumn(header, opts.Column)
	if err != nil {
		return nil, nil, err
	}

	rows, metrics := parseRows(body, col, p, opts)

	writer := csv.NewWriter(w)
	if err := writer.Write(append(header[:len(header):len(header)], coords.Columns...)); err != nil {
		return nil, nil, fmt.Errorf("writing csv header: %w", err)
	}

	for i, rec := range body {
		out := append(rec[:len(rec):len(rec)], rows[i].Record.Values()...)
		if err := writer.Write(out); err != nil {
			return nil, nil, fmt.Errorf("writing csv row %d: %w", i+1, err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return nil, nil, fmt.Errorf("flushing csv: %w", err)
	}

	return rows, metrics, nil
}

// parseRows fans the records out over a bounded worker pool. Each worker
// writes only its own index and keeps its own Metrics, merged once it is done.
func parseRows(body [][]string, col int, p *coords.Parser, opts *Options) ([]Row, *Metrics) {
	n := len(body)
	rows := make([]Row, n)

	maxProcs := opts.MaxProcs
	if maxProcs <= 0 {
		maxProcs = runtime.NumCPU()
	}

	var bar *progressbar.ProgressBar
	if n > 0 && isatty.IsTerminal(os.Stderr.Fd()) {
		description := opts.Description
		if description == "" {
			description = "Parsing coordinates"
		}

		bar = progressbar.NewOptions(n,
			progressbar.OptionSetDescription(description),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	jobs := make(chan int, maxProcs)
	total := &Metrics{}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for range maxProcs {
		wg.Add(1)

		go func() {
			defer wg.Done()

			local := &Metrics{}

			for i := range jobs {
				rec := body[i]

				// short rows lack the column altogether
				present := col < len(rec)

				var raw string
				if present {
					raw = rec[col]
				}

				rows[i] = Row{
					Index:  i,
					Raw:    raw,
					Record: p.ParseField(raw, present),
				}

				local.add(&rows[i])

				if bar != nil {
					_ = bar.Add(1)
				}
			}

			mu.Lock()
			total.Merge(local)
			mu.Unlock()
		}()
	}

	for i := range body {
		jobs <- i
	}

	close(jobs)
	wg.Wait()

	return rows, total
}
