// Copyright 2025 The CoordParse Authors
// SPDX-License-Identifier: Apache-2.0

// Package store persists parsed coordinates in DuckDB.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jcodagnone/coordparse/batch"
	"github.com/jcodagnone/coordparse/spatial"
	"github.com/uber/h3-go/v4"
)

const (
	// MinResolution and MaxResolution bound the stored h3 resolutions.
	MinResolution = 1
	MaxResolution = 8
)

// CellCount is the number of records whose representative point falls in an
// h3 cell.
type CellCount struct {
	Cell   h3.Cell
	Count  int
	Center spatial.Point
}

// CoordinateRepository handles persistence of parsed coordinates.
type CoordinateRepository interface {
	// CreateSchema creates the coordinates table
	CreateSchema() error

	// SaveRecords replaces every stored row of source with rows
	SaveRecords(source string, rows []batch.Row) error

	// ListRecords returns the rows stored for source ordered by row index
	ListRecords(source string) ([]batch.Row, error)

	// Metrics counts the stored rows per status
	Metrics() (*batch.Metrics, error)

	// CountWithin returns the number of located rows inside box
	CountWithin(box spatial.Box) (int, error)

	// CellCounts groups the located rows by h3 cell, densest first
	CellCounts(res, limit int) ([]CellCount, error)
}

type sqlCoordinateRepository struct {
	db *sql.DB
}

// NewCoordinateRepository creates a new coordinate repository.
func NewCoordinateRepository(db *sql.DB) CoordinateRepository {
	return &sqlCoordinateRepository{db: db}
}

func (r *sqlCoordinateRepository) CreateSchema() error {
	_, err := r.db.Exec(`
		CREATE SEQUENCE IF NOT EXISTS coordinates_seq START 1;

		CREATE TABLE IF NOT EXISTS coordinates (
			id INTEGER PRIMARY KEY DEFAULT nextval('coordinates_seq'),
			source VARCHAR NOT NULL,
			row_index INTEGER NOT NULL,
			raw VARCHAR NOT NULL,
			status VARCHAR NOT NULL,
			east DOUBLE,
			west DOUBLE,
			north DOUBLE,
			south DOUBLE,
			latitude DOUBLE,
			longitude DOUBLE,
			point VARCHAR,
			extent_m DOUBLE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			h3_res1 UBIGINT,
			h3_res2 UBIGINT,
			h3_res3 UBIGINT,
			h3_res4 UBIGINT,
			h3_res5 UBIGINT,
			h3_res6 UBIGINT,
			h3_res7 UBIGINT,
			h3_res8 UBIGINT,
			UNIQUE(source, row_index)
		);
	`)

	return err
}

// h3Cells returns the cells containing p at resolutions 1 to 8.
func h3Cells(p spatial.Point) ([]any, error) {
	cells := make([]any, 0, MaxResolution)
	latLng := h3.NewLatLng(p.Lat, p.Lng)

	for res := MinResolution; res <= MaxResolution; res++ {
		cell, err := h3.LatLngToCell(latLng, res)
		if err != nil {
			return nil, fmt.Errorf("error converting to h3 cell at res %d: %w", res, err)
		}

		cells = append(cells, int64(cell))
	}

	return cells, nil
}

// rowArgs builds the insert arguments of a row; unset values become NULL.
func rowArgs(source string, row *batch.Row) ([]any, error) {
	rec := row.Record
	args := []any{
		source,
		row.Index,
		row.Raw,
		row.Status(),
		rec.East,
		rec.West,
		rec.North,
		rec.South,
		rec.Latitude,
		rec.Longitude,
	}

	p, ok := rec.Point()
	if !ok {
		args = append(args, nil, nil)

		for range MaxResolution {
			args = append(args, nil)
		}

		return args, nil
	}

	var extent any
	if box, ok := rec.Box(); ok {
		extent = box.Diagonal()
	}

	args = append(args, p, extent)

	cells, err := h3Cells(p)
	if err != nil {
		return nil, err
	}

	return append(args, cells...), nil
}

func (r *sqlCoordinateRepository) SaveRecords(source string, rows []batch.Row) (err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	if _, err = tx.Exec("DELETE FROM coordinates WHERE source = ?", source); err != nil {
		return fmt.Errorf("clearing %s: %w", source, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO coordinates(
			source,
			row_index,
			raw,
			status,
			east,
			west,
			north,
			south,
			latitude,
			longitude,
			point,
			extent_m,
			h3_res1,
			h3_res2,
			h3_res3,
			h3_res4,
			h3_res5,
			h3_res6,
			h3_res7,
			h3_res8
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i := range rows {
		args, err := rowArgs(source, &rows[i])
		if err != nil {
			return fmt.Errorf("row %d: %w", rows[i].Index, err)
		}

		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("inserting row %d: %w", rows[i].Index, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}

	return nil
}

func (r *sqlCoordinateRepository) ListRecords(source string) ([]batch.Row, error) {
	rows, err := r.db.Query(`
		SELECT row_index, raw, east, west, north, south, latitude, longitude
		FROM coordinates
		WHERE source = ?
		ORDER BY row_index
	`, source)
	if err != nil {
		return nil, fmt.Errorf("querying coordinates: %w", err)
	}
	defer rows.Close()

	var ret []batch.Row

	for rows.Next() {
		var row batch.Row

		rec := &row.Record
		if err := rows.Scan(
			&row.Index, &row.Raw,
			&rec.East, &rec.West, &rec.North, &rec.South,
			&rec.Latitude, &rec.Longitude,
		); err != nil {
			return nil, fmt.Errorf("scanning coordinate: %w", err)
		}

		ret = append(ret, row)
	}

	return ret, rows.Err()
}

func (r *sqlCoordinateRepository) Metrics() (*batch.Metrics, error) {
	m := &batch.Metrics{}

	err := r.db.QueryRow(`
		SELECT
			count(*),
			count(*) FILTER (WHERE status = ?),
			count(*) FILTER (WHERE status = ?),
			count(*) FILTER (WHERE status = ?),
			count(*) FILTER (WHERE status = ?)
		FROM coordinates
	`, batch.StatusPoint, batch.StatusBox, batch.StatusMissing, batch.StatusFailed).
		Scan(&m.Rows, &m.Points, &m.Boxes, &m.Missing, &m.Failed)
	if err != nil {
		return nil, fmt.Errorf("counting coordinates: %w", err)
	}

	return m, nil
}

func (r *sqlCoordinateRepository) CountWithin(box spatial.Box) (int, error) {
	rows, err := r.db.Query("SELECT point FROM coordinates WHERE point IS NOT NULL")
	if err != nil {
		return 0, fmt.Errorf("querying points: %w", err)
	}
	defer rows.Close()

	count := 0

	for rows.Next() {
		var p spatial.Point
		if err := rows.Scan(&p); err != nil {
			return 0, fmt.Errorf("scanning point: %w", err)
		}

		if box.Contains(p) {
			count++
		}
	}

	return count, rows.Err()
}

func (r *sqlCoordinateRepository) CellCounts(res, limit int) ([]CellCount, error) {
	if res < MinResolution || res > MaxResolution {
		return nil, fmt.Errorf("h3 resolution must be between %d and %d (got %d)", MinResolution, MaxResolution, res)
	}

	// res is validated above, the column name can't be a bind parameter
	column := fmt.Sprintf("h3_res%d", res)

	rows, err := r.db.Query(fmt.Sprintf(`
		SELECT %[1]s, count(*) AS n
		FROM coordinates
		WHERE %[1]s IS NOT NULL
		GROUP BY %[1]s
		ORDER BY n DESC, %[1]s
		LIMIT ?
	`, column), limit)
	if err != nil {
		return nil, fmt.Errorf("grouping by %s: %w", column, err)
	}
	defer rows.Close()

	var ret []CellCount

	for rows.Next() {
		var (
			cell  uint64
			count int
		)

		if err := rows.Scan(&cell, &count); err != nil {
			return nil, fmt.Errorf("scanning cell: %w", err)
		}

		c := CellCount{Cell: h3.Cell(cell), Count: count}

		latLng, err := h3.CellToLatLng(c.Cell)
		if err != nil {
			return nil, fmt.Errorf("locating cell %s: %w", c.Cell, err)
		}

		c.Center = spatial.Point{Lat: latLng.Lat, Lng: latLng.Lng}
		ret = append(ret, c)
	}

	return ret, rows.Err()
}
