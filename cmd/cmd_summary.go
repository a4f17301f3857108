// Copyright 2025 The CoordParse Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver
	"github.com/jcodagnone/coordparse/coords"
	"github.com/jcodagnone/coordparse/spatial"
	"github.com/jcodagnone/coordparse/store"
	"github.com/jcodagnone/coordparse/utils"
	"github.com/spf13/cobra"
)

var summaryOptions struct {
	DbPath     string
	Resolution int
	Limit      int
	Within     string
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize the records stored by transform --db",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := os.Stat(summaryOptions.DbPath); errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("database not found at %s - run 'transform --db' first", summaryOptions.DbPath)
		}

		db, err := sql.Open("duckdb", summaryOptions.DbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		repo := store.NewCoordinateRepository(db)

		metrics, err := repo.Metrics()
		if err != nil {
			return err
		}

		cells, err := repo.CellCounts(summaryOptions.Resolution, summaryOptions.Limit)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()

		fmt.Fprintf(w, "Rows: %s  Points: %s  Boxes: %s  Missing: %s  Failed: %s\n\n",
			utils.FormatInt(int64(metrics.Rows)),
			utils.FormatInt(int64(metrics.Points)),
			utils.FormatInt(int64(metrics.Boxes)),
			utils.FormatInt(int64(metrics.Missing)),
			utils.FormatInt(int64(metrics.Failed)),
		)

		if summaryOptions.Within != "" {
			box, err := parseBox(summaryOptions.Within)
			if err != nil {
				return err
			}

			n, err := repo.CountWithin(box)
			if err != nil {
				return err
			}

			fmt.Fprintf(w, "Located within %s: %s\n\n", summaryOptions.Within, utils.FormatInt(int64(n)))
		}

		a, b, c := strings.Repeat("─", 16), strings.Repeat("─", 10), strings.Repeat("─", 24)
		fmt.Fprintf(w, "Densest h3 cells at resolution %d:\n", summaryOptions.Resolution)
		fmt.Fprintf(w, "╭─%-16s─┬─%10s─┬─%-24s─╮\n", a, b, c)
		fmt.Fprintf(w, "│ %-16s │ %10s │ %-24s │\n", "Cell", "Records", "Center")
		fmt.Fprintf(w, "├─%-16s─┼─%10s─┼─%-24s─┤\n", a, b, c)

		for _, cell := range cells {
			center := fmt.Sprintf("%.4f, %.4f", cell.Center.Lat, cell.Center.Lng)
			fmt.Fprintf(w, "│ %-16s │ %10s │ %-24s │\n", cell.Cell.String(), utils.FormatInt(int64(cell.Count)), center)
		}

		fmt.Fprintf(w, "╰─%-16s─┴─%10s─┴─%-24s─╯\n", a, b, c)

		return nil
	},
}

// parseBox reads a --within value written like the catalogue boxes.
func parseBox(raw string) (spatial.Box, error) {
	rec, err := coords.Parse(raw)
	if err != nil {
		return spatial.Box{}, fmt.Errorf("invalid --within: %w", err)
	}

	box, ok := rec.Box()
	if !ok {
		return spatial.Box{}, fmt.Errorf("invalid --within %q: not a bounding box", raw)
	}

	return box, nil
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringVar(
		&summaryOptions.DbPath,
		"db",
		"coordparse.duckdb",
		"DuckDB database written by transform --db",
	)
	summaryCmd.Flags().IntVar(
		&summaryOptions.Resolution,
		"resolution",
		3,
		fmt.Sprintf("h3 resolution used to group records (%d-%d)", store.MinResolution, store.MaxResolution),
	)
	summaryCmd.Flags().IntVar(
		&summaryOptions.Limit,
		"limit",
		10,
		"Number of cells to list",
	)
	summaryCmd.Flags().StringVar(
		&summaryOptions.Within,
		"within",
		"",
		`Also count the records located inside this box, e.g. "(E 114°--E 130°/S 14°--S 34°)"`,
	)
}
