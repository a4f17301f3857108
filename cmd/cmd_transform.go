// Copyright 2025 The CoordParse Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver
	"github.com/jcodagnone/coordparse/batch"
	"github.com/jcodagnone/coordparse/coords"
	"github.com/jcodagnone/coordparse/store"
	"github.com/jcodagnone/coordparse/utils"
	"github.com/spf13/cobra"
)

type TransformOptions struct {
	batch.Options

	OutputPath string
	ErrorsPath string
	DbPath     string
	Source     string
}

var transformOptions = &TransformOptions{}

var transformCmd = &cobra.Command{
	Use:   "transform [file.csv]",
	Short: "Append parsed coordinate columns to a CSV file",
	Long: `Reads a CSV file (stdin when no file is given) and writes it back with the
columns east, west, north, south, latitude and longitude appended. Rows whose
coordinates can't be parsed keep empty columns and their raw value is written
to the errors file for later review.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader = os.Stdin

		source := transformOptions.Source

		if len(args) == 1 {
			f, err := os.Open(filepath.Clean(args[0]))
			if err != nil {
				return fmt.Errorf("opening input: %w", err)
			}
			defer f.Close()

			in = f

			if source == "" {
				source = filepath.Base(args[0])
			}
		}

		if source == "" {
			source = "stdin"
		}

		out := cmd.OutOrStdout()

		if transformOptions.OutputPath != "" {
			f, err := os.OpenFile(filepath.Clean(transformOptions.OutputPath), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
			if err != nil {
				return fmt.Errorf("creating output: %w", err)
			}
			defer f.Close()

			out = f
		}

		errFile, err := os.OpenFile(filepath.Clean(transformOptions.ErrorsPath), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("creating errors file: %w", err)
		}
		defer errFile.Close()

		diag := coords.NewLineLog(errFile)

		opts := transformOptions.Options
		opts.Description = "Parsing " + source

		rows, metrics, err := batch.Transform(in, out, coords.NewParser(diag), &opts)
		if err != nil {
			return err
		}

		log.Printf(
			"Transform complete - %s rows: %s points, %s boxes, %s missing and %s failed (see %s)",
			utils.FormatInt(int64(metrics.Rows)),
			utils.FormatInt(int64(metrics.Points)),
			utils.FormatInt(int64(metrics.Boxes)),
			utils.FormatInt(int64(metrics.Missing)),
			utils.FormatInt(int64(metrics.Failed)),
			transformOptions.ErrorsPath,
		)

		if transformOptions.DbPath == "" {
			return nil
		}

		return storeRows(transformOptions.DbPath, source, rows)
	},
}

func storeRows(dbPath, source string, rows []batch.Row) error {
	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	repo := store.NewCoordinateRepository(db)
	if err := repo.CreateSchema(); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	if err := repo.SaveRecords(source, rows); err != nil {
		return fmt.Errorf("storing %s: %w", source, err)
	}

	log.Printf("✅ Stored %s rows from %s in %s", utils.FormatInt(int64(len(rows))), source, dbPath)

	return nil
}

func init() {
	rootCmd.AddCommand(transformCmd)
	transformCmd.Flags().StringVar(
		&transformOptions.Column,
		"column",
		batch.DefaultColumn,
		"Header of the column holding the coordinates",
	)
	transformCmd.Flags().IntVar(
		&transformOptions.MaxProcs,
		"max-procs",
		0,
		"Max number of parsing workers. Defaults to the number of CPUs",
	)
	transformCmd.Flags().StringVarP(
		&transformOptions.OutputPath,
		"output",
		"o",
		"",
		"Where to write the resulting CSV. Defaults to stdout",
	)
	transformCmd.Flags().StringVar(
		&transformOptions.ErrorsPath,
		"errors",
		"parse_errors.txt",
		"File receiving the coordinate strings that couldn't be parsed, one per line",
	)
	transformCmd.Flags().StringVar(
		&transformOptions.DbPath,
		"db",
		"",
		"Also store the parsed records in this DuckDB database",
	)
	transformCmd.Flags().StringVar(
		&transformOptions.Source,
		"source",
		"",
		"Label stored with the records. Defaults to the input file name",
	)
}
