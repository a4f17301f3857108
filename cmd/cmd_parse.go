// Copyright 2025 The CoordParse Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jcodagnone/coordparse/coords"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse coordinate strings read from stdin, one per line",
	Long: `Reads one coordinate string per line and prints it followed by the parsed
record, or by the reason it was rejected.

$ echo '(E 145°33ʹ/S 37°42ʹ)' | coordparse parse
(E 145°33ʹ/S 37°42ʹ)		{"latitude":-37.7,"longitude":145.55}
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		input := os.Stdin
		if isatty.IsTerminal(input.Fd()) {
			fmt.Fprintln(os.Stderr, "Enter coordinates to parse, one per line…")
		}

		return parseLines(input, cmd.OutOrStdout())
	},
}

func parseLines(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		raw := scanner.Text()

		rec, err := coords.Parse(raw)
		if err != nil {
			fmt.Fprintf(w, "%s\t%q\n", raw, err)

			continue
		}

		s, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling %q: %w", raw, err)
		}

		fmt.Fprintf(w, "%s\t\t%s\n", raw, s)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
