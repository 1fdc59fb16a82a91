package main

// ---------------------------------------------------------------------------
// output.go — format flag, table rendering, CSV, output helpers
// ---------------------------------------------------------------------------

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// OutputFormat enumerates supported output formats.
type OutputFormat int

const (
	FormatTable OutputFormat = iota
	FormatJSON
	FormatCSV
)

// parseFormat converts a --format string to an OutputFormat.
func parseFormat(s string) OutputFormat {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "csv":
		return FormatCSV
	default:
		return FormatTable
	}
}

// ---------------------------------------------------------------------------
// Table renderer — auto-sized columns with box-drawing borders
// ---------------------------------------------------------------------------

// Table renders aligned, bordered tables to a writer.
type Table struct {
	headers []string
	rows    [][]string
	w       io.Writer
}

// NewTable creates a table with the given column headers.
func NewTable(w io.Writer, headers ...string) *Table {
	return &Table{headers: headers, w: w}
}

// AddRow appends a row. Values are matched positionally to headers.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(values) {
			row[i] = values[i]
		}
	}
	t.rows = append(t.rows, row)
}

// Render writes the table with box-drawing borders.
func (t *Table) Render() {
	if len(t.headers) == 0 {
		return
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	line := func(left, mid, right string) string {
		s := left
		for i, w := range widths {
			s += strings.Repeat("─", w+2)
			if i < len(widths)-1 {
				s += mid
			}
		}
		return s + right
	}

	printRow := func(cells []string) {
		fmt.Fprint(t.w, "│")
		for i, cell := range cells {
			fmt.Fprintf(t.w, " %-*s │", widths[i], cell)
		}
		fmt.Fprintln(t.w)
	}

	fmt.Fprintln(t.w, line("┌", "┬", "┐"))
	printRow(t.headers)
	fmt.Fprintln(t.w, line("├", "┼", "┤"))
	for _, row := range t.rows {
		printRow(row)
	}
	fmt.Fprintln(t.w, line("└", "┴", "┘"))
}

// ---------------------------------------------------------------------------
// CSV writer helper
// ---------------------------------------------------------------------------

func writeCSV(w io.Writer, headers []string, rows [][]string) {
	cw := csv.NewWriter(w)
	cw.Write(headers)
	for _, row := range rows {
		cw.Write(row)
	}
	cw.Flush()
}

// ---------------------------------------------------------------------------
// outputWriter — writes to file if --output is set, otherwise stdout
// ---------------------------------------------------------------------------

func outputWriter(path string) (*os.File, func()) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}
	}
	f, err := os.Create(path)
	if err != nil {
		errorf("opening output file %q: %v", path, err)
	}
	return f, func() { f.Close() }
}
