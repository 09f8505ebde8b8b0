package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/quarry/internal/cli/output"
)

// renderRows prints a column/row report in the requested mode. JSON is
// the caller's business; each report encodes a typed struct there to
// keep its shape stable.
func renderRows(w io.Writer, mode output.OutputMode, cols []string, rows [][]string, noun string) error {
	switch mode {
	case output.ModeCSV:
		return renderRowsCSV(w, cols, rows)
	case output.ModeMarkdown:
		return renderRowsMarkdown(w, cols, rows, noun)
	default:
		return renderRowsTable(w, cols, rows, noun)
	}
}

func renderRowsTable(w io.Writer, cols []string, rows [][]string, noun string) error {
	if len(rows) == 0 {
		_, _ = fmt.Fprintf(w, "(0 %s)\n", noun)
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(cols))
	for i, col := range cols {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, cell := range row {
			tr[i] = cell
		}
		t.AppendRow(tr)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d %s)\n", len(rows), noun)
	return nil
}

func renderRowsCSV(w io.Writer, cols []string, rows [][]string) error {
	_, _ = fmt.Fprintln(w, strings.Join(cols, ","))
	for _, row := range rows {
		values := make([]string, len(row))
		for i, cell := range row {
			values[i] = escapeCSV(cell)
		}
		_, _ = fmt.Fprintln(w, strings.Join(values, ","))
	}
	return nil
}

func renderRowsMarkdown(w io.Writer, cols []string, rows [][]string, noun string) error {
	if len(rows) == 0 {
		_, _ = fmt.Fprintf(w, "(0 %s)\n", noun)
		return nil
	}

	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(cols, " | "))
	seps := make([]string, len(cols))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(row, " | "))
	}
	return nil
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
