package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// tabular is a header plus string rows, rendered as a terminal table or a
// markdown table.
type tabular struct {
	cols []string
	rows [][]string
}

func (t *tabular) append(row ...string) {
	t.rows = append(t.rows, row)
}

func renderTable(w io.Writer, t tabular) {
	if len(t.rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)

	header := make(table.Row, len(t.cols))
	for i, col := range t.cols {
		header[i] = col
	}
	tw.AppendHeader(header)

	for _, r := range t.rows {
		row := make(table.Row, len(r))
		for i, v := range r {
			row[i] = v
		}
		tw.AppendRow(row)
	}

	tw.Render()
}

func renderMarkdownTable(w io.Writer, t tabular) {
	if len(t.rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}

	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(t.cols, " | "))
	seps := make([]string, len(t.cols))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

	for _, r := range t.rows {
		values := make([]string, len(r))
		for i, v := range r {
			values[i] = escapeMarkdownCell(v)
		}
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(values, " | "))
	}
}

func escapeMarkdownCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
