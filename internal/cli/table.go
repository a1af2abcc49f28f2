package cli

import (
	"strings"
)

// Table is a simple column-aligned table formatter. Column widths grow to
// fit the widest cell.
type Table struct {
	headers []string
	rows    [][]string
	padding int
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		padding: 2,
	}
}

// AddRow adds a row to the table. Short rows are padded to the header count;
// long rows are truncated.
func (t *Table) AddRow(row []string) {
	if len(row) != len(t.headers) {
		adjusted := make([]string, len(t.headers))
		copy(adjusted, row)
		t.rows = append(t.rows, adjusted)
		return
	}
	t.rows = append(t.rows, row)
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
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

	gap := strings.Repeat(" ", t.padding)

	var result strings.Builder

	parts := make([]string, len(t.headers))
	for i, h := range t.headers {
		parts[i] = padRight(h, widths[i])
	}
	result.WriteString(strings.Join(parts, gap))
	result.WriteString("\n")

	for i, w := range widths {
		parts[i] = strings.Repeat("-", w)
	}
	result.WriteString(strings.Join(parts, gap))
	result.WriteString("\n")

	for _, row := range t.rows {
		for i, cell := range row {
			parts[i] = padRight(cell, widths[i])
		}
		result.WriteString(strings.Join(parts, gap))
		result.WriteString("\n")
	}

	return result.String()
}

// padRight pads a string with spaces on the right to reach the desired width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
