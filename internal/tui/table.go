package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// TableColumn defines a column in a table.
type TableColumn struct {
	Name  string
	Width int
	Align Alignment
}

// Alignment defines text alignment in a column.
type Alignment int

// Alignment constants.
const (
	AlignLeft Alignment = iota
	AlignRight
)

// Table provides styled fixed-width table rendering.
type Table struct {
	w       io.Writer
	header  lipgloss.Style
	columns []TableColumn
}

// NewTable creates a table with the given columns.
func NewTable(w io.Writer, columns []TableColumn) *Table {
	return &Table{
		w:       w,
		header:  StyleBold,
		columns: columns,
	}
}

// WriteHeader writes the table header row.
func (t *Table) WriteHeader() {
	header := ""
	for i, col := range t.columns {
		if i > 0 {
			header += " "
		}
		header += fmt.Sprintf(t.formatSpec(col, 0), col.Name)
	}
	_, _ = fmt.Fprintln(t.w, t.header.Render(header))
}

// WriteRow writes a data row, truncating oversized cells.
func (t *Table) WriteRow(values ...string) {
	row := ""
	for i, col := range t.columns {
		if i > 0 {
			row += " "
		}
		value := ""
		if i < len(values) {
			value = values[i]
		}
		if col.Width > 1 && len(value) > col.Width {
			value = value[:col.Width-1] + "…"
		}
		row += fmt.Sprintf(t.formatSpec(col, 0), value)
	}
	_, _ = fmt.Fprintln(t.w, row)
}

// WriteStyledRow writes a row with one ANSI-styled cell, widening that
// column so escape codes don't break alignment.
func (t *Table) WriteStyledRow(values []string, styledIndex int, styledValue, plainValue string) {
	row := ""
	for i, col := range t.columns {
		if i > 0 {
			row += " "
		}
		if i == styledIndex {
			offset := len(styledValue) - len(plainValue)
			row += fmt.Sprintf(t.formatSpec(col, offset), styledValue)
			continue
		}
		value := ""
		if i < len(values) {
			value = values[i]
		}
		if col.Width > 1 && len(value) > col.Width {
			value = value[:col.Width-1] + "…"
		}
		row += fmt.Sprintf(t.formatSpec(col, 0), value)
	}
	_, _ = fmt.Fprintln(t.w, row)
}

// formatSpec returns the printf specifier for a column, with the width
// widened by offset to absorb ANSI escape codes.
func (t *Table) formatSpec(col TableColumn, offset int) string {
	width := col.Width + offset
	if col.Align == AlignRight {
		return fmt.Sprintf("%%%ds", width)
	}
	return fmt.Sprintf("%%-%ds", width)
}
