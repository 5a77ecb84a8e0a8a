package model

import "strings"

// Dataset is the raw rectangular output of the file loader: named columns
// plus string-valued rows. The first line of the source file supplies the
// column names.
type Dataset struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the index of the named column, matching
// case-insensitively and ignoring surrounding whitespace. -1 if absent.
func (d *Dataset) ColumnIndex(name string) int {
	want := strings.TrimSpace(name)
	for i, c := range d.Columns {
		if strings.EqualFold(strings.TrimSpace(c), want) {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists.
func (d *Dataset) HasColumn(name string) bool {
	return d.ColumnIndex(name) >= 0
}

// Cell returns the trimmed value at (row, col), or "" when the column is
// absent or the row is ragged. Bank exports are rarely perfectly
// rectangular, so out-of-range access is a blank cell, not a panic.
func (d *Dataset) Cell(row, col int) string {
	if col < 0 || row < 0 || row >= len(d.Rows) {
		return ""
	}
	r := d.Rows[row]
	if col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// RowEmpty reports whether every cell in the row is blank.
func (d *Dataset) RowEmpty(row int) bool {
	if row < 0 || row >= len(d.Rows) {
		return true
	}
	for _, v := range d.Rows[row] {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
