// Package tables parses pipe-delimited markdown tables out of free text.
//
// The parser accepts the ragged output real language models produce: rows with
// fewer cells than the header are padded with empty strings, rows with more cells
// are truncated. Header names are trimmed and serve as stable column keys for
// named-column lookup downstream.
package tables

import "strings"

// Table is a parsed pipe table: trimmed header names plus data rows normalized to
// the header width.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Empty reports whether no table was parsed.
func (t Table) Empty() bool {
	return len(t.Headers) == 0
}

// Column returns the index of the named header (case-insensitive), or -1.
func (t Table) Column(name string) int {
	for i, h := range t.Headers {
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}

// Cell returns the cell at row r under the named header, or empty string.
func (t Table) Cell(r int, header string) string {
	c := t.Column(header)
	if c < 0 || r < 0 || r >= len(t.Rows) {
		return ""
	}
	return t.Rows[r][c]
}

// Extract parses the first pipe-delimited table found in raw text. A table is a
// header row, a separator row of dashes/colons, then zero or more data rows. The
// separator row confirms the table boundary and is otherwise ignored. Returns the
// zero Table when no table is present.
func Extract(raw string) Table {
	all := ExtractAll(raw)
	if len(all) == 0 {
		return Table{}
	}
	return all[0]
}

// ExtractAll parses every pipe table in raw text, in order of appearance.
func ExtractAll(raw string) []Table {
	lines := strings.Split(raw, "\n")
	var tables []Table

	for i := 0; i < len(lines)-1; i++ {
		if !isPipeRow(lines[i]) || !isSeparatorRow(lines[i+1]) {
			continue
		}
		headers := splitRow(lines[i])
		if len(headers) == 0 {
			continue
		}

		t := Table{Headers: headers, Rows: make([][]string, 0)}
		j := i + 2
		for ; j < len(lines); j++ {
			if !isPipeRow(lines[j]) {
				break
			}
			t.Rows = append(t.Rows, normalizeRow(splitRow(lines[j]), len(headers)))
		}
		tables = append(tables, t)
		i = j - 1
	}
	return tables
}

// isPipeRow reports whether a line looks like a table row: a leading pipe after
// optional indentation and at least one more pipe.
func isPipeRow(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "|") && strings.Count(trimmed, "|") >= 2
}

// isSeparatorRow reports whether a line is a markdown header separator, i.e. pipe
// cells containing only dashes, colons and spaces with at least one dash.
func isSeparatorRow(line string) bool {
	if !isPipeRow(line) {
		return false
	}
	sawDash := false
	for _, r := range strings.TrimSpace(line) {
		switch r {
		case '|', ':', ' ', '\t':
		case '-':
			sawDash = true
		default:
			return false
		}
	}
	return sawDash
}

// splitRow splits a pipe row into trimmed cells, dropping the empty leading and
// trailing fields produced by the outer pipes.
func splitRow(line string) []string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")
	parts := strings.Split(trimmed, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

// normalizeRow pads or truncates cells to the header width. Missing cells become
// empty strings; extra cells are dropped.
func normalizeRow(cells []string, width int) []string {
	row := make([]string, width)
	for i := 0; i < width; i++ {
		if i < len(cells) {
			row[i] = cells[i]
		}
	}
	return row
}
