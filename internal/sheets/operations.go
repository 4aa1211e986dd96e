package sheets

import (
	"fmt"
	"strings"
)

// Column positions of a row, zero based.
const (
	TitleIndex = 1
	URLIndex   = 2
	PriceIndex = 3
)

// Row is one spreadsheet record as strings.
type Row []string

func (r Row) field(index int) string {
	if index < len(r) {
		return r[index]
	}
	return ""
}

func (r Row) Title() string { return r.field(TitleIndex) }

// URL is the join key between extraction results and rows.
func (r Row) URL() string { return r.field(URLIndex) }

func (r Row) Price() string { return r.field(PriceIndex) }

// RowsFromValues converts an API value grid into rows. Row i of the result is
// sheet row i+1.
func RowsFromValues(values [][]interface{}) []Row {
	rows := make([]Row, len(values))
	for i, raw := range values {
		row := make(Row, len(raw))
		for j, cell := range raw {
			row[j] = extractStringField(cell)
		}
		rows[i] = row
	}
	return rows
}

// FlattenColumn turns a single-column grid into a list. Empty rows
// contribute nothing.
func FlattenColumn(values [][]interface{}) []string {
	var out []string
	for _, raw := range values {
		for _, cell := range raw {
			out = append(out, extractStringField(cell))
		}
	}
	return out
}

// FindRow returns the index of the first row whose URL equals url after
// trimming both sides, or -1.
func FindRow(rows []Row, url string) int {
	url = strings.TrimSpace(url)
	for i, row := range rows {
		if strings.TrimSpace(row.URL()) == url {
			return i
		}
	}
	return -1
}

func extractStringField(cell interface{}) string {
	if cell == nil {
		return ""
	}
	return fmt.Sprintf("%v", cell)
}
