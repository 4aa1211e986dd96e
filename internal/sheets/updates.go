package sheets

import (
	"fmt"

	"google.golang.org/api/sheets/v4"
)

// Column is a writable column letter.
type Column string

const (
	ColumnTitle Column = "B"
	ColumnPrice Column = "D"
)

// CellUpdate writes Value into one cell addressed by 1-based row number.
type CellUpdate struct {
	Row    int
	Column Column
	Value  string
}

// A1 renders the cell as "<sheet>!<col><row>".
func (u CellUpdate) A1(sheetName string) string {
	return fmt.Sprintf("%s!%s%d", sheetName, u.Column, u.Row)
}

func valueRanges(sheetName string, updates []CellUpdate) []*sheets.ValueRange {
	data := make([]*sheets.ValueRange, 0, len(updates))
	for _, u := range updates {
		data = append(data, &sheets.ValueRange{
			Range:  u.A1(sheetName),
			Values: [][]interface{}{{u.Value}},
		})
	}
	return data
}
