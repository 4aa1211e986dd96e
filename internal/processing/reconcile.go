package processing

import (
	"context"

	"marketsheet/internal/extract"
	"marketsheet/internal/sheets"

	"github.com/rs/zerolog/log"
)

// Extracted pairs a link with what was pulled from its page.
type Extracted struct {
	URL    string
	Result extract.Result
}

// Reconcile maps results onto rows by URL. A matched result yields a title
// update followed by a price update on the first matching row. Results with
// no row are dropped.
func Reconcile(ctx context.Context, results []Extracted, rows []sheets.Row) []sheets.CellUpdate {
	var updates []sheets.CellUpdate

	for _, r := range results {
		idx := sheets.FindRow(rows, r.URL)
		if idx < 0 {
			log.Ctx(ctx).Debug().Str("url", r.URL).Msg("No row for extracted URL")
			continue
		}

		row := idx + 1
		updates = append(updates,
			sheets.CellUpdate{Row: row, Column: sheets.ColumnTitle, Value: r.Result.Label},
			sheets.CellUpdate{Row: row, Column: sheets.ColumnPrice, Value: r.Result.Price},
		)
	}

	return updates
}
