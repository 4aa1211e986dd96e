package processing

import (
	"context"
	"strings"

	"marketsheet/internal/sheets"
	"marketsheet/internal/sites"

	"github.com/rs/zerolog/log"
)

// FilterLinks keeps the links worth extracting: a supported site, a matching
// row, and no title on that row yet. Each distinct link is kept once.
func FilterLinks(ctx context.Context, links []string, rows []sheets.Row) []string {
	logger := log.Ctx(ctx)
	seen := make(map[string]bool, len(links))
	var retained []string

	for _, link := range links {
		if !sites.Supported(link) {
			logger.Info().Str("url", link).Msg("Skipping URL, not a supported site")
			continue
		}

		idx := sheets.FindRow(rows, link)
		if idx < 0 {
			logger.Info().Str("url", link).Msg("URL not found in rows")
			continue
		}

		if strings.TrimSpace(rows[idx].Title()) != "" {
			logger.Info().
				Str("url", link).
				Int("row", idx+1).
				Msg("Skipping already processed URL")
			continue
		}

		key := strings.TrimSpace(link)
		if seen[key] {
			logger.Debug().Str("url", link).Msg("Skipping repeated URL")
			continue
		}
		seen[key] = true
		retained = append(retained, link)
	}

	logger.Debug().
		Int("links", len(links)).
		Int("retained", len(retained)).
		Msg("Filtered links")

	return retained
}
