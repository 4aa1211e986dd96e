package extract

import (
	"context"

	"marketsheet/internal/browser"
	"marketsheet/internal/sites"

	"github.com/rs/zerolog/log"
)

// SecondStreet is recognised but not scraped. It never opens a page.
type SecondStreet struct{}

func (SecondStreet) Kind() sites.Kind { return sites.SecondStreet }

func (SecondStreet) Extract(ctx context.Context, _ browser.Session, url string) Result {
	log.Ctx(ctx).Info().Str("url", url).Msg("Skipping URL, 2ndstreet pages are not scraped")
	return Result{Label: Untitled, Price: NoPrice, State: Extracted}
}
