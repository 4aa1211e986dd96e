package extract

import (
	"context"
	"time"

	"marketsheet/internal/browser"
	"marketsheet/internal/sites"
)

const (
	trefacTitleSelector = "p.gdname.p-typo_head3_a"
	trefacPriceSelector = "p.gdprice_main.p-price1_a"
)

type Trefac struct{}

func (Trefac) Kind() sites.Kind { return sites.Trefac }

func (Trefac) Extract(ctx context.Context, session browser.Session, url string) Result {
	failure := Result{Label: TitleError, Price: PriceError}
	return scrape(ctx, session, sites.Trefac, url, failure, func(s *step) (Result, error) {
		if err := s.navigate(browser.WaitNetworkIdle); err != nil {
			return Result{}, err
		}

		title, err := s.text(trefacTitleSelector, UnknownTitle)
		if err != nil {
			return Result{}, err
		}

		if err := s.waitFor(trefacPriceSelector, 5*time.Second); err != nil {
			return Result{}, err
		}
		raw, err := s.text(trefacPriceSelector, "")
		if err != nil {
			return Result{}, err
		}

		return Result{Label: title, Price: digitsAndCommas(raw)}, nil
	})
}
