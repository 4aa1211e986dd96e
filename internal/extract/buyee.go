package extract

import (
	"context"
	"time"

	"marketsheet/internal/browser"
	"marketsheet/internal/sites"
)

const (
	buyeeDetailContainer = "div.mercari__attrContainer"
	buyeeTitleSelector   = "h1.m-goodsName"
	buyeePriceSelector   = "div.m-goodsDetail__price"
)

// Buyee pages render server side, so DOMContentLoaded is enough; the detail
// container wait gets a longer bound instead.
type Buyee struct{}

func (Buyee) Kind() sites.Kind { return sites.Buyee }

func (Buyee) Extract(ctx context.Context, session browser.Session, url string) Result {
	failure := Result{Label: TitleError, Price: PriceError}
	return scrape(ctx, session, sites.Buyee, url, failure, func(s *step) (Result, error) {
		if err := s.navigate(browser.WaitDOMContentLoaded); err != nil {
			return Result{}, err
		}

		if err := s.waitFor(buyeeDetailContainer, 8*time.Second); err != nil {
			return Result{}, err
		}
		title, err := s.text(buyeeTitleSelector, UnknownTitle)
		if err != nil {
			return Result{}, err
		}

		if err := s.waitFor(buyeePriceSelector, 5*time.Second); err != nil {
			return Result{}, err
		}
		raw, err := s.text(buyeePriceSelector, "")
		if err != nil {
			return Result{}, err
		}

		return Result{Label: title, Price: digitsAndCommas(raw)}, nil
	})
}
