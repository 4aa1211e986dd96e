package extract

import (
	"context"
	"time"

	"marketsheet/internal/browser"
	"marketsheet/internal/sites"
)

const (
	mercariTitleSelector     = "h1.heading__a7d91561.page__a7d91561"
	mercariPriceContainer    = `div[data-testid="price"]`
	mercariPriceTextSelector = `div[data-testid="price"] span:not([class])`
)

type Mercari struct{}

func (Mercari) Kind() sites.Kind { return sites.Mercari }

func (Mercari) Extract(ctx context.Context, session browser.Session, url string) Result {
	failure := Result{Label: MercariTitleError, Price: MercariPriceError}
	return scrape(ctx, session, sites.Mercari, url, failure, func(s *step) (Result, error) {
		if err := s.navigate(browser.WaitNetworkIdle); err != nil {
			return Result{}, err
		}

		title, err := s.text(mercariTitleSelector, MercariTitleError)
		if err != nil {
			return Result{}, err
		}

		if err := s.waitFor(mercariPriceContainer, 5*time.Second); err != nil {
			return Result{}, err
		}
		// The currency sign sits in a classed span; the amount is the bare one.
		price, err := s.text(mercariPriceTextSelector, UnknownPrice)
		if err != nil {
			return Result{}, err
		}

		return Result{Label: title, Price: price}, nil
	})
}
