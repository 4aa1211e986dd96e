package extract

import (
	"context"

	"marketsheet/internal/browser"
	"marketsheet/internal/sites"
)

const yahooTitleSelector = "h1.ProductTitle__text"

// Yahoo extracts only the auction title; the price cell gets UnknownPrice.
type Yahoo struct{}

func (Yahoo) Kind() sites.Kind { return sites.Yahoo }

func (Yahoo) Extract(ctx context.Context, session browser.Session, url string) Result {
	failure := Result{Label: YahooTitleError, Price: UnknownPrice}
	return scrape(ctx, session, sites.Yahoo, url, failure, func(s *step) (Result, error) {
		if err := s.navigate(browser.WaitNetworkIdle); err != nil {
			return Result{}, err
		}

		title, err := s.text(yahooTitleSelector, UnknownTitle)
		if err != nil {
			return Result{}, err
		}

		return Result{Label: title, Price: UnknownPrice}, nil
	})
}
