package extract

import (
	"context"
	"time"

	"marketsheet/internal/browser"
	"marketsheet/internal/sites"
)

const (
	netmallModelSelector = "p.product-detail-num"
	netmallPriceSelector = "span.product-detail-price__main"
	// netmallModelToken precedes the model number in the detail line.
	netmallModelToken = "型番："
)

// NetMall reads the model number and price from Hard Off NetMall.
type NetMall struct{}

func (NetMall) Kind() sites.Kind { return sites.NetMall }

func (NetMall) Extract(ctx context.Context, session browser.Session, url string) Result {
	failure := Result{Label: TitleError, Price: PriceError}
	return scrape(ctx, session, sites.NetMall, url, failure, func(s *step) (Result, error) {
		if err := s.navigate(browser.WaitNetworkIdle); err != nil {
			return Result{}, err
		}

		detail, err := s.text(netmallModelSelector, "")
		if err != nil {
			return Result{}, err
		}
		model := afterToken(detail, netmallModelToken, UnknownModel)

		if err := s.waitFor(netmallPriceSelector, 5*time.Second); err != nil {
			return Result{}, err
		}
		price, err := s.text(netmallPriceSelector, UnknownPrice)
		if err != nil {
			return Result{}, err
		}

		return Result{Label: model, Price: price}, nil
	})
}
