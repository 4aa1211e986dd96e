package extract

import (
	"context"
	"strings"
	"time"

	"marketsheet/internal/browser"
	"marketsheet/internal/sites"

	"github.com/rs/zerolog/log"
)

// Extractor pulls a label and price out of one site's listing page.
// Extract never fails: errors come back as the site's sentinel Result.
type Extractor interface {
	Kind() sites.Kind
	Extract(ctx context.Context, session browser.Session, url string) Result
}

// step carries one page through the extraction states.
type step struct {
	ctx   context.Context
	kind  sites.Kind
	url   string
	page  browser.Page
	state State
}

func (s *step) enter(state State) {
	s.state = state
	log.Ctx(s.ctx).Debug().
		Str("site", s.kind.String()).
		Str("url", s.url).
		Stringer("state", state).
		Msg("Extraction state")
}

func (s *step) navigate(wait browser.WaitPolicy) error {
	s.enter(Navigating)
	return s.page.Goto(s.ctx, s.url, wait)
}

func (s *step) waitFor(selector string, timeout time.Duration) error {
	s.enter(WaitingForSelector)
	return s.page.WaitForSelector(s.ctx, selector, timeout)
}

// text reads selector, substituting fallback for empty content.
func (s *step) text(selector, fallback string) (string, error) {
	t, err := s.page.Text(s.ctx, selector)
	if err != nil {
		return "", err
	}
	if t == "" {
		return fallback, nil
	}
	return t, nil
}

// scrape opens a page, runs rule on it and closes the page on every path.
// Any error from rule yields failure.
func scrape(ctx context.Context, session browser.Session, kind sites.Kind, url string, failure Result, rule func(*step) (Result, error)) Result {
	s := &step{ctx: ctx, kind: kind, url: url}
	s.enter(Pending)

	page, err := session.NewPage(ctx)
	if err != nil {
		return s.fail(failure, err)
	}
	defer func() {
		if err := page.Close(); err != nil {
			log.Ctx(ctx).Debug().Err(err).Str("url", url).Msg("Failed to close page")
		}
	}()
	s.page = page

	res, err := rule(s)
	if err != nil {
		return s.fail(failure, err)
	}

	s.enter(Extracted)
	res.State = Extracted
	log.Ctx(ctx).Info().
		Str("site", kind.String()).
		Str("url", url).
		Str("label", res.Label).
		Str("price", res.Price).
		Msg("Extracted listing")
	return res
}

func (s *step) fail(failure Result, err error) Result {
	log.Ctx(s.ctx).Warn().
		Err(err).
		Str("site", s.kind.String()).
		Str("url", s.url).
		Stringer("state", s.state).
		Msg("Extraction failed")
	s.enter(Failed)
	failure.State = Failed
	return failure
}

// digitsAndCommas drops everything except ASCII digits and commas.
func digitsAndCommas(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ',' {
			return r
		}
		return -1
	}, s))
}

// afterToken returns the segment following the first token, trimmed, or
// fallback when token is absent.
func afterToken(text, token, fallback string) string {
	if !strings.Contains(text, token) {
		return fallback
	}
	return strings.TrimSpace(strings.Split(text, token)[1])
}
