package extract

import (
	"context"

	"marketsheet/internal/browser"
	"marketsheet/internal/sites"

	"github.com/rs/zerolog/log"
)

// Registry dispatches a URL to the extractor for its site.
type Registry map[sites.Kind]Extractor

func NewRegistry(extractors ...Extractor) Registry {
	r := make(Registry, len(extractors))
	for _, e := range extractors {
		r[e.Kind()] = e
	}
	return r
}

// Default returns a registry covering every supported site.
func Default() Registry {
	return NewRegistry(NetMall{}, Mercari{}, Trefac{}, Buyee{}, Yahoo{}, SecondStreet{})
}

func (r Registry) For(kind sites.Kind) (Extractor, bool) {
	e, ok := r[kind]
	return e, ok
}

// Extract classifies url and runs the matching extractor. A URL without an
// extractor gets the generic error pair and no page is opened.
func (r Registry) Extract(ctx context.Context, session browser.Session, url string) Result {
	kind := sites.Classify(url)
	e, ok := r.For(kind)
	if !ok {
		log.Ctx(ctx).Warn().Str("url", url).Stringer("site", kind).Msg("No extractor for URL")
		return Result{Label: TitleError, Price: PriceError, State: Failed}
	}
	return e.Extract(ctx, session, url)
}
