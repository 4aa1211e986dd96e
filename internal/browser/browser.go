package browser

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNavigation       = errors.New("navigation failed")
	ErrSelectorNotFound = errors.New("selector did not appear before timeout")
	ErrElementMissing   = errors.New("no element matches selector")
	ErrPageClosed       = errors.New("page is closed")
)

// WaitPolicy selects the page lifecycle point Goto waits for.
type WaitPolicy int

const (
	// WaitNetworkIdle waits until the page has at most two open connections
	// for half a second. Use it for sites that render client side.
	WaitNetworkIdle WaitPolicy = iota
	WaitDOMContentLoaded
)

func (w WaitPolicy) String() string {
	if w == WaitDOMContentLoaded {
		return "domcontentloaded"
	}
	return "networkidle"
}

// Session is one browser shared by every extraction of a run.
type Session interface {
	NewPage(ctx context.Context) (Page, error)
	Close() error
}

// Page is a single tab. It is owned by exactly one extraction and must be
// closed by it.
type Page interface {
	Goto(ctx context.Context, url string, wait WaitPolicy) error
	WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error
	// Text returns the trimmed text content of the first element matching
	// selector, or ErrElementMissing.
	Text(ctx context.Context, selector string) (string, error)
	Close() error
}
