package browser

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// StaticSession serves pages from in-memory HTML instead of a live browser.
// Selectors are evaluated with goquery, so pages behave as if fully rendered.
type StaticSession struct {
	mu      sync.Mutex
	pages   map[string]string
	opened  int
	closed  int
	visited []string
	done    bool
}

func NewStaticSession(pages map[string]string) *StaticSession {
	return &StaticSession{pages: pages}
}

func (s *StaticSession) NewPage(ctx context.Context) (Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return nil, fmt.Errorf("open tab: session closed")
	}
	s.opened++
	return &staticPage{session: s}, nil
}

func (s *StaticSession) Close() error {
	s.mu.Lock()
	s.done = true
	s.mu.Unlock()
	return nil
}

// Opened returns how many pages were opened.
func (s *StaticSession) Opened() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opened
}

// Closed returns how many pages were closed.
func (s *StaticSession) Closed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Visited returns the URLs passed to Goto, in order.
func (s *StaticSession) Visited() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.visited...)
}

// IsClosed reports whether Close was called on the session.
func (s *StaticSession) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

type staticPage struct {
	session *StaticSession
	doc     *goquery.Document
	closed  bool
}

func (p *staticPage) Goto(ctx context.Context, url string, _ WaitPolicy) error {
	if p.closed {
		return ErrPageClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	p.session.mu.Lock()
	p.session.visited = append(p.session.visited, url)
	html, ok := p.session.pages[url]
	p.session.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s: no such page", ErrNavigation, url)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNavigation, url, err)
	}
	p.doc = doc
	return nil
}

// WaitForSelector never sleeps: a static document cannot change, so a
// missing selector times out immediately.
func (p *staticPage) WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error {
	if p.closed {
		return ErrPageClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.doc == nil || p.doc.Find(selector).Length() == 0 {
		return fmt.Errorf("%w: %s after %s", ErrSelectorNotFound, selector, timeout)
	}
	return nil
}

func (p *staticPage) Text(ctx context.Context, selector string) (string, error) {
	if p.closed {
		return "", ErrPageClosed
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.doc == nil {
		return "", fmt.Errorf("%w: %s", ErrElementMissing, selector)
	}
	sel := p.doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", fmt.Errorf("%w: %s", ErrElementMissing, selector)
	}
	return strings.TrimSpace(sel.Text()), nil
}

func (p *staticPage) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	p.session.mu.Lock()
	p.session.closed++
	p.session.mu.Unlock()
	return nil
}
