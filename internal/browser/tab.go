package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// Lifecycle event names as reported by Page.lifecycleEvent.
const (
	domContentLoadedEvent = "DOMContentLoaded"
	loadEvent             = "load"
	// almostIdleEvent fires once no more than two connections have been
	// active for 500ms.
	almostIdleEvent = "networkAlmostIdle"
)

type chromePage struct {
	ctx               context.Context
	cancel            context.CancelFunc
	navigationTimeout time.Duration

	mu     sync.Mutex
	closed bool
}

// run executes actions in the tab, bounded by timeout and by the caller's ctx.
func (p *chromePage) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return ErrPageClosed
	}

	runCtx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

// lifecycleKey identifies one lifecycle event of one document.
type lifecycleKey struct {
	frame  cdp.FrameID
	loader cdp.LoaderID
	name   string
}

// lifecycleEvents lists what Goto waits for under each policy. Only events
// of the navigated frame and its new document count.
func lifecycleEvents(wait WaitPolicy) []string {
	if wait == WaitDOMContentLoaded {
		return []string{domContentLoadedEvent}
	}
	return []string{loadEvent, almostIdleEvent}
}

func (p *chromePage) Goto(ctx context.Context, url string, wait WaitPolicy) error {
	log.Ctx(ctx).Debug().
		Str("url", url).
		Stringer("wait", wait).
		Msg("Navigating")

	var (
		mu   sync.Mutex
		seen = make(map[lifecycleKey]bool)
	)
	changed := make(chan struct{}, 1)

	listenCtx, stopListening := context.WithCancel(p.ctx)
	defer stopListening()
	// The listener is registered before navigating so early events of the new
	// document are not missed.
	chromedp.ListenTarget(listenCtx, func(ev interface{}) {
		e, ok := ev.(*page.EventLifecycleEvent)
		if !ok {
			return
		}
		mu.Lock()
		seen[lifecycleKey{frame: e.FrameID, loader: e.LoaderID, name: e.Name}] = true
		mu.Unlock()
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	navigate := chromedp.ActionFunc(func(ctx context.Context) error {
		frameID, loaderID, errorText, err := page.Navigate(url).Do(ctx)
		if err != nil {
			return err
		}
		if errorText != "" {
			return fmt.Errorf("page load error %s", errorText)
		}
		// Same-document navigations create no new loader and no lifecycle.
		if loaderID == "" {
			return nil
		}

		wanted := lifecycleEvents(wait)
		for {
			mu.Lock()
			done := true
			for _, name := range wanted {
				if !seen[lifecycleKey{frame: frameID, loader: loaderID, name: name}] {
					done = false
					break
				}
			}
			mu.Unlock()
			if done {
				return nil
			}

			select {
			case <-changed:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	if err := p.run(ctx, p.navigationTimeout, navigate); err != nil {
		if errors.Is(err, ErrPageClosed) {
			return err
		}
		return fmt.Errorf("%w: %s: %v", ErrNavigation, url, err)
	}
	return nil
}

func (p *chromePage) WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error {
	err := p.run(ctx, timeout, chromedp.WaitReady(selector, chromedp.ByQuery))
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s after %s", ErrSelectorNotFound, selector, timeout)
	}
	return fmt.Errorf("wait for %s: %w", selector, err)
}

type textResult struct {
	Found bool   `json:"found"`
	Text  string `json:"text"`
}

func (p *chromePage) Text(ctx context.Context, selector string) (string, error) {
	quoted, err := json.Marshal(selector)
	if err != nil {
		return "", fmt.Errorf("quote selector: %w", err)
	}

	script := fmt.Sprintf(`(() => {
		const el = document.querySelector(%s);
		if (!el) { return {found: false, text: ""}; }
		return {found: true, text: (el.textContent || "").trim()};
	})()`, quoted)

	var res textResult
	if err := p.run(ctx, p.navigationTimeout, chromedp.Evaluate(script, &res)); err != nil {
		return "", fmt.Errorf("evaluate %s: %w", selector, err)
	}
	if !res.Found {
		return "", fmt.Errorf("%w: %s", ErrElementMissing, selector)
	}
	return res.Text, nil
}

// Close closes the tab. Safe to call more than once.
func (p *chromePage) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	p.cancel()
	return nil
}
