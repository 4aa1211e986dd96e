package browser

import (
	"os"
	"time"

	"github.com/chromedp/chromedp"
)

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36"

// DefaultNavigationTimeout matches the navigation bound of common browser
// automation tools.
const DefaultNavigationTimeout = 30 * time.Second

type Options struct {
	Headless          bool
	ExecPath          string
	UserAgent         string
	NavigationTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.UserAgent == "" {
		o.UserAgent = defaultUserAgent
	}
	if o.NavigationTimeout <= 0 {
		o.NavigationTimeout = DefaultNavigationTimeout
	}
	return o
}

// allocatorOptions returns exec allocator flags that work both locally and in containers.
func allocatorOptions(o Options) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-features", "site-per-process,TranslateUI"),
		chromedp.Flag("disable-renderer-backgrounding", true),
		chromedp.Flag("window-size", "1920,1080"),
		chromedp.UserAgent(o.UserAgent),
	)

	if o.Headless {
		opts = append(opts, chromedp.Flag("headless", "new"))
	} else {
		opts = append(opts, chromedp.Flag("headless", false))
	}

	if o.ExecPath != "" {
		return append(opts, chromedp.ExecPath(o.ExecPath))
	}

	if path := findChrome(); path != "" {
		opts = append(opts, chromedp.ExecPath(path))
	}

	return opts
}

var chromePaths = []string{
	"/headless-shell/headless-shell", // chromedp/headless-shell
	"/usr/bin/chromium-browser",
	"/usr/bin/chromium",
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
}

// findChrome returns the first well-known browser binary present, or "" to
// let chromedp search PATH.
func findChrome() string {
	for _, p := range chromePaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// blockedURLs keeps heavy resources out of the tab; extraction only reads the DOM.
var blockedURLs = []string{
	"*.png", "*.jpg", "*.jpeg", "*.gif", "*.webp", "*.svg", "*.ico",
	"*.mp4", "*.webm",
	"*.woff", "*.woff2", "*.ttf", "*.otf",
	"*google-analytics*", "*googletagmanager*", "*doubleclick*",
}

const stealthScript = `
	Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
	Object.defineProperty(navigator, 'languages', { get: () => ['ja-JP', 'ja', 'en-US', 'en'] });
	if (!window.chrome) { window.chrome = {}; }
	if (!window.chrome.runtime) { window.chrome.runtime = {}; }
`
