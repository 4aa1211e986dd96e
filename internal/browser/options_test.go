package browser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOptionsWithDefaults(t *testing.T) {
	t.Parallel()

	o := Options{}.withDefaults()
	assert.Equal(t, defaultUserAgent, o.UserAgent)
	assert.Equal(t, DefaultNavigationTimeout, o.NavigationTimeout)

	o = Options{UserAgent: "ua", NavigationTimeout: time.Second}.withDefaults()
	assert.Equal(t, "ua", o.UserAgent)
	assert.Equal(t, time.Second, o.NavigationTimeout)
}

func TestAllocatorOptions_ExecPathOverride(t *testing.T) {
	t.Parallel()

	base := len(allocatorOptions(Options{Headless: true, ExecPath: "/opt/chrome"}.withDefaults()))
	// An explicit path skips probing, so the option count is stable.
	assert.Equal(t, base, len(allocatorOptions(Options{Headless: false, ExecPath: "/opt/chrome"}.withDefaults())))
}

func TestWaitPolicyString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "networkidle", WaitNetworkIdle.String())
	assert.Equal(t, "domcontentloaded", WaitDOMContentLoaded.String())
}

func TestLifecycleEvents(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"DOMContentLoaded"}, lifecycleEvents(WaitDOMContentLoaded))
	assert.Equal(t, []string{"load", "networkAlmostIdle"}, lifecycleEvents(WaitNetworkIdle))
}
