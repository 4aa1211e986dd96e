package app

import (
	"errors"
	"fmt"

	"marketsheet/internal/browser"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// SheetName is the sheet holding the listings.
const SheetName = "testing"

var ErrMissingConfig = errors.New("missing required configuration")

type Config struct {
	SpreadsheetID   string
	CredentialsFile string
	Browser         browser.Options
	Ntfy            NtfyConfig
}

type NtfyConfig struct {
	Enabled  bool
	URL      string
	Topic    string
	Priority string
}

// LoadConfig reads configuration from the process environment.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json")
	v.SetDefault("BROWSER_HEADLESS", true)
	v.SetDefault("NAVIGATION_TIMEOUT", browser.DefaultNavigationTimeout)
	v.SetDefault("NTFY_ENABLED", false)
	v.SetDefault("NTFY_URL", "https://ntfy.sh")
	v.SetDefault("NTFY_TOPIC", "marketsheet")

	spreadsheetID := v.GetString("SPREADSHEET_ID")
	if spreadsheetID == "" {
		return Config{}, fmt.Errorf("%w: SPREADSHEET_ID", ErrMissingConfig)
	}

	navTimeout := v.GetDuration("NAVIGATION_TIMEOUT")
	if navTimeout <= 0 {
		log.Warn().
			Str("value", v.GetString("NAVIGATION_TIMEOUT")).
			Dur("default", browser.DefaultNavigationTimeout).
			Msg("Invalid NAVIGATION_TIMEOUT, using default")
		navTimeout = browser.DefaultNavigationTimeout
	}

	cfg := Config{
		SpreadsheetID:   spreadsheetID,
		CredentialsFile: v.GetString("GOOGLE_CREDENTIALS_FILE"),
		Browser: browser.Options{
			Headless:          v.GetBool("BROWSER_HEADLESS"),
			ExecPath:          v.GetString("CHROME_PATH"),
			NavigationTimeout: navTimeout,
		},
		Ntfy: NtfyConfig{
			Enabled:  v.GetBool("NTFY_ENABLED"),
			URL:      v.GetString("NTFY_URL"),
			Topic:    v.GetString("NTFY_TOPIC"),
			Priority: v.GetString("NTFY_PRIORITY"),
		},
	}

	log.Debug().
		Str("credentials_file", cfg.CredentialsFile).
		Bool("headless", cfg.Browser.Headless).
		Bool("ntfy_enabled", cfg.Ntfy.Enabled).
		Msg("Configuration loaded")

	return cfg, nil
}
