package main

import (
	"context"
	"time"

	"marketsheet/internal/app"
	"marketsheet/internal/browser"
	"marketsheet/internal/extract"
	"marketsheet/internal/notifications"
	"marketsheet/internal/sheets"

	"github.com/rs/zerolog/log"
)

func main() {
	start := time.Now()
	app.SetupEnvironment()

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx := context.Background()

	sheetsClient, err := sheets.NewClient(ctx, cfg.CredentialsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create sheets client")
	}

	runner := &app.Runner{
		Store: sheets.NewSheet(sheetsClient, cfg.SpreadsheetID, app.SheetName),
		OpenSession: func(ctx context.Context) (browser.Session, error) {
			chrome, err := browser.Launch(ctx, cfg.Browser)
			if err != nil {
				return nil, err
			}
			return chrome, nil
		},
		Extractor: extract.Default(),
		SheetName: app.SheetName,
	}
	if cfg.Ntfy.Enabled {
		runner.Notifier = notifications.NewClient(cfg.Ntfy.URL, cfg.Ntfy.Topic, true, cfg.Ntfy.Priority)
		log.Info().Str("topic", cfg.Ntfy.Topic).Msg("Notifications enabled")
	}

	summary, err := runner.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("run_id", summary.RunID).Msg("Run failed")
	}

	log.Info().
		Str("run_id", summary.RunID).
		Int("links", summary.Links).
		Int("retained", summary.Retained).
		Int("extracted", summary.Extracted).
		Int("failed", summary.Failed).
		Int("updates", summary.Updates).
		Bool("written", summary.Written).
		Msg("Run complete")

	log.Info().Msgf("Total execution time: %.3f minutes", time.Since(start).Minutes())
}
