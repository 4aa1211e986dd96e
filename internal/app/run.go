package app

import (
	"context"
	"fmt"
	"time"

	"marketsheet/internal/browser"
	"marketsheet/internal/extract"
	"marketsheet/internal/notifications"
	"marketsheet/internal/processing"
	"marketsheet/internal/sheets"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Store is the spreadsheet side of a run.
type Store interface {
	ReadLinks(ctx context.Context) ([]string, error)
	ReadRows(ctx context.Context) ([]sheets.Row, error)
	WriteUpdates(ctx context.Context, updates []sheets.CellUpdate) error
}

// SessionFactory opens the browser session shared by every extraction of a run.
type SessionFactory func(ctx context.Context) (browser.Session, error)

type Extractor interface {
	Extract(ctx context.Context, session browser.Session, url string) extract.Result
}

type Notifier interface {
	NotifyRunSummary(ctx context.Context, report notifications.RunReport) error
}

type Runner struct {
	Store       Store
	OpenSession SessionFactory
	Extractor   Extractor
	// Notifier is optional.
	Notifier  Notifier
	SheetName string
}

type Summary struct {
	RunID     string
	Links     int
	Retained  int
	Extracted int
	Failed    int
	Updates   int
	Written   bool
	Duration  time.Duration
}

// Run reads the sheet, extracts every retained link in order and writes all
// resulting cells in one batch. Only store and browser startup errors are
// returned; extraction failures end up in the sheet as sentinel values.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	summary := Summary{RunID: uuid.NewString()}
	logger := log.With().Str("run_id", summary.RunID).Logger()
	ctx = logger.WithContext(ctx)

	finish := func() Summary {
		summary.Duration = time.Since(start)
		return summary
	}

	logger.Info().Str("sheet", r.SheetName).Msg("Starting run")

	links, err := r.Store.ReadLinks(ctx)
	if err != nil {
		return finish(), fmt.Errorf("read links: %w", err)
	}
	summary.Links = len(links)
	if len(links) == 0 {
		logger.Info().Msg("No links in sheet")
		return finish(), nil
	}

	rows, err := r.Store.ReadRows(ctx)
	if err != nil {
		return finish(), fmt.Errorf("read rows: %w", err)
	}

	retained := processing.FilterLinks(ctx, links, rows)
	summary.Retained = len(retained)
	if len(retained) == 0 {
		logger.Info().Msg("No matching rows found for updates.")
		return finish(), nil
	}

	results, err := r.extractAll(ctx, retained)
	if err != nil {
		return finish(), err
	}
	for _, res := range results {
		if res.Result.Failed() {
			summary.Failed++
		} else {
			summary.Extracted++
		}
	}

	updates := processing.Reconcile(ctx, results, rows)
	summary.Updates = len(updates)
	if len(updates) == 0 {
		logger.Info().Msg("No matching rows found for updates.")
		return finish(), nil
	}

	if err := r.Store.WriteUpdates(ctx, updates); err != nil {
		return finish(), fmt.Errorf("write updates: %w", err)
	}
	summary.Written = true

	logger.Info().
		Int("updates", summary.Updates).
		Int("failed", summary.Failed).
		Msg("Titles and prices have been written dynamically.")

	r.notify(ctx, finish())
	return finish(), nil
}

// extractAll runs one extraction at a time over a single session and closes
// the session before returning.
func (r *Runner) extractAll(ctx context.Context, links []string) ([]processing.Extracted, error) {
	session, err := r.OpenSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("open browser session: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("Failed to close browser session")
		}
	}()

	results := make([]processing.Extracted, 0, len(links))
	for i, link := range links {
		log.Ctx(ctx).Debug().
			Int("index", i+1).
			Int("total", len(links)).
			Str("url", link).
			Msg("Extracting")

		res := r.Extractor.Extract(ctx, session, link)
		results = append(results, processing.Extracted{URL: link, Result: res})
	}

	return results, nil
}

func (r *Runner) notify(ctx context.Context, s Summary) {
	if r.Notifier == nil {
		return
	}

	report := notifications.RunReport{
		RunID:     s.RunID,
		Sheet:     r.SheetName,
		Retained:  s.Retained,
		Extracted: s.Extracted,
		Failed:    s.Failed,
		Updates:   s.Updates,
		Duration:  s.Duration,
	}
	if err := r.Notifier.NotifyRunSummary(ctx, report); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("Failed to send run notification")
	}
}
