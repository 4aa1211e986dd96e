package sheets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"marketsheet/internal/config"
	"marketsheet/internal/retry"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"
)

// ErrNoUpdates is returned by WriteUpdates when there is nothing to write.
var ErrNoUpdates = errors.New("no updates to write")

type valuesAPI interface {
	ReadSheet(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error)
	BatchUpdate(ctx context.Context, spreadsheetID string, data []*sheets.ValueRange, valueInputOption string) error
}

// Sheet is one named sheet of a spreadsheet laid out as title in B, URL in C
// and price in D.
type Sheet struct {
	api           valuesAPI
	spreadsheetID string
	name          string
	resilience    config.ResilienceConfig
}

func NewSheet(client *Client, spreadsheetID, name string) *Sheet {
	resilience := config.DefaultResilienceConfig
	resilience.SheetRead.Retryable = transientError
	resilience.SheetWrite.Retryable = transientError
	return newSheet(client, spreadsheetID, name, resilience)
}

// transientError lets rate limits, server errors, timeouts and connection
// failures be retried. Other API rejections and credential errors are final.
func transientError(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return retrieveErr.Response != nil && retrieveErr.Response.StatusCode >= http.StatusInternalServerError
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func newSheet(api valuesAPI, spreadsheetID, name string, resilience config.ResilienceConfig) *Sheet {
	return &Sheet{
		api:           api,
		spreadsheetID: spreadsheetID,
		name:          name,
		resilience:    resilience,
	}
}

func (s *Sheet) read(ctx context.Context, range_ string) ([][]interface{}, error) {
	return retry.WithRetry(ctx, s.resilience.SheetRead, func(ctx context.Context) ([][]interface{}, error) {
		return s.api.ReadSheet(ctx, s.spreadsheetID, range_)
	})
}

// ReadLinks returns every value of the URL column.
func (s *Sheet) ReadLinks(ctx context.Context) ([]string, error) {
	log.Debug().Str("sheet", s.name).Msg("Reading links")
	values, err := s.read(ctx, s.name+"!C:C")
	if err != nil {
		return nil, fmt.Errorf("read links: %w", err)
	}
	links := FlattenColumn(values)
	log.Debug().Int("links", len(links)).Msg("Retrieved links")
	return links, nil
}

// ReadRows returns the full row grid.
func (s *Sheet) ReadRows(ctx context.Context) ([]Row, error) {
	log.Debug().Str("sheet", s.name).Msg("Reading existing sheet data")
	values, err := s.read(ctx, s.name+"!A:Z")
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	log.Debug().Int("rows", len(values)).Msg("Retrieved existing sheet data")
	return RowsFromValues(values), nil
}

// WriteUpdates flushes all updates in a single batch call.
func (s *Sheet) WriteUpdates(ctx context.Context, updates []CellUpdate) error {
	if len(updates) == 0 {
		return ErrNoUpdates
	}

	data := valueRanges(s.name, updates)
	_, err := retry.WithRetry(ctx, s.resilience.SheetWrite, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.api.BatchUpdate(ctx, s.spreadsheetID, data, ValueInputRaw)
	})
	if err != nil {
		return fmt.Errorf("write %d updates: %w", len(updates), err)
	}

	log.Debug().
		Int("updates", len(updates)).
		Str("sheet", s.name).
		Msg("Batch update applied")
	return nil
}
