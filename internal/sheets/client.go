package sheets

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// ValueInputRaw stores values exactly as given.
const ValueInputRaw = "RAW"

type Client struct {
	service *sheets.Service
}

// NewClient authenticates with a service-account credentials file scoped to
// spreadsheet read/write. The first token is fetched here so a bad key or a
// revoked account fails before any sheet call.
func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials file %s: %w", credentialsFile, err)
	}
	if jwtConfig.Email == "" {
		return nil, fmt.Errorf("invalid credentials file %s: missing client_email", credentialsFile)
	}

	tokens := oauth2.ReuseTokenSource(nil, jwtConfig.TokenSource(ctx))
	if _, err := tokens.Token(); err != nil {
		return nil, fmt.Errorf("authenticate %s: %w", jwtConfig.Email, err)
	}

	service, err := sheets.NewService(ctx, option.WithTokenSource(tokens))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service: service,
	}, nil
}

func (c *Client) ReadSheet(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, range_).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	return resp.Values, nil
}

// BatchUpdate writes all ranges in one request. The API applies the batch
// as a whole or rejects it.
func (c *Client) BatchUpdate(ctx context.Context, spreadsheetID string, data []*sheets.ValueRange, valueInputOption string) error {
	req := &sheets.BatchUpdateValuesRequest{
		Data:             data,
		ValueInputOption: valueInputOption,
	}

	_, err := c.service.Spreadsheets.Values.BatchUpdate(spreadsheetID, req).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to batch update values: %w", err)
	}

	return nil
}
