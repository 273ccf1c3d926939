package sheet

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client reads the product worksheet through the Google Sheets API.
// The worksheet title is discovered from spreadsheet metadata on first
// use and reused for the process lifetime.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	readRange     string
	timeout       time.Duration
	log           zerolog.Logger

	mu        sync.Mutex
	worksheet string
}

func NewClient(ctx context.Context, spreadsheetID, apiKey, readRange string, timeout time.Duration, log zerolog.Logger) (*Client, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("sheet: SHEET_ID is required")
	}
	svc, err := sheets.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("sheet: init service: %w", err)
	}
	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
		timeout:       timeout,
		log:           log,
	}, nil
}

// FetchRows returns the raw cell values of the data range. Any failure
// to reach the API is fatal to the current pass; callers retry on the
// next cache miss.
func (c *Client) FetchRows(ctx context.Context) ([][]any, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	title, err := c.worksheetTitle(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.svc.Spreadsheets.Values.
		Get(c.spreadsheetID, fmt.Sprintf("%s!%s", title, c.readRange)).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheet: fetch %s: %w", c.readRange, err)
	}

	rows := make([][]any, len(resp.Values))
	for i, r := range resp.Values {
		rows[i] = r
	}
	c.log.Debug().Int("rows", len(rows)).Str("worksheet", title).Msg("sheet fetched")
	return rows, nil
}

func (c *Client) worksheetTitle(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.worksheet != "" {
		return c.worksheet, nil
	}

	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("sheet: metadata: %w", err)
	}
	if len(meta.Sheets) == 0 {
		return "", fmt.Errorf("sheet: spreadsheet %s has no worksheets", c.spreadsheetID)
	}

	c.worksheet = meta.Sheets[0].Properties.Title
	c.log.Info().Str("worksheet", c.worksheet).Msg("worksheet resolved")
	return c.worksheet, nil
}
