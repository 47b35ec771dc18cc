package ledger

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// Client is the spreadsheet-shaped ledger surface the sync depends on:
// column-addressed reads, batch appends and point cell updates.
type Client interface {
	ReadColumn(ctx context.Context, spreadsheetID, readRange string) ([]string, error)
	Append(ctx context.Context, spreadsheetID, writeRange string, rows [][]interface{}) error
	UpdateCell(ctx context.Context, spreadsheetID, cell, value string) error
}

// Opener dials the ledger with the account's short-lived credential.
type Opener interface {
	Open(ctx context.Context, ts oauth2.TokenSource) (Client, error)
}

// SheetsOpener opens Google Sheets clients with per-account token sources.
type SheetsOpener struct{}

// NewSheetsOpener creates a new Sheets opener
func NewSheetsOpener() *SheetsOpener {
	return &SheetsOpener{}
}

// Open creates a Sheets API client for the token source.
func (o *SheetsOpener) Open(ctx context.Context, ts oauth2.TokenSource) (Client, error) {
	service, err := sheets.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}
	return &SheetsClient{service: service}, nil
}

// SheetsClient implements Client using the Google Sheets API.
type SheetsClient struct {
	service *sheets.Service
}

// ReadColumn returns the first cell of every row in the range as strings.
func (c *SheetsClient) ReadColumn(ctx context.Context, spreadsheetID, readRange string) ([]string, error) {
	response, err := c.service.Spreadsheets.Values.Get(spreadsheetID, readRange).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", readRange, err)
	}

	values := make([]string, 0, len(response.Values))
	for _, row := range response.Values {
		if len(row) == 0 {
			continue
		}
		values = append(values, fmt.Sprint(row[0]))
	}
	return values, nil
}

// Append writes rows to the end of the range in one batch, preserving order.
func (c *SheetsClient) Append(ctx context.Context, spreadsheetID, writeRange string, rows [][]interface{}) error {
	body := &sheets.ValueRange{Values: rows}
	_, err := c.service.Spreadsheets.Values.Append(spreadsheetID, writeRange, body).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append %d rows to %s: %w", len(rows), writeRange, err)
	}
	return nil
}

// UpdateCell overwrites a single cell.
func (c *SheetsClient) UpdateCell(ctx context.Context, spreadsheetID, cell, value string) error {
	body := &sheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err := c.service.Spreadsheets.Values.Update(spreadsheetID, cell, body).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update cell %s: %w", cell, err)
	}
	return nil
}
