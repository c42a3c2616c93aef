package mirror

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// Client is the row-level contract against the external mirror. The
// mirror is addressed by position, not by key: implementations locate a
// row by scanning the ticket-id column before updating or deleting it.
type Client interface {
	AppendRow(ctx context.Context, row []string) error
	UpsertRow(ctx context.Context, ticketID string, row []string) error
	DeleteRow(ctx context.Context, ticketID string) error
}

// SheetsClient mirrors task rows into a Google Sheets spreadsheet.
type SheetsClient struct {
	srv           *sheets.Service
	spreadsheetID string
	sheetName     string
}

func NewSheetsClient(ctx context.Context, credentialsFile, spreadsheetID, sheetName string) (*SheetsClient, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read sheets credentials file %s: %w", credentialsFile, err)
	}
	creds, err := google.CredentialsFromJSON(ctx, b, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse sheets credentials: %w", err)
	}
	srv, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("unable to build sheets service: %w", err)
	}
	return &SheetsClient{srv: srv, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

func cells(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}

// AppendRow inserts the row directly under the header, shifting existing
// rows down so the newest entries stay on top.
func (c *SheetsClient) AppendRow(ctx context.Context, row []string) error {
	gid, err := c.sheetGid(ctx)
	if err != nil {
		return err
	}
	insert := &sheets.Request{
		InsertDimension: &sheets.InsertDimensionRequest{
			Range: &sheets.DimensionRange{
				SheetId:    gid,
				Dimension:  "ROWS",
				StartIndex: 1,
				EndIndex:   2,
			},
			InheritFromBefore: false,
		},
	}
	_, err = c.srv.Spreadsheets.BatchUpdate(c.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{insert},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("insert row: %w", err)
	}

	body := &sheets.ValueRange{Values: [][]interface{}{cells(row)}}
	_, err = c.srv.Spreadsheets.Values.
		Update(c.spreadsheetID, fmt.Sprintf("%s!A2:K2", c.sheetName), body).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	return nil
}

// UpsertRow rewrites the row keyed by ticketID in place; a ticket the
// mirror has never seen is appended instead.
func (c *SheetsClient) UpsertRow(ctx context.Context, ticketID string, row []string) error {
	rowIndex, found, err := c.findRowIndex(ctx, ticketID)
	if err != nil {
		return err
	}
	if !found {
		return c.AppendRow(ctx, row)
	}
	body := &sheets.ValueRange{Values: [][]interface{}{cells(row)}}
	_, err = c.srv.Spreadsheets.Values.
		Update(c.spreadsheetID, fmt.Sprintf("%s!A%d:K%d", c.sheetName, rowIndex+1, rowIndex+1), body).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update row for ticket %s: %w", ticketID, err)
	}
	return nil
}

func (c *SheetsClient) DeleteRow(ctx context.Context, ticketID string) error {
	rowIndex, found, err := c.findRowIndex(ctx, ticketID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("ticket %s not found in sheet %s", ticketID, c.sheetName)
	}
	gid, err := c.sheetGid(ctx)
	if err != nil {
		return err
	}
	del := &sheets.Request{
		DeleteDimension: &sheets.DeleteDimensionRequest{
			Range: &sheets.DimensionRange{
				SheetId:    gid,
				Dimension:  "ROWS",
				StartIndex: int64(rowIndex),
				EndIndex:   int64(rowIndex) + 1,
			},
		},
	}
	_, err = c.srv.Spreadsheets.BatchUpdate(c.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{del},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("delete row for ticket %s: %w", ticketID, err)
	}
	return nil
}

// findRowIndex scans column C of the whole sheet; the mirror has no key
// index of its own.
func (c *SheetsClient) findRowIndex(ctx context.Context, ticketID string) (int, bool, error) {
	resp, err := c.srv.Spreadsheets.Values.
		Get(c.spreadsheetID, fmt.Sprintf("%s!A:K", c.sheetName)).
		Context(ctx).Do()
	if err != nil {
		return 0, false, fmt.Errorf("read sheet: %w", err)
	}
	for i, row := range resp.Values {
		if len(row) > ticketIDColumn {
			if v, ok := row[ticketIDColumn].(string); ok && v == ticketID {
				return i, true, nil
			}
		}
	}
	return 0, false, nil
}

func (c *SheetsClient) sheetGid(ctx context.Context) (int64, error) {
	spreadsheet, err := c.srv.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("read spreadsheet: %w", err)
	}
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == c.sheetName {
			return sheet.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("sheet %q not found", c.sheetName)
}
