// Package sheets is the adapter for the hosted table store: one spreadsheet
// with an Incomes sheet and an Expenses sheet, each row mirroring a local row.
package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"fintrack/internal/core"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	incomesSheet  string
	expensesSheet string
}

// NewFromEnv builds a client from environment variables.
// Required: SPREADSHEET_ID plus service-account credentials via
// SERVICE_ACCOUNT_JSON, SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS.
// Optional sheet names: INCOMES_SHEET_NAME (default "Incomes"),
// EXPENSES_SHEET_NAME (default "Expenses").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing SPREADSHEET_ID")
	}

	incomes := strings.TrimSpace(os.Getenv("INCOMES_SHEET_NAME"))
	if incomes == "" {
		incomes = "Incomes"
	}
	expenses := strings.TrimSpace(os.Getenv("EXPENSES_SHEET_NAME"))
	if expenses == "" {
		expenses = "Expenses"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		incomesSheet:  incomes,
		expensesSheet: expenses,
	}, nil
}

// newSheetsService prefers service-account credentials; a user OAuth token
// minted by cmd/fintrack-oauth works as a fallback for personal accounts.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	saJSON := strings.TrimSpace(os.Getenv("SERVICE_ACCOUNT_JSON"))
	saFile := strings.TrimSpace(os.Getenv("SERVICE_ACCOUNT_FILE"))
	if saJSON == "" && saFile == "" {
		saFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case saJSON != "":
		credentialsJSON = []byte(saJSON)
	case saFile != "":
		b, err := os.ReadFile(saFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
	default:
		return newOAuthService(ctx)
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// newOAuthService builds the service from an OAuth client plus a stored user
// token (see cmd/fintrack-oauth).
func newOAuthService(ctx context.Context) (*gsheet.Service, error) {
	clientJSON := strings.TrimSpace(os.Getenv("GOOGLE_OAUTH_CLIENT_JSON"))
	clientFile := strings.TrimSpace(os.Getenv("GOOGLE_OAUTH_CLIENT_FILE"))

	var b []byte
	var err error
	switch {
	case clientJSON != "":
		b = []byte(clientJSON)
	case clientFile != "":
		b, err = os.ReadFile(clientFile)
		if err != nil {
			return nil, fmt.Errorf("read oauth client file: %w", err)
		}
	default:
		return nil, errors.New("missing credentials (set SERVICE_ACCOUNT_JSON, SERVICE_ACCOUNT_FILE, GOOGLE_APPLICATION_CREDENTIALS, or a GOOGLE_OAUTH_CLIENT_* pair)")
	}

	cfg, err := google.ConfigFromJSON(b, gsheet.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("oauth client config: %w", err)
	}

	tokenFile := strings.TrimSpace(os.Getenv("GOOGLE_OAUTH_TOKEN_FILE"))
	if tokenFile == "" {
		tokenFile = "token.json"
	}
	tb, err := os.ReadFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("read oauth token %s (run fintrack-oauth first): %w", tokenFile, err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(tb, &tok); err != nil {
		return nil, fmt.Errorf("parse oauth token: %w", err)
	}

	service, err := gsheet.NewService(ctx,
		goption.WithTokenSource(cfg.TokenSource(ctx, &tok)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// AppendIncome appends one income row and returns the remote row reference.
func (c *Client) AppendIncome(ctx context.Context, in core.Income) (string, error) {
	if err := in.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}
	row := []any{
		in.ID,
		in.Description,
		in.Source,
		in.Amount.String(),
		string(in.Frequency),
		in.Active,
		dateCell(in.StartDate),
		dateCell(in.EndDate),
	}
	return c.appendRow(ctx, c.incomesSheet, row)
}

// AppendExpense appends one expense row and returns the remote row reference.
func (c *Client) AppendExpense(ctx context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}
	row := []any{
		e.ID,
		e.Description,
		e.Category,
		e.Amount.String(),
		string(e.Frequency),
		e.Recurring,
		dateCell(e.TransactionDate),
		e.CardID,
		e.GroupID,
		installmentCell(e),
	}
	return c.appendRow(ctx, c.expensesSheet, row)
}

func (c *Client) appendRow(ctx context.Context, sheet string, row []any) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A:A", sheet)
	vr := &gsheet.ValueRange{Values: [][]any{row}}
	resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append row to %s: %w", sheet, err)
	}
	if resp.Updates != nil && resp.Updates.UpdatedRange != "" {
		return resp.Updates.UpdatedRange, nil
	}
	return sheet, nil
}

func dateCell(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// installmentCell renders the "i/n" sequence tag, empty for plain expenses.
func installmentCell(e core.Expense) string {
	if e.InstallmentOf == 0 {
		return ""
	}
	return fmt.Sprintf("%d/%d", e.InstallmentNo, e.InstallmentOf)
}
