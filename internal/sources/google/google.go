package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"donations/internal/dataset"
	"donations/internal/sources"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

const (
	DefaultCategoriesSheet = "Categories"
	DefaultDonationsSheet  = "Donations"

	// readColumns bounds the columns fetched from each sheet.
	readColumns = "A1:Z"
)

type Config struct {
	SpreadsheetID   string
	CategoriesSheet string
	DonationsSheet  string
}

// Client reads the dataset from a spreadsheet with one sheet of categories
// and one of donations. The first row of each sheet holds column names.
type Client struct {
	svc             *gsheet.Service
	spreadsheetID   string
	categoriesSheet string
	donationsSheet  string
	now             func() time.Time
}

var _ sources.DatasetLoader = (*Client)(nil)

// New creates a Sheets client authenticated with a service account.
// Credentials come from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE
// or GOOGLE_APPLICATION_CREDENTIALS.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	creds, err := serviceAccountCredentials(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(creds),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return NewWithService(svc, cfg), nil
}

// NewWithService wraps an existing Sheets service.
func NewWithService(svc *gsheet.Service, cfg Config) *Client {
	cats := strings.TrimSpace(cfg.CategoriesSheet)
	if cats == "" {
		cats = DefaultCategoriesSheet
	}
	dons := strings.TrimSpace(cfg.DonationsSheet)
	if dons == "" {
		dons = DefaultDonationsSheet
	}
	return &Client{
		svc:             svc,
		spreadsheetID:   strings.TrimSpace(cfg.SpreadsheetID),
		categoriesSheet: cats,
		donationsSheet:  dons,
		now:             time.Now,
	}
}

func serviceAccountCredentials(ctx context.Context) ([]byte, error) {
	inline := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	file := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if inline == "" && file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case inline != "":
		slog.DebugContext(ctx, "Using inline service account credentials", "json_length", len(inline))
		return []byte(inline), nil
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		slog.DebugContext(ctx, "Read service account credentials", "path", file, "size", len(b))
		return b, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
}

// Load reads both sheets and builds the dataset.
func (c *Client) Load(ctx context.Context) (*dataset.Dataset, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	now := c.now()

	catRows, err := c.readSheet(ctx, c.categoriesSheet)
	if err != nil {
		return nil, err
	}
	categories, err := parseCategories(catRows, now)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", c.categoriesSheet, err)
	}

	donRows, err := c.readSheet(ctx, c.donationsSheet)
	if err != nil {
		return nil, err
	}
	donations, err := parseDonations(donRows, now)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", c.donationsSheet, err)
	}

	slog.InfoContext(ctx, "Loaded dataset from Google Sheets",
		"spreadsheet_id", c.spreadsheetID,
		"categories", len(categories),
		"donations", len(donations))
	return dataset.New(categories, donations)
}

func (c *Client) readSheet(ctx context.Context, sheet string) ([][]interface{}, error) {
	rng := fmt.Sprintf("%s!%s", sheet, readColumns)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", rng, err)
	}
	return resp.Values, nil
}
