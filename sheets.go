package sheet2pdf

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// sheetsBaseURL is the Google Sheets REST v4 endpoint.
const sheetsBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"

// fetchRange reads generously past any realistic catalog; trailing blank
// rows are skipped after parsing.
const fetchRange = "A1:Z1000"

// RowSource supplies raw product rows from a spreadsheet.
type RowSource interface {
	// Authenticate validates the source's credentials.
	Authenticate(ctx context.Context) error

	// FetchRows reads the sheet. The first row is the header row and is
	// consumed as column keys; blank data rows are skipped.
	FetchRows(ctx context.Context, spreadsheetID, sheetName string) ([]RawRow, error)
}

// Compile-time interface check.
var _ RowSource = (*SheetsClient)(nil)

// SheetsClient reads rows from the Google Sheets values API using API-key
// authentication.
type SheetsClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     *slog.Logger
}

// NewSheetsClient creates a client with the given API key and HTTP timeout.
// A nil logger falls back to slog.Default().
func NewSheetsClient(apiKey string, timeout time.Duration, log *slog.Logger) *SheetsClient {
	if log == nil {
		log = slog.Default()
	}
	return &SheetsClient{
		baseURL: sheetsBaseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Authenticate checks that credentials are present. The values API rejects
// bad keys at request time; missing credentials fail fast here so the run
// stops before any network work.
func (c *SheetsClient) Authenticate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(c.apiKey) == "" {
		return fmt.Errorf("%w: missing API key", ErrAuthFailed)
	}
	return nil
}

// valuesResponse mirrors the values.get payload. Cells arrive as strings
// for formatted values but may be numbers for unformatted ones.
type valuesResponse struct {
	Values [][]any `json:"values"`
}

// FetchRows reads the sheet range and maps each data row by the header row.
// Rows shorter than the header are padded with empty cells; rows with no
// non-blank cell are dropped.
func (c *SheetsClient) FetchRows(ctx context.Context, spreadsheetID, sheetName string) ([]RawRow, error) {
	if spreadsheetID == "" {
		return nil, ErrEmptySpreadsheet
	}
	if sheetName == "" {
		sheetName = "Sheet1"
	}

	rangeRef := url.PathEscape(sheetName + "!" + fetchRange)
	reqURL := fmt.Sprintf("%s/%s/values/%s?key=%s",
		c.baseURL, url.PathEscape(spreadsheetID), rangeRef, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building sheets request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching sheet: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d", ErrAuthFailed, resp.StatusCode)
	default:
		return nil, fmt.Errorf("fetching sheet: unexpected status %d", resp.StatusCode)
	}

	var payload valuesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding sheet response: %w", err)
	}

	if len(payload.Values) < 2 {
		return nil, nil // headers only, or nothing at all
	}

	headers := make([]string, len(payload.Values[0]))
	for i, h := range payload.Values[0] {
		headers[i] = cellString(h)
	}

	rows := make([]RawRow, 0, len(payload.Values)-1)
	for _, cells := range payload.Values[1:] {
		row := make(RawRow, len(headers))
		blank := true
		for i, header := range headers {
			var value string
			if i < len(cells) {
				value = cellString(cells[i])
			}
			if strings.TrimSpace(value) != "" {
				blank = false
			}
			row[header] = value
		}
		if blank {
			continue
		}
		rows = append(rows, row)
	}

	c.log.Debug("sheet fetched",
		slog.String("spreadsheet", spreadsheetID), slog.Int("rows", len(rows)))
	return rows, nil
}

// cellString renders a JSON cell value as its spreadsheet text.
func cellString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "TRUE"
		}
		return "FALSE"
	case nil:
		return ""
	}
	return fmt.Sprintf("%v", v)
}
