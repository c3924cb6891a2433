// Package sheets persists pipeline results to a Google Sheet through a
// service account. One run appends one row; the sheet is the archive the
// content team works from.
package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/banterworks/pitchside/pkg/models"
)

// headerRow is the fixed 13-column layout: run metadata in A-D, the
// three scripts in E-M.
var headerRow = []any{
	"Timestamp",
	"Topic",
	"Drama Score",
	"Topics Considered",
	"Script 1 - Hook",
	"Script 1 - Premise",
	"Script 1 - Punchline",
	"Script 2 - Hook",
	"Script 2 - Premise",
	"Script 2 - Punchline",
	"Script 3 - Hook",
	"Script 3 - Premise",
	"Script 3 - Punchline",
}

// Client writes run results to a single worksheet.
type Client struct {
	svc           *gsheets.Service
	spreadsheetID string
	sheetName     string
	log           zerolog.Logger
}

// NewClient creates a sheets client authenticated with the given service
// account credentials file. Extra options are mainly for tests.
func NewClient(ctx context.Context, credentialsFile, spreadsheetID, sheetName string, log zerolog.Logger, opts ...option.ClientOption) (*Client, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("sheets: spreadsheet ID is required")
	}
	if sheetName == "" {
		sheetName = "Sheet1"
	}
	allOpts := append([]option.ClientOption{
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gsheets.SpreadsheetsScope),
	}, opts...)
	svc, err := gsheets.NewService(ctx, allOpts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}
	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		log:           log,
	}, nil
}

// EnsureHeaders writes the header row if the first row is empty.
func (c *Client) EnsureHeaders(ctx context.Context) error {
	rangeA1 := c.sheetName + "!A1:M1"
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rangeA1).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: read header row: %w", err)
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 && resp.Values[0][0] != "" {
		return nil
	}

	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rangeA1, &gsheets.ValueRange{
		Values: [][]any{headerRow},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: write header row: %w", err)
	}
	c.log.Info().Msg("added headers to sheet")
	return nil
}

// AppendResult appends one row for a completed run.
func (c *Client) AppendResult(ctx context.Context, result models.RunResult) error {
	if err := c.EnsureHeaders(ctx); err != nil {
		c.log.Warn().Err(err).Msg("could not verify sheet headers")
	}

	row := []any{
		result.StartedAt.Format(time.RFC3339),
		result.Topic,
		fmt.Sprintf("%d/10 - %s", result.Score, result.Reasoning),
		consideredSummary(result.Considered),
	}
	for i := 0; i < 3; i++ {
		if i < len(result.Scripts) {
			row = append(row, result.Scripts[i].Hook, result.Scripts[i].Premise, result.Scripts[i].Punchline)
		} else {
			row = append(row, "", "", "")
		}
	}

	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, c.sheetName+"!A:M", &gsheets.ValueRange{
		Values: [][]any{row},
	}).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: append row: %w", err)
	}
	c.log.Info().Str("topic", result.Topic).Msg("appended result to sheet")
	return nil
}

// Entry is one archived run row, as read back from the sheet.
type Entry struct {
	Timestamp string
	Topic     string
	Score     string
	Scripts   []models.ScriptIdea
}

// RecentEntries returns the last count rows, most recent first.
func (c *Client) RecentEntries(ctx context.Context, count int) ([]Entry, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.sheetName+"!A:M").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: read rows: %w", err)
	}
	if len(resp.Values) <= 1 {
		return nil, nil
	}

	rows := resp.Values[1:]
	if len(rows) > count {
		rows = rows[len(rows)-count:]
	}

	entries := make([]Entry, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		if len(row) < 3 {
			continue
		}
		entry := Entry{
			Timestamp: cell(row, 0),
			Topic:     cell(row, 1),
			Score:     cell(row, 2),
		}
		for s := 0; s < 3; s++ {
			base := 4 + s*3
			idea := models.ScriptIdea{
				Hook:      cell(row, base),
				Premise:   cell(row, base+1),
				Punchline: cell(row, base+2),
			}
			if idea.Hook != "" || idea.Premise != "" || idea.Punchline != "" {
				entry.Scripts = append(entry.Scripts, idea)
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func cell(row []any, i int) string {
	if i >= len(row) {
		return ""
	}
	s, _ := row[i].(string)
	return s
}

// consideredSummary renders the shortlist as "title (score), ...".
func consideredSummary(considered []models.RankedTopic) string {
	if len(considered) == 0 {
		return ""
	}
	parts := make([]string, len(considered))
	for i, rt := range considered {
		parts[i] = fmt.Sprintf("%s (%d)", rt.Topic, rt.Score)
	}
	return strings.Join(parts, ", ")
}
