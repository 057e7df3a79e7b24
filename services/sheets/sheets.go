package sheets

import (
	"context"
	"fmt"
	"os"

	"github.com/Olympedpnt/concerts-etl-sa/services/consolidate"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var tracer = otel.Tracer("services/sheets")

type Config struct {
	SpreadsheetId string `json:"spreadsheet_id"`
	Worksheet     string `json:"worksheet"`
	// path to the service account json, defaults to
	// $GOOGLE_APPLICATION_CREDENTIALS
	CredentialsFile string `json:"credentials_file"`
}

type Publisher struct {
	svc *sheets.Service
	cfg Config
}

func NewPublisher(ctx context.Context, cfg Config) (*Publisher, error) {
	credsPath := cfg.CredentialsFile
	if credsPath == "" {
		credsPath = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}
	if credsPath == "" {
		return nil, fmt.Errorf("no service account credentials: set credentials_file or GOOGLE_APPLICATION_CREDENTIALS")
	}
	data, err := os.ReadFile(credsPath)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}
	jwt, err := google.JWTConfigFromJSON(data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account file: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(jwt.Client(ctx)))
	if err != nil {
		return nil, err
	}

	if cfg.Worksheet == "" {
		cfg.Worksheet = "consolidated"
	}
	return &Publisher{svc: svc, cfg: cfg}, nil
}

// Publish overwrites the configured worksheet with the consolidated table.
// Idempotent: running twice with the same rows leaves the same sheet.
func (p *Publisher) Publish(ctx context.Context, rows []consolidate.Row) error {
	ctx, span := tracer.Start(ctx, "Publish")
	defer span.End()
	span.SetAttributes(attribute.Int("rows", len(rows)))

	if err := p.ensureWorksheet(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to ensure worksheet")
		return err
	}

	headers := BuildHeaders(rows)
	values := make([][]any, 0, len(rows)+1)
	headerRow := make([]any, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	values = append(values, headerRow)
	for _, r := range rows {
		cells := RowValues(r, headers)
		row := make([]any, len(cells))
		for i, c := range cells {
			row[i] = c
		}
		values = append(values, row)
	}

	_, err := p.svc.Spreadsheets.Values.
		Clear(p.cfg.SpreadsheetId, p.cfg.Worksheet, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to clear worksheet")
		return err
	}

	_, err = p.svc.Spreadsheets.Values.
		Update(p.cfg.SpreadsheetId, fmt.Sprintf("%s!A1", p.cfg.Worksheet), &sheets.ValueRange{
			Values: values,
		}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write worksheet")
		return err
	}
	return nil
}

func (p *Publisher) ensureWorksheet(ctx context.Context) error {
	doc, err := p.svc.Spreadsheets.Get(p.cfg.SpreadsheetId).Context(ctx).Do()
	if err != nil {
		return err
	}
	for _, sheet := range doc.Sheets {
		if sheet.Properties.Title == p.cfg.Worksheet {
			return nil
		}
	}
	_, err = p.svc.Spreadsheets.BatchUpdate(p.cfg.SpreadsheetId, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: p.cfg.Worksheet},
			},
		}},
	}).Context(ctx).Do()
	return err
}
