package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/mynameisDevendra/KURSnTbOT2/internal/models"
)

// SheetsRepository appends log rows to a Google spreadsheet
type SheetsRepository struct {
	svc     *sheets.Service
	sheetID string
	rng     string
	logger  *zap.Logger
}

// NewSheetsRepository authenticates with a service-account JSON payload.
func NewSheetsRepository(ctx context.Context, credentialsJSON []byte, sheetID, rng string, logger *zap.Logger) (*SheetsRepository, error) {
	return NewSheetsRepositoryWithOptions(ctx, sheetID, rng, logger,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
}

// NewSheetsRepositoryWithOptions takes raw client options, e.g. a custom endpoint.
func NewSheetsRepositoryWithOptions(ctx context.Context, sheetID, rng string, logger *zap.Logger, opts ...option.ClientOption) (*SheetsRepository, error) {
	if sheetID == "" {
		return nil, fmt.Errorf("sheet ID is required")
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	logger.Info("Sheets repository initialized",
		zap.String("sheet_id", sheetID),
		zap.String("range", rng))

	return &SheetsRepository{
		svc:     svc,
		sheetID: sheetID,
		rng:     rng,
		logger:  logger,
	}, nil
}

// AppendRow appends one row after the last filled row of the range.
func (r *SheetsRepository) AppendRow(ctx context.Context, rec models.ExtractionRecord) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{rec.Row()}}

	resp, err := r.svc.Spreadsheets.Values.Append(r.sheetID, r.rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append row: %w", err)
	}

	if resp.Updates != nil {
		r.logger.Debug("Sheet updated", zap.String("range", resp.Updates.UpdatedRange))
	}
	return nil
}
