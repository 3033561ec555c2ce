package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mynameisDevendra/KURSnTbOT2/internal/models"
)

// SQLiteRepository keeps the material log in a local file
type SQLiteRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteRepository opens the database and creates the table.
func NewSQLiteRepository(dbPath string, logger *zap.Logger) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo := &SQLiteRepository{
		db:     db,
		logger: logger,
	}

	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("SQLite repository initialized", zap.String("db_path", dbPath))

	return repo, nil
}

func (r *SQLiteRepository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS extraction_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sender TEXT NOT NULL,
		category TEXT NOT NULL,
		item TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		location TEXT NOT NULL,
		status TEXT NOT NULL,
		sentiment TEXT NOT NULL,
		raw_text TEXT NOT NULL,
		logged_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_log_item ON extraction_log(item);
	`

	_, err := r.db.Exec(schema)
	return err
}

// AppendRow inserts one row. There is no uniqueness constraint.
func (r *SQLiteRepository) AppendRow(ctx context.Context, rec models.ExtractionRecord) error {
	query := `
		INSERT INTO extraction_log (
			sender, category, item, quantity, location,
			status, sentiment, raw_text, logged_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		rec.Sender,
		rec.Category,
		rec.Item,
		rec.Quantity,
		rec.Location,
		rec.Status,
		rec.Sentiment,
		rec.RawText,
		rec.Timestamp.Format(models.TimestampLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert row: %w", err)
	}
	return nil
}

// Rows returns all rows in insertion order.
func (r *SQLiteRepository) Rows(ctx context.Context) ([]models.ExtractionRecord, error) {
	query := `
		SELECT sender, category, item, quantity, location,
		       status, sentiment, raw_text, logged_at
		FROM extraction_log
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}
	defer rows.Close()

	var out []models.ExtractionRecord
	for rows.Next() {
		var rec models.ExtractionRecord
		var loggedAt string
		if err := rows.Scan(
			&rec.Sender, &rec.Category, &rec.Item, &rec.Quantity, &rec.Location,
			&rec.Status, &rec.Sentiment, &rec.RawText, &loggedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		rec.Timestamp, err = time.ParseInLocation(models.TimestampLayout, loggedAt, time.Local)
		if err != nil {
			return nil, fmt.Errorf("bad timestamp %q: %w", loggedAt, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
