package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"donations/internal/core"
	"donations/internal/dataset"
	"donations/internal/sources"

	_ "modernc.org/sqlite"
)

var _ sources.DatasetLoader = (*SQLiteRepository)(nil)

// SQLiteRepository loads the dataset from a SQLite database. Migrations create
// the schema and seed the built-in records on first open.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
	now     func() time.Time
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
		now:     time.Now,
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load reads every category and donation in insertion order.
func (r *SQLiteRepository) Load(ctx context.Context) (*dataset.Dataset, error) {
	now := r.now()

	catRows, err := r.queries.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	categories := make([]core.Category, 0, len(catRows))
	for _, row := range catRows {
		created, err := parseTimestamp(row.CreatedAt, now)
		if err != nil {
			return nil, fmt.Errorf("category %q created_at: %w", row.ID, err)
		}
		categories = append(categories, core.Category{
			ID:           row.ID,
			Name:         row.Name,
			MeasureUnity: row.MeasureUnity,
			Active:       row.Active,
			CreatedAt:    created,
		})
	}

	donRows, err := r.queries.ListDonations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	donations := make([]core.Donation, 0, len(donRows))
	for _, row := range donRows {
		created, err := time.Parse(time.RFC3339, row.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("donation %q created_at: %w", row.ID, err)
		}
		updated, err := parseTimestamp(row.UpdatedAt, now)
		if err != nil {
			return nil, fmt.Errorf("donation %q updated_at: %w", row.ID, err)
		}
		donations = append(donations, core.Donation{
			ID:              row.ID,
			CategoryID:      row.CategoryID,
			Name:            row.Name,
			Description:     row.Description,
			InitialQuantity: int(row.InitialQuantity),
			CurrentQuantity: int(row.CurrentQuantity),
			DonatorName:     row.DonatorName,
			Gender:          row.Gender,
			Size:            row.Size,
			Active:          row.Active,
			Available:       row.Available,
			CreatedAt:       created,
			UpdatedAt:       updated,
		})
	}

	slog.InfoContext(ctx, "Loaded dataset from SQLite",
		"categories", len(categories),
		"donations", len(donations))

	return dataset.New(categories, donations)
}

// HealthCheck verifies the database connection.
func (r *SQLiteRepository) HealthCheck(ctx context.Context) error {
	if _, err := r.queries.CountDonations(ctx); err != nil {
		return fmt.Errorf("count donations: %w", err)
	}
	return nil
}

func parseTimestamp(s sql.NullString, def time.Time) (time.Time, error) {
	if !s.Valid || s.String == "" {
		return def, nil
	}
	return time.Parse(time.RFC3339, s.String)
}
