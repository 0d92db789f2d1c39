package storage

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

type CategoryRow struct {
	ID           string
	Name         string
	MeasureUnity string
	Active       bool
	CreatedAt    sql.NullString
}

type DonationRow struct {
	ID              string
	CategoryID      string
	Name            string
	Description     string
	InitialQuantity int64
	CurrentQuantity int64
	DonatorName     string
	Gender          string
	Size            string
	Active          bool
	Available       bool
	CreatedAt       string
	UpdatedAt       sql.NullString
}

const listCategories = `-- name: ListCategories :many
SELECT id, name, measure_unity, active, created_at
FROM categories
ORDER BY rowid
`

func (q *Queries) ListCategories(ctx context.Context) ([]CategoryRow, error) {
	rows, err := q.db.QueryContext(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CategoryRow
	for rows.Next() {
		var i CategoryRow
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.MeasureUnity,
			&i.Active,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listDonations = `-- name: ListDonations :many
SELECT id, category_id, name, description, initial_quantity, current_quantity,
       donator_name, gender, size, active, available, created_at, updated_at
FROM donations
ORDER BY rowid
`

func (q *Queries) ListDonations(ctx context.Context) ([]DonationRow, error) {
	rows, err := q.db.QueryContext(ctx, listDonations)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []DonationRow
	for rows.Next() {
		var i DonationRow
		if err := rows.Scan(
			&i.ID,
			&i.CategoryID,
			&i.Name,
			&i.Description,
			&i.InitialQuantity,
			&i.CurrentQuantity,
			&i.DonatorName,
			&i.Gender,
			&i.Size,
			&i.Active,
			&i.Available,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countDonations = `-- name: CountDonations :one
SELECT COUNT(*) FROM donations
`

func (q *Queries) CountDonations(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countDonations)
	var count int64
	err := row.Scan(&count)
	return count, err
}
