package media

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nikonik/mediavault/internal/common"
	"github.com/nikonik/mediavault/internal/dbx"
	"github.com/nikonik/mediavault/internal/server/models"
)

const columns = `id, user_id, title, storage_key, url, kind, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, m *models.Media) (*models.Media, error) {

	query :=
		`INSERT INTO media (user_id, title, storage_key, url, kind)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		m.UserID, m.Title, m.StorageKey, m.URL, m.Kind).
		Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Media, error) {
	query := `SELECT ` + columns + ` FROM media WHERE id = $1`

	m := &models.Media{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.UserID, &m.Title, &m.StorageKey, &m.URL, &m.Kind, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Media, error) {
	query := `SELECT ` + columns + ` FROM media WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return r.collect(rows)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.Media, error) {
	query := `SELECT ` + columns + ` FROM media ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return r.collect(rows)
}

func (r *PostgresRepository) UpdateTitle(ctx context.Context, id, title string) (*models.Media, error) {
	query :=
		`UPDATE media SET title = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + columns

	m := &models.Media{}
	err := r.db.QueryRowContext(ctx, query, id, title).Scan(
		&m.ID, &m.UserID, &m.Title, &m.StorageKey, &m.URL, &m.Kind, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) CountByKind(ctx context.Context, kind string) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM media WHERE kind = $1`, kind).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM media`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) collect(rows *sql.Rows) ([]*models.Media, error) {
	defer rows.Close()

	var items []*models.Media
	for rows.Next() {
		m := &models.Media{}
		if err := rows.Scan(&m.ID, &m.UserID, &m.Title, &m.StorageKey, &m.URL, &m.Kind,
			&m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return items, nil
}
