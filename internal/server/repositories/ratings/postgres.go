package ratings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nikonik/mediavault/internal/common"
	"github.com/nikonik/mediavault/internal/dbx"
	"github.com/nikonik/mediavault/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, rating *models.Rating) (*models.Rating, error) {

	query :=
		`INSERT INTO ratings (user_id, score, comment)
         VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	// anonymous ratings carry no user id
	var userID any
	if rating.UserID != "" {
		userID = rating.UserID
	}

	err := r.db.QueryRowContext(ctx, query, userID, rating.Score, rating.Comment).
		Scan(&rating.ID, &rating.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rating, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Rating, error) {
	query := `SELECT id, user_id, score, comment, created_at FROM ratings ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var items []*models.Rating
	for rows.Next() {
		rating := &models.Rating{}
		var userID sql.NullString
		if err := rows.Scan(&rating.ID, &userID, &rating.Score, &rating.Comment, &rating.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		rating.UserID = userID.String
		items = append(items, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return items, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ratings WHERE id = $1`, id)
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
