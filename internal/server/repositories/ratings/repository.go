package ratings

import (
	"context"

	"github.com/nikonik/mediavault/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, rating *models.Rating) (*models.Rating, error)
	List(ctx context.Context) ([]*models.Rating, error)
	Delete(ctx context.Context, id string) error
}
