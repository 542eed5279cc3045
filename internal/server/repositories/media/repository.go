package media

import (
	"context"

	"github.com/nikonik/mediavault/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, media *models.Media) (*models.Media, error)
	GetByID(ctx context.Context, id string) (*models.Media, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Media, error)
	ListAll(ctx context.Context) ([]*models.Media, error)
	UpdateTitle(ctx context.Context, id, title string) (*models.Media, error)
	Delete(ctx context.Context, id string) error
	CountByKind(ctx context.Context, kind string) (int64, error)
	Count(ctx context.Context) (int64, error)
}
