package contacts

import (
	"context"

	"github.com/nikonik/mediavault/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, msg *models.ContactMessage) (*models.ContactMessage, error)
	List(ctx context.Context) ([]*models.ContactMessage, error)
	Delete(ctx context.Context, id string) error
}
