// Package admin aggregates the read-only reporting and management
// operations behind the admin role.
package admin

import (
	"context"

	"github.com/nikonik/mediavault/internal/server/blobstore"
	"github.com/nikonik/mediavault/internal/server/models"
	"github.com/nikonik/mediavault/internal/server/repositories/contacts"
	"github.com/nikonik/mediavault/internal/server/repositories/media"
	"github.com/nikonik/mediavault/internal/server/repositories/ratings"
	"github.com/nikonik/mediavault/internal/server/repositories/users"
)

// Stats are the dashboard counters.
type Stats struct {
	TotalUsers  int64 `json:"totalUsers"`
	TotalImages int64 `json:"totalImages"`
	TotalVideos int64 `json:"totalVideos"`
	TotalMedia  int64 `json:"totalMedia"`
}

// TxRunner runs fn against user and media repositories bound to a single
// storage transaction, committing on success and rolling back on error.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, usersRepo users.Repository, mediaRepo media.Repository) error) error
}

type Service struct {
	users    users.Repository
	media    media.Repository
	contacts contacts.Repository
	ratings  ratings.Repository
	tx       TxRunner
	blobs    blobstore.Store
}

func NewService(users users.Repository, media media.Repository, contacts contacts.Repository, ratings ratings.Repository, tx TxRunner, blobs blobstore.Store) *Service {
	return &Service{users: users, media: media, contacts: contacts, ratings: ratings, tx: tx, blobs: blobs}
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalImages, err := s.media.CountByKind(ctx, models.MediaKindImage)
	if err != nil {
		return nil, err
	}
	totalVideos, err := s.media.CountByKind(ctx, models.MediaKindVideo)
	if err != nil {
		return nil, err
	}
	totalMedia, err := s.media.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalUsers:  totalUsers,
		TotalImages: totalImages,
		TotalVideos: totalVideos,
		TotalMedia:  totalMedia,
	}, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx)
}

// DeleteUser removes the account and everything it owns. The storage keys
// of the user's media are read and the row deleted inside one transaction
// (the media rows go with it via the foreign key), then the blobs are
// removed best effort: an orphaned blob is preferable to a half-deleted
// account.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	var storageKeys []string

	err := s.tx.WithTx(ctx, func(ctx context.Context, usersRepo users.Repository, mediaRepo media.Repository) error {
		items, err := mediaRepo.ListByUser(ctx, id)
		if err != nil {
			return err
		}
		for _, m := range items {
			storageKeys = append(storageKeys, m.StorageKey)
		}
		return usersRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	for _, key := range storageKeys {
		_ = s.blobs.Delete(ctx, key)
	}

	return nil
}

func (s *Service) ListMedia(ctx context.Context) ([]*models.Media, error) {
	return s.media.ListAll(ctx)
}

func (s *Service) ListContacts(ctx context.Context) ([]*models.ContactMessage, error) {
	return s.contacts.List(ctx)
}

func (s *Service) DeleteContact(ctx context.Context, id string) error {
	return s.contacts.Delete(ctx, id)
}

func (s *Service) ListRatings(ctx context.Context) ([]*models.Rating, error) {
	return s.ratings.List(ctx)
}

func (s *Service) DeleteRating(ctx context.Context, id string) error {
	return s.ratings.Delete(ctx, id)
}
