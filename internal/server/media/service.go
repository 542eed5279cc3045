// Package media implements user-owned media items: upload into object
// storage, listing, renaming, deletion, and download-URL generation.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nikonik/mediavault/internal/common"
	"github.com/nikonik/mediavault/internal/server/blobstore"
	"github.com/nikonik/mediavault/internal/server/models"
	"github.com/nikonik/mediavault/internal/server/repositories/media"
)

type Service struct {
	repo  media.Repository
	blobs blobstore.Store
}

func NewService(repo media.Repository, blobs blobstore.Store) *Service {
	return &Service{repo: repo, blobs: blobs}
}

// NewStorageKey produces a date-partitioned object key for a new upload.
func NewStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("media/%d/%02d/%02d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

// KindFromContentType maps an upload's content type onto a media kind.
// Anything that is not a video is treated as an image, mirroring how the
// uploader UI splits the two.
func KindFromContentType(contentType string) string {
	if strings.HasPrefix(contentType, "video") {
		return models.MediaKindVideo
	}
	return models.MediaKindImage
}

// Upload stores the blob first and only then the record, so a failed write
// to object storage never leaves a dangling database row.
func (s *Service) Upload(ctx context.Context, userID, title, contentType string, body io.Reader) (*models.Media, error) {
	key := NewStorageKey()

	url, err := s.blobs.Put(ctx, key, contentType, body)
	if err != nil {
		return nil, fmt.Errorf("error storing blob: %w", err)
	}

	m := &models.Media{
		UserID:     userID,
		Title:      title,
		StorageKey: key,
		URL:        url,
		Kind:       KindFromContentType(contentType),
	}

	m, err = s.repo.Create(ctx, m)
	if err != nil {
		// best effort: do not leave an orphaned blob behind
		_ = s.blobs.Delete(ctx, key)
		return nil, fmt.Errorf("error creating media record: %w", err)
	}

	return m, nil
}

// ListOwn returns the user's media, newest first.
func (s *Service) ListOwn(ctx context.Context, userID string) ([]*models.Media, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Rename changes the title of an item the user owns.
func (s *Service) Rename(ctx context.Context, userID, mediaID, title string) (*models.Media, error) {
	if _, err := s.getOwned(ctx, userID, mediaID); err != nil {
		return nil, err
	}
	return s.repo.UpdateTitle(ctx, mediaID, title)
}

// Delete removes the blob and then the record for an item the user owns.
func (s *Service) Delete(ctx context.Context, userID, mediaID string) error {
	m, err := s.getOwned(ctx, userID, mediaID)
	if err != nil {
		return err
	}

	if err := s.blobs.Delete(ctx, m.StorageKey); err != nil {
		return fmt.Errorf("error deleting blob: %w", err)
	}

	return s.repo.Delete(ctx, mediaID)
}

// DownloadURL returns a short-lived pre-signed URL for an owned item.
func (s *Service) DownloadURL(ctx context.Context, userID, mediaID string) (string, error) {
	m, err := s.getOwned(ctx, userID, mediaID)
	if err != nil {
		return "", err
	}

	url, err := s.blobs.PresignGet(ctx, m.StorageKey)
	if err != nil {
		return "", fmt.Errorf("error presigning download: %w", err)
	}

	return url, nil
}

func (s *Service) getOwned(ctx context.Context, userID, mediaID string) (*models.Media, error) {
	m, err := s.repo.GetByID(ctx, mediaID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	if m.UserID != userID {
		return nil, common.ErrorNotOwner
	}
	return m, nil
}
