// Package feedback handles the public contact-form and rating submissions.
package feedback

import (
	"context"
	"fmt"

	"github.com/nikonik/mediavault/internal/server/models"
	"github.com/nikonik/mediavault/internal/server/repositories/contacts"
	"github.com/nikonik/mediavault/internal/server/repositories/ratings"
)

type Service struct {
	contacts contacts.Repository
	ratings  ratings.Repository
}

func NewService(contacts contacts.Repository, ratings ratings.Repository) *Service {
	return &Service{contacts: contacts, ratings: ratings}
}

func (s *Service) SubmitContact(ctx context.Context, name, email, message string) (*models.ContactMessage, error) {
	msg := &models.ContactMessage{Name: name, Email: email, Message: message}

	msg, err := s.contacts.Create(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("error creating contact message: %w", err)
	}

	return msg, nil
}

// SubmitRating records a score in [1, 5]. userID may be empty for
// anonymous visitors.
func (s *Service) SubmitRating(ctx context.Context, userID string, score int, comment string) (*models.Rating, error) {
	if score < 1 || score > 5 {
		return nil, fmt.Errorf("score %d out of range", score)
	}

	rating := &models.Rating{UserID: userID, Score: score, Comment: comment}

	rating, err := s.ratings.Create(ctx, rating)
	if err != nil {
		return nil, fmt.Errorf("error creating rating: %w", err)
	}

	return rating, nil
}
