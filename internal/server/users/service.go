// Package users implements the credential and session core: registration,
// credential verification, token issuance and renewal, and profile lookup.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikonik/mediavault/internal/common"
	"github.com/nikonik/mediavault/internal/server/auth"
	"github.com/nikonik/mediavault/internal/server/config"
	"github.com/nikonik/mediavault/internal/server/models"
	"github.com/nikonik/mediavault/internal/server/repositories/users"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type Service struct {
	repo     users.Repository
	tokens   *auth.TokenManager
	hashCost int
}

func NewService(repo users.Repository, tokens *auth.TokenManager, cfg *config.Config) *Service {
	return &Service{
		repo:     repo,
		tokens:   tokens,
		hashCost: cfg.PasswordHashCost,
	}
}

// Register creates a new account with the default user role. The plaintext
// password never leaves this function unhashed. A taken email yields
// common.ErrorDuplicateEmail whether detected here or by the unique index.
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password, s.hashCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		UserName:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         common.RoleUser,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorDuplicateEmail) {
			return nil, common.ErrorDuplicateEmail
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and, on success, mints a token pair.
// "No such email" and "wrong password" both come back as
// common.ErrInvalidCredentials so callers cannot enumerate accounts.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}

	return s.generateTokenPair(user)
}

// Refresh exchanges a valid refresh token for a new access token. Refresh
// tokens are reusable until they expire; no rotation happens here, so
// presenting the same token twice yields two independent access tokens.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyKind(refreshToken, auth.KindRefresh)
	if err != nil {
		return "", err
	}

	accessToken, err := s.tokens.IssueAccessToken(claims.UserID, claims.Role)
	if err != nil {
		return "", common.ErrorInternal
	}

	return accessToken, nil
}

// Profile returns the account behind an authenticated user id.
func (s *Service) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// CreateAdmin creates an account with the admin role. Only the adminctl
// bootstrap path calls this; there is no self-service route to it.
func (s *Service) CreateAdmin(ctx context.Context, username, email, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password, s.hashCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		UserName:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         common.RoleAdmin,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorDuplicateEmail) {
			return nil, common.ErrorDuplicateEmail
		}
		return nil, fmt.Errorf("error creating admin: %w", err)
	}

	return user, nil
}

func (s *Service) generateTokenPair(user *models.User) (*TokenPair, error) {
	accessToken, err := s.tokens.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refreshToken, err := s.tokens.IssueRefreshToken(user.ID, user.Role)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
