// Package common defines shared constants and sentinel errors used across
// MediaVault components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound       = errors.New("not found")
	ErrorDuplicateEmail = errors.New("email already registered")

	// Service-level errors (generic/internal flow control).
	ErrorInternal         = errors.New("internal error")
	ErrorUnauthorized     = errors.New("unauthorized")
	ErrorForbidden        = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrorNotOwner         = errors.New("not the owner")

	// Token lifecycle errors. ErrInvalidToken covers bad signatures and
	// malformed tokens; expiry and kind mismatches get their own values so
	// the server can log them apart even when clients see a generic 401.
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrWrongTokenKind = errors.New("wrong token kind")
)
