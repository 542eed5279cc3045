// Package repomanager wires the Postgres connection, the goose migrations,
// and the per-entity repositories into a single handle the services share.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/nikonik/mediavault/internal/server/repositories/contacts"
	"github.com/nikonik/mediavault/internal/server/repositories/media"
	"github.com/nikonik/mediavault/internal/server/repositories/ratings"
	"github.com/nikonik/mediavault/internal/server/repositories/users"
)

type RepositoryManager interface {
	Conn() *sql.DB
	Users() users.Repository
	Media() media.Repository
	Contacts() contacts.Repository
	Ratings() ratings.Repository

	// WithTx runs fn with user and media repositories bound to one
	// transaction, committing on success.
	WithTx(ctx context.Context, fn func(ctx context.Context, usersRepo users.Repository, mediaRepo media.Repository) error) error

	Close() error
}
