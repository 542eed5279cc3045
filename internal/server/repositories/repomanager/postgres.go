package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/nikonik/mediavault/internal/dbx"
	"github.com/nikonik/mediavault/internal/server/migrations"
	"github.com/nikonik/mediavault/internal/server/repositories/contacts"
	"github.com/nikonik/mediavault/internal/server/repositories/media"
	"github.com/nikonik/mediavault/internal/server/repositories/ratings"
	"github.com/nikonik/mediavault/internal/server/repositories/users"
)

type PostgresRepositoryManager struct {
	db       *sql.DB
	users    users.Repository
	media    media.Repository
	contacts contacts.Repository
	ratings  ratings.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Media() media.Repository {
	return m.media
}

func (m *PostgresRepositoryManager) Contacts() contacts.Repository {
	return m.contacts
}

func (m *PostgresRepositoryManager) Ratings() ratings.Repository {
	return m.ratings
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

// WithTx gives fn user and media repositories backed by a single
// transaction. Used where a read and a delete must observe the same
// snapshot, e.g. collecting a user's storage keys before dropping the row.
func (m *PostgresRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, usersRepo users.Repository, mediaRepo media.Repository) error) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, users.NewPostgresRepository(tx), media.NewPostgresRepository(tx))
	})
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func NewPostgresRepositoryManager(ctx context.Context, dsn string) (*PostgresRepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:       db,
		users:    users.NewPostgresRepository(db),
		media:    media.NewPostgresRepository(db),
		contacts: contacts.NewPostgresRepository(db),
		ratings:  ratings.NewPostgresRepository(db),
	}

	if err := m.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
