// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/quanle-dev/taskboard/internal/dbx"
	"github.com/quanle-dev/taskboard/internal/server/migrations"
	"github.com/quanle-dev/taskboard/internal/server/repositories/boards"
	"github.com/quanle-dev/taskboard/internal/server/repositories/cards"
	"github.com/quanle-dev/taskboard/internal/server/repositories/columns"
	"github.com/quanle-dev/taskboard/internal/server/repositories/labels"
	"github.com/quanle-dev/taskboard/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository
// implementations and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Boards(db dbx.DBTX) boards.Repository {
	return boards.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Columns(db dbx.DBTX) columns.Repository {
	return columns.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Cards(db dbx.DBTX) cards.Repository {
	return cards.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Labels(db dbx.DBTX) labels.Repository {
	return labels.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

var _ RepositoryManager = (*PostgresRepositoryManager)(nil)
