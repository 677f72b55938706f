package repomanager

import (
	"context"
	"database/sql"

	"github.com/quanle-dev/taskboard/internal/dbx"
	"github.com/quanle-dev/taskboard/internal/server/repositories/boards"
	"github.com/quanle-dev/taskboard/internal/server/repositories/cards"
	"github.com/quanle-dev/taskboard/internal/server/repositories/columns"
	"github.com/quanle-dev/taskboard/internal/server/repositories/labels"
	"github.com/quanle-dev/taskboard/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Boards(db dbx.DBTX) boards.Repository
	Columns(db dbx.DBTX) columns.Repository
	Cards(db dbx.DBTX) cards.Repository
	Labels(db dbx.DBTX) labels.Repository
	Users(db dbx.DBTX) users.Repository
}
