// Package boards provides the PostgreSQL-backed board repository. Membership
// sets are stored as JSONB arrays of user ids.
package boards

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/quanle-dev/taskboard/internal/common"
	"github.com/quanle-dev/taskboard/internal/dbx"
	"github.com/quanle-dev/taskboard/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, boardID string) (*models.Board, error) {
	query := `
		SELECT id, title, owner_ids, member_ids, destroy, created_at, updated_at FROM boards
		WHERE id = $1
		`

	board := &models.Board{}
	var ownerIDs, memberIDs []byte
	var updatedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, boardID).Scan(
		&board.ID, &board.Title, &ownerIDs, &memberIDs, &board.Destroy, &board.CreatedAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal(ownerIDs, &board.OwnerIDs); err != nil {
		return nil, fmt.Errorf("owner_ids decode error: %w", err)
	}
	if err := json.Unmarshal(memberIDs, &board.MemberIDs); err != nil {
		return nil, fmt.Errorf("member_ids decode error: %w", err)
	}
	if updatedAt.Valid {
		board.UpdatedAt = updatedAt.Time
	}

	return board, nil
}
