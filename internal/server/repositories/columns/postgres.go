// Package columns provides the PostgreSQL-backed column repository.
package columns

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

func (r *PostgresRepository) GetByID(ctx context.Context, columnID string) (*models.Column, error) {
	query := `
		SELECT id, board_id, title, card_order_ids, destroy, created_at, updated_at FROM columns
		WHERE id = $1
		`

	column := &models.Column{}
	var cardOrderIDs []byte
	var updatedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, columnID).Scan(
		&column.ID, &column.BoardID, &column.Title, &cardOrderIDs, &column.Destroy, &column.CreatedAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal(cardOrderIDs, &column.CardOrderIDs); err != nil {
		return nil, fmt.Errorf("card_order_ids decode error: %w", err)
	}
	if updatedAt.Valid {
		column.UpdatedAt = updatedAt.Time
	}

	return column, nil
}

// PushCardOrderIDs appends the card's id to the end of its parent column's
// card-order list.
func (r *PostgresRepository) PushCardOrderIDs(ctx context.Context, card *models.Card) error {
	query := `
		UPDATE columns SET card_order_ids = card_order_ids || $2::jsonb, updated_at = now()
		WHERE id = $1
		`

	elem, err := json.Marshal([]string{card.ID})
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, card.ColumnID, elem)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
