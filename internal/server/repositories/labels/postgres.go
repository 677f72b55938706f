// Package labels provides the PostgreSQL-backed label repository.
package labels

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/quanle-dev/taskboard/internal/common"
	"github.com/quanle-dev/taskboard/internal/dbx"
	"github.com/quanle-dev/taskboard/internal/server/models"
)

const labelColumns = `id, board_id, title, color, destroy, created_at, updated_at`

// updatableColumns: _id, boardId and createdAt are immutable and stripped
// from patches.
var updatableColumns = map[string]string{
	"title":     "title",
	"color":     "color",
	"_destroy":  "destroy",
	"updatedAt": "updated_at",
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, label *models.Label) (string, error) {
	query := `
		INSERT INTO labels (board_id, title, color)
		VALUES ($1, $2, $3)
		RETURNING id
		`

	var id string
	err := r.db.QueryRowContext(ctx, query, label.BoardID, label.Title, label.Color).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, labelID string) (*models.Label, error) {
	query := `SELECT ` + labelColumns + ` FROM labels WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, labelID))
}

func (r *PostgresRepository) FindByBoardID(ctx context.Context, boardID string) ([]*models.Label, error) {
	query := `
		SELECT ` + labelColumns + ` FROM labels
		WHERE board_id = $1 AND destroy = FALSE
		`

	rows, err := r.db.QueryContext(ctx, query, boardID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Label
	for rows.Next() {
		label := &models.Label{}
		var updatedAt sql.NullTime
		if err := rows.Scan(&label.ID, &label.BoardID, &label.Title, &label.Color,
			&label.Destroy, &label.CreatedAt, &updatedAt); err != nil {
			return nil, err
		}
		if updatedAt.Valid {
			t := updatedAt.Time
			label.UpdatedAt = &t
		}
		result = append(result, label)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, labelID string, fields map[string]any) (*models.Label, error) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		if _, ok := updatableColumns[name]; ok {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return r.GetByID(ctx, labelID)
	}
	sort.Strings(names)

	set := make([]string, 0, len(names))
	args := []any{labelID}
	for _, name := range names {
		set = append(set, fmt.Sprintf("%s = $%d", updatableColumns[name], len(args)+1))
		args = append(args, fields[name])
	}

	query := `UPDATE labels SET ` + strings.Join(set, ", ") + ` WHERE id = $1 RETURNING ` + labelColumns
	return r.scanOne(r.db.QueryRowContext(ctx, query, args...))
}

func (r *PostgresRepository) Delete(ctx context.Context, labelID string) error {
	query := `DELETE FROM labels WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, labelID)
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

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Label, error) {
	label := &models.Label{}
	var updatedAt sql.NullTime

	err := row.Scan(&label.ID, &label.BoardID, &label.Title, &label.Color,
		&label.Destroy, &label.CreatedAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		label.UpdatedAt = &t
	}
	return label, nil
}
