// Package users provides the PostgreSQL-backed user profile repository.
package users

import (
	"context"
	"database/sql"
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

func (r *PostgresRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	query := `
		SELECT id, email, display_name, avatar, created_at, updated_at FROM users
		WHERE id = $1
		`
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID))
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, userID, displayName, avatar string) (*models.User, error) {
	query := `
		UPDATE users SET display_name = $2, avatar = $3, updated_at = now()
		WHERE id = $1
		RETURNING id, email, display_name, avatar, created_at, updated_at
		`
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID, displayName, avatar))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var updatedAt sql.NullTime

	err := row.Scan(&user.ID, &user.Email, &user.DisplayName, &user.Avatar, &user.CreatedAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		user.UpdatedAt = &t
	}
	return user, nil
}
