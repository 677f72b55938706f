package users

import (
	"context"

	"github.com/quanle-dev/taskboard/internal/server/models"
)

type Repository interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID, displayName, avatar string) (*models.User, error)
}
