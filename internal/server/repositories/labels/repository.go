package labels

import (
	"context"

	"github.com/quanle-dev/taskboard/internal/server/models"
)

// Repository exposes label persistence. Delete is a physical removal; the
// soft-delete flag only matters for filtering board listings.
type Repository interface {
	Create(ctx context.Context, label *models.Label) (string, error)
	GetByID(ctx context.Context, labelID string) (*models.Label, error)
	FindByBoardID(ctx context.Context, boardID string) ([]*models.Label, error)
	Update(ctx context.Context, labelID string, fields map[string]any) (*models.Label, error)
	Delete(ctx context.Context, labelID string) error
}
