package boards

import (
	"context"

	"github.com/quanle-dev/taskboard/internal/server/models"
)

// Repository is the board aggregate's interface boundary: the core only
// ever resolves a board to evaluate the membership guard.
type Repository interface {
	GetByID(ctx context.Context, boardID string) (*models.Board, error)
}
