package columns

import (
	"context"

	"github.com/quanle-dev/taskboard/internal/server/models"
)

// Repository is the column aggregate's interface boundary. PushCardOrderIDs
// appends a newly created card's identity to its parent column's order list.
type Repository interface {
	GetByID(ctx context.Context, columnID string) (*models.Column, error)
	PushCardOrderIDs(ctx context.Context, card *models.Card) error
}
