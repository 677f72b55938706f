package cards

import (
	"context"
	"time"

	"github.com/quanle-dev/taskboard/internal/common"
	"github.com/quanle-dev/taskboard/internal/server/models"
)

// Repository exposes the card document operations. Mutations return the
// post-update document state.
type Repository interface {
	Create(ctx context.Context, card *models.Card) (string, error)
	GetByID(ctx context.Context, cardID string) (*models.Card, error)

	// Update applies a generic field patch. Unknown fields and the immutable
	// _id/boardId/createdAt fields are stripped before the write.
	Update(ctx context.Context, cardID string, fields map[string]any) (*models.Card, error)

	// UpdateTasks rewrites the full tasks field and stamps updatedAt, even
	// when the new value equals the prior one.
	UpdateTasks(ctx context.Context, cardID string, tasks []models.Task, updatedAt time.Time) (*models.Card, error)

	// UnshiftComment inserts the comment at index 0 (newest first).
	UnshiftComment(ctx context.Context, cardID string, comment models.Comment) (*models.Card, error)

	// UpdateMembers / UpdateLabels apply a set-membership add or remove.
	// Any other action fetches the card without touching the field.
	UpdateMembers(ctx context.Context, cardID string, action common.SetAction, userID string) (*models.Card, error)
	UpdateLabels(ctx context.Context, cardID string, action common.SetAction, labelID string) (*models.Card, error)

	// UpdateDates merges the supplied date keys into the dates object.
	UpdateDates(ctx context.Context, cardID string, patch map[string]any) (*models.Card, error)

	// RemoveLabelFromCards pulls labelID out of every referencing card's
	// labelIds set in one bulk statement. Returns affected card count.
	RemoveLabelFromCards(ctx context.Context, labelID string) (int64, error)

	// RefreshCommentAuthors rewrites userAvatar/userDisplayName on every
	// embedded comment authored by userID, across all cards.
	RefreshCommentAuthors(ctx context.Context, userID, avatar, displayName string) (int64, error)

	DeleteManyByColumnID(ctx context.Context, columnID string) (int64, error)
}
