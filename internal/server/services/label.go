package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/quanle-dev/taskboard/internal/common"
	"github.com/quanle-dev/taskboard/internal/server/models"
	"github.com/quanle-dev/taskboard/internal/server/repositories/repomanager"
)

// LabelService governs the label lifecycle. Every operation resolves the
// owning board and checks membership before touching any data.
type LabelService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewLabelService(db *sql.DB, m repomanager.RepositoryManager) *LabelService {
	return &LabelService{db: db, repomanager: m}
}

// guardBoard resolves boardID and requires userID to be an owner or member.
// A missing or soft-deleted board is a not-found condition, not forbidden.
func (s *LabelService) guardBoard(ctx context.Context, boardID, userID string) error {
	board, err := s.repomanager.Boards(s.db).GetByID(ctx, boardID)
	if err != nil {
		return err
	}
	if board.Destroy {
		return common.ErrNotFound
	}
	if !board.HasMember(userID) {
		return common.ErrForbidden
	}
	return nil
}

type CreateLabelRequest struct {
	BoardID string `json:"boardId" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Color   string `json:"color" binding:"required"`
}

func (s *LabelService) Create(ctx context.Context, userID string, req *CreateLabelRequest) (*models.Label, error) {
	title := strings.TrimSpace(req.Title)
	if len(title) < 1 || len(title) > 50 {
		return nil, common.ErrValidation
	}
	if !models.ValidLabelColor(req.Color) {
		return nil, common.ErrValidation
	}

	if err := s.guardBoard(ctx, req.BoardID, userID); err != nil {
		return nil, err
	}

	repo := s.repomanager.Labels(s.db)
	id, err := repo.Create(ctx, &models.Label{
		BoardID: req.BoardID,
		Title:   title,
		Color:   req.Color,
	})
	if err != nil {
		return nil, err
	}

	return repo.GetByID(ctx, id)
}

func (s *LabelService) ListForBoard(ctx context.Context, userID, boardID string) ([]*models.Label, error) {
	if err := s.guardBoard(ctx, boardID, userID); err != nil {
		return nil, err
	}
	return s.repomanager.Labels(s.db).FindByBoardID(ctx, boardID)
}

// Update applies a partial patch. Identity, boardId and createdAt are
// stripped; a color outside the palette is silently discarded while the
// rest of the patch still applies.
func (s *LabelService) Update(ctx context.Context, userID, labelID string, patch map[string]any) (*models.Label, error) {
	repo := s.repomanager.Labels(s.db)

	label, err := repo.GetByID(ctx, labelID)
	if err != nil {
		return nil, err
	}
	if label.Destroy {
		return nil, common.ErrNotFound
	}
	if err := s.guardBoard(ctx, label.BoardID, userID); err != nil {
		return nil, err
	}

	fields := make(map[string]any, len(patch)+1)
	for name, value := range patch {
		fields[name] = value
	}
	if color, ok := fields["color"]; ok {
		c, isString := color.(string)
		if !isString || !models.ValidLabelColor(c) {
			delete(fields, "color")
		}
	}
	if title, ok := fields["title"].(string); ok {
		trimmed := strings.TrimSpace(title)
		if len(trimmed) < 1 || len(trimmed) > 50 {
			return nil, common.ErrValidation
		}
		fields["title"] = trimmed
	}
	fields["updatedAt"] = time.Now()

	return repo.Update(ctx, labelID, fields)
}

// Delete removes the label and then cascades: every card referencing it in
// labelIds loses the reference. Delete-then-cascade ordering, best effort,
// not one transaction; after both complete no card references the label.
func (s *LabelService) Delete(ctx context.Context, userID, labelID string) error {
	repo := s.repomanager.Labels(s.db)

	label, err := repo.GetByID(ctx, labelID)
	if err != nil {
		return err
	}
	if label.Destroy {
		return common.ErrNotFound
	}
	if err := s.guardBoard(ctx, label.BoardID, userID); err != nil {
		return err
	}

	if err := repo.Delete(ctx, labelID); err != nil {
		return err
	}

	_, err = s.repomanager.Cards(s.db).RemoveLabelFromCards(ctx, labelID)
	return err
}
