package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/quanle-dev/taskboard/internal/common"
	"github.com/quanle-dev/taskboard/internal/ordered"
	"github.com/quanle-dev/taskboard/internal/server/models"
	"github.com/quanle-dev/taskboard/internal/server/repositories/repomanager"
	"github.com/quanle-dev/taskboard/internal/server/tasks"
)

// CardService implements card creation and the card mutation engine. Update
// dispatches on request shape: exactly one branch applies per request.
type CardService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	storage     StorageProvider
}

func NewCardService(db *sql.DB, m repomanager.RepositoryManager, storage StorageProvider) *CardService {
	return &CardService{db: db, repomanager: m, storage: storage}
}

func (s *CardService) guardBoard(ctx context.Context, boardID, userID string) error {
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

type CreateCardRequest struct {
	BoardID  string `json:"boardId" binding:"required"`
	ColumnID string `json:"columnId" binding:"required"`
	Title    string `json:"title" binding:"required"`
}

// Create inserts a card with empty sub-entities, appends its identity to the
// parent column's card order, and returns the stored card.
func (s *CardService) Create(ctx context.Context, userID string, req *CreateCardRequest) (*models.Card, error) {
	title := strings.TrimSpace(req.Title)
	if len(title) < 3 || len(title) > 50 {
		return nil, common.ErrValidation
	}

	if err := s.guardBoard(ctx, req.BoardID, userID); err != nil {
		return nil, err
	}

	// The target column must be live and belong to the same board.
	column, err := s.repomanager.Columns(s.db).GetByID(ctx, req.ColumnID)
	if err != nil {
		return nil, err
	}
	if column.Destroy || column.BoardID != req.BoardID {
		return nil, common.ErrNotFound
	}

	repo := s.repomanager.Cards(s.db)
	id, err := repo.Create(ctx, &models.Card{
		BoardID:  req.BoardID,
		ColumnID: req.ColumnID,
		Title:    title,
	})
	if err != nil {
		return nil, err
	}

	card, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repomanager.Columns(s.db).PushCardOrderIDs(ctx, card); err != nil {
		return nil, err
	}

	return card, nil
}

// UploadedFile is a request-scoped file already read off the wire.
type UploadedFile struct {
	Filename string
	Data     []byte
}

// MemberOp and LabelOp carry the set-membership mutations of the two
// structurally identical id-set fields.
type MemberOp struct {
	Action common.SetAction `json:"action" binding:"required"`
	UserID string           `json:"userId" binding:"required"`
}

type LabelOp struct {
	Action  common.SetAction `json:"action" binding:"required"`
	LabelID string           `json:"labelId" binding:"required"`
}

// UpdateCardRequest is the union of card update shapes. The first non-nil
// branch (in the order checked by Update) wins; a request carrying none of
// them falls through to the generic field patch.
type UpdateCardRequest struct {
	TaskAction         *tasks.Action
	Cover              *UploadedFile
	Attachment         *UploadedFile
	RemoveAttachmentID string
	Comment            string
	MemberOp           *MemberOp
	LabelOp            *LabelOp
	Dates              map[string]any
	Fields             map[string]any
}

func (s *CardService) Update(ctx context.Context, userID, cardID string, req *UpdateCardRequest) (*models.Card, error) {
	repo := s.repomanager.Cards(s.db)

	card, err := repo.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if err := s.guardBoard(ctx, card.BoardID, userID); err != nil {
		return nil, err
	}

	switch {
	case req.TaskAction != nil:
		next := tasks.Apply(card.Tasks, *req.TaskAction)
		return repo.UpdateTasks(ctx, cardID, next, time.Now())

	case req.Cover != nil:
		res, err := s.storage.Upload(ctx, req.Cover.Data, req.Cover.Filename, "card-covers")
		if err != nil {
			return nil, err
		}
		return repo.Update(ctx, cardID, map[string]any{
			"cover":     res.SecureURL,
			"updatedAt": time.Now(),
		})

	case req.Attachment != nil:
		res, err := s.storage.Upload(ctx, req.Attachment.Data, req.Attachment.Filename, "card-attachments")
		if err != nil {
			return nil, err
		}
		attachment := models.Attachment{
			ID:        res.AssetID,
			FileName:  res.OriginalFilename,
			Format:    res.Format,
			URL:       res.SecureURL,
			Bytes:     res.Bytes,
			CreatedAt: time.Now(),
			PublicID:  res.PublicID,
		}
		return repo.Update(ctx, cardID, map[string]any{
			"attachments": ordered.Prepend(card.Attachments, attachment),
			"updatedAt":   time.Now(),
		})

	case req.RemoveAttachmentID != "":
		filtered := ordered.RemoveByID(card.Attachments, req.RemoveAttachmentID,
			func(a models.Attachment) string { return a.ID })
		return repo.Update(ctx, cardID, map[string]any{
			"attachments": filtered,
			"updatedAt":   time.Now(),
		})

	case req.Comment != "":
		// Snapshot the author's current profile into the comment.
		user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return repo.UnshiftComment(ctx, cardID, models.Comment{
			UserID:          user.ID,
			UserEmail:       user.Email,
			UserAvatar:      user.Avatar,
			UserDisplayName: user.DisplayName,
			Content:         req.Comment,
			CommentedAt:     time.Now(),
		})

	case req.MemberOp != nil:
		return repo.UpdateMembers(ctx, cardID, req.MemberOp.Action, req.MemberOp.UserID)

	case req.LabelOp != nil:
		return repo.UpdateLabels(ctx, cardID, req.LabelOp.Action, req.LabelOp.LabelID)

	case req.Dates != nil:
		return repo.UpdateDates(ctx, cardID, req.Dates)

	default:
		fields := make(map[string]any, len(req.Fields)+1)
		for name, value := range req.Fields {
			fields[name] = value
		}
		fields["updatedAt"] = time.Now()
		return repo.Update(ctx, cardID, fields)
	}
}
