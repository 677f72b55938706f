package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/quanle-dev/taskboard/internal/common"
	"github.com/quanle-dev/taskboard/internal/server/models"
	"github.com/quanle-dev/taskboard/internal/server/repositories/repomanager"
)

// UserService handles profile reads and updates. Profile updates fan out to
// every comment the user ever wrote, refreshing the denormalized
// avatar/display-name snapshots.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

// UpdateProfileRequest carries the patchable profile fields. Nil means
// "leave unchanged".
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName"`
	Avatar      *string `json:"avatar"`
}

// UpdateProfile persists the patch and refreshes the author snapshots on
// every comment matching the user, across all cards. The refresh is
// idempotent: re-running with the same values changes nothing.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	current, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	displayName := current.DisplayName
	if req.DisplayName != nil {
		trimmed := strings.TrimSpace(*req.DisplayName)
		if trimmed == "" {
			return nil, common.ErrValidation
		}
		displayName = trimmed
	}

	avatar := current.Avatar
	if req.Avatar != nil {
		avatar = *req.Avatar
	}

	user, err := repo.UpdateProfile(ctx, userID, displayName, avatar)
	if err != nil {
		return nil, err
	}

	if _, err := s.repomanager.Cards(s.db).RefreshCommentAuthors(ctx, userID, avatar, displayName); err != nil {
		return nil, err
	}

	return user, nil
}
