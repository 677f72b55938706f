package services

import (
	"context"
	"testing"
	"time"

	"github.com/quanle-dev/taskboard/internal/common"
	"github.com/quanle-dev/taskboard/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newUserService() (*UserService, *fakeManager) {
	m := newFakeManager()
	m.userRepo.users["u1"] = &models.User{
		ID: "u1", Email: "u1@example.com", DisplayName: "Alice", Avatar: "old.png",
	}
	return NewUserService(nil, m), m
}

func TestUpdateProfile_RefreshesCommentSnapshots(t *testing.T) {
	svc, m := newUserService()
	now := time.Now()
	m.cardRepo.cards["c1"] = &models.Card{ID: "c1", Comments: []models.Comment{
		{UserID: "u1", UserDisplayName: "Alice", UserAvatar: "old.png", Content: "mine", CommentedAt: now},
		{UserID: "u2", UserDisplayName: "Bob", UserAvatar: "b.png", Content: "theirs", CommentedAt: now},
	}}
	m.cardRepo.cards["c2"] = &models.Card{ID: "c2", Comments: []models.Comment{
		{UserID: "u1", UserDisplayName: "Alice", UserAvatar: "old.png", Content: "also mine", CommentedAt: now},
	}}

	user, err := svc.UpdateProfile(context.Background(), "u1", &UpdateProfileRequest{
		DisplayName: strPtr("Alice B"),
		Avatar:      strPtr("new.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", user.DisplayName)
	assert.Equal(t, "new.png", user.Avatar)

	c1 := m.cardRepo.cards["c1"]
	assert.Equal(t, "Alice B", c1.Comments[0].UserDisplayName)
	assert.Equal(t, "new.png", c1.Comments[0].UserAvatar)
	assert.Equal(t, "mine", c1.Comments[0].Content, "content never edited")
	assert.Equal(t, "Bob", c1.Comments[1].UserDisplayName, "other authors untouched")
	assert.Equal(t, "Alice B", m.cardRepo.cards["c2"].Comments[0].UserDisplayName)
}

func TestUpdateProfile_Idempotent(t *testing.T) {
	svc, m := newUserService()
	m.cardRepo.cards["c1"] = &models.Card{ID: "c1", Comments: []models.Comment{
		{UserID: "u1", Content: "hi"},
	}}

	req := &UpdateProfileRequest{DisplayName: strPtr("Alice B"), Avatar: strPtr("new.png")}
	_, err := svc.UpdateProfile(context.Background(), "u1", req)
	require.NoError(t, err)
	again, err := svc.UpdateProfile(context.Background(), "u1", req)
	require.NoError(t, err)

	assert.Equal(t, "Alice B", again.DisplayName)
	assert.Equal(t, "new.png", m.cardRepo.cards["c1"].Comments[0].UserAvatar)
}

func TestUpdateProfile_NilFieldsKeepCurrent(t *testing.T) {
	svc, _ := newUserService()

	user, err := svc.UpdateProfile(context.Background(), "u1", &UpdateProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.DisplayName)
	assert.Equal(t, "old.png", user.Avatar)
}

func TestUpdateProfile_WhitespaceDisplayNameRejected(t *testing.T) {
	svc, m := newUserService()

	_, err := svc.UpdateProfile(context.Background(), "u1", &UpdateProfileRequest{
		DisplayName: strPtr("   "),
	})
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Equal(t, "Alice", m.userRepo.users["u1"].DisplayName)
}

func TestUpdateProfile_UnknownUserNotFound(t *testing.T) {
	svc, _ := newUserService()

	_, err := svc.UpdateProfile(context.Background(), "ghost", &UpdateProfileRequest{
		DisplayName: strPtr("X"),
	})
	assert.ErrorIs(t, err, common.ErrNotFound)
}
