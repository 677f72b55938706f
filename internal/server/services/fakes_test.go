package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/quanle-dev/taskboard/internal/common"
	"github.com/quanle-dev/taskboard/internal/dbx"
	"github.com/quanle-dev/taskboard/internal/ordered"
	"github.com/quanle-dev/taskboard/internal/server/models"
	"github.com/quanle-dev/taskboard/internal/server/repositories/boards"
	"github.com/quanle-dev/taskboard/internal/server/repositories/cards"
	"github.com/quanle-dev/taskboard/internal/server/repositories/columns"
	"github.com/quanle-dev/taskboard/internal/server/repositories/labels"
	"github.com/quanle-dev/taskboard/internal/server/repositories/users"
)

// In-memory repository fakes mirroring the store-contract semantics, so
// service logic can be exercised without a database.

type fakeBoardRepo struct {
	boards map[string]*models.Board
}

func (r *fakeBoardRepo) GetByID(_ context.Context, boardID string) (*models.Board, error) {
	b, ok := r.boards[boardID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return b, nil
}

type fakeColumnRepo struct {
	columns map[string]*models.Column
	pushed  []string
	pushErr error
}

func (r *fakeColumnRepo) GetByID(_ context.Context, columnID string) (*models.Column, error) {
	c, ok := r.columns[columnID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return c, nil
}

func (r *fakeColumnRepo) PushCardOrderIDs(_ context.Context, card *models.Card) error {
	if r.pushErr != nil {
		return r.pushErr
	}
	r.pushed = append(r.pushed, card.ID)
	if c, ok := r.columns[card.ColumnID]; ok {
		c.CardOrderIDs = append(c.CardOrderIDs, card.ID)
	}
	return nil
}

type fakeCardRepo struct {
	cards  map[string]*models.Card
	nextID int

	lastUpdateFields map[string]any
	lastDatesPatch   map[string]any
	tasksUpdates     int
	removeLabelCalls []string
}

func newFakeCardRepo() *fakeCardRepo {
	return &fakeCardRepo{cards: map[string]*models.Card{}}
}

func (r *fakeCardRepo) Create(_ context.Context, card *models.Card) (string, error) {
	r.nextID++
	id := fmt.Sprintf("card-%d", r.nextID)
	r.cards[id] = &models.Card{
		ID:          id,
		BoardID:     card.BoardID,
		ColumnID:    card.ColumnID,
		Title:       card.Title,
		Description: card.Description,
		MemberIDs:   []string{},
		Attachments: []models.Attachment{},
		LabelIDs:    []string{},
		Comments:    []models.Comment{},
		Tasks:       []models.Task{},
		CreatedAt:   time.Now(),
	}
	return id, nil
}

func (r *fakeCardRepo) GetByID(_ context.Context, cardID string) (*models.Card, error) {
	c, ok := r.cards[cardID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return c, nil
}

func (r *fakeCardRepo) Update(ctx context.Context, cardID string, fields map[string]any) (*models.Card, error) {
	card, err := r.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	r.lastUpdateFields = fields
	for name, value := range fields {
		switch name {
		case "title":
			card.Title = value.(string)
		case "cover":
			s := value.(string)
			card.Cover = &s
		case "attachments":
			card.Attachments = value.([]models.Attachment)
		case "updatedAt":
			t := value.(time.Time)
			card.UpdatedAt = &t
		}
	}
	return card, nil
}

func (r *fakeCardRepo) UpdateTasks(ctx context.Context, cardID string, tasks []models.Task, updatedAt time.Time) (*models.Card, error) {
	card, err := r.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	card.Tasks = tasks
	card.UpdatedAt = &updatedAt
	r.tasksUpdates++
	return card, nil
}

func (r *fakeCardRepo) UnshiftComment(ctx context.Context, cardID string, comment models.Comment) (*models.Card, error) {
	card, err := r.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	card.Comments = ordered.Prepend(card.Comments, comment)
	return card, nil
}

func setAdd(set []string, id string) []string {
	for _, v := range set {
		if v == id {
			return set
		}
	}
	return append(set, id)
}

func setRemove(set []string, id string) []string {
	result := make([]string, 0, len(set))
	for _, v := range set {
		if v != id {
			result = append(result, v)
		}
	}
	return result
}

func (r *fakeCardRepo) UpdateMembers(ctx context.Context, cardID string, action common.SetAction, userID string) (*models.Card, error) {
	card, err := r.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	switch action {
	case common.SetActionAdd:
		card.MemberIDs = setAdd(card.MemberIDs, userID)
	case common.SetActionRemove:
		card.MemberIDs = setRemove(card.MemberIDs, userID)
	}
	return card, nil
}

func (r *fakeCardRepo) UpdateLabels(ctx context.Context, cardID string, action common.SetAction, labelID string) (*models.Card, error) {
	card, err := r.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	switch action {
	case common.SetActionAdd:
		card.LabelIDs = setAdd(card.LabelIDs, labelID)
	case common.SetActionRemove:
		card.LabelIDs = setRemove(card.LabelIDs, labelID)
	}
	return card, nil
}

func (r *fakeCardRepo) UpdateDates(ctx context.Context, cardID string, patch map[string]any) (*models.Card, error) {
	card, err := r.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	r.lastDatesPatch = patch
	return card, nil
}

func (r *fakeCardRepo) RemoveLabelFromCards(_ context.Context, labelID string) (int64, error) {
	r.removeLabelCalls = append(r.removeLabelCalls, labelID)
	var n int64
	for _, card := range r.cards {
		before := len(card.LabelIDs)
		card.LabelIDs = setRemove(card.LabelIDs, labelID)
		if len(card.LabelIDs) != before {
			n++
		}
	}
	return n, nil
}

func (r *fakeCardRepo) RefreshCommentAuthors(_ context.Context, userID, avatar, displayName string) (int64, error) {
	var n int64
	for _, card := range r.cards {
		touched := false
		for i := range card.Comments {
			if card.Comments[i].UserID == userID {
				card.Comments[i].UserAvatar = avatar
				card.Comments[i].UserDisplayName = displayName
				touched = true
			}
		}
		if touched {
			n++
		}
	}
	return n, nil
}

func (r *fakeCardRepo) DeleteManyByColumnID(_ context.Context, columnID string) (int64, error) {
	var n int64
	for id, card := range r.cards {
		if card.ColumnID == columnID {
			delete(r.cards, id)
			n++
		}
	}
	return n, nil
}

type fakeLabelRepo struct {
	labels map[string]*models.Label
	nextID int
}

func newFakeLabelRepo() *fakeLabelRepo {
	return &fakeLabelRepo{labels: map[string]*models.Label{}}
}

func (r *fakeLabelRepo) Create(_ context.Context, label *models.Label) (string, error) {
	r.nextID++
	id := fmt.Sprintf("label-%d", r.nextID)
	r.labels[id] = &models.Label{
		ID:        id,
		BoardID:   label.BoardID,
		Title:     label.Title,
		Color:     label.Color,
		CreatedAt: time.Now(),
	}
	return id, nil
}

func (r *fakeLabelRepo) GetByID(_ context.Context, labelID string) (*models.Label, error) {
	l, ok := r.labels[labelID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return l, nil
}

func (r *fakeLabelRepo) FindByBoardID(_ context.Context, boardID string) ([]*models.Label, error) {
	var result []*models.Label
	for _, l := range r.labels {
		if l.BoardID == boardID && !l.Destroy {
			result = append(result, l)
		}
	}
	return result, nil
}

func (r *fakeLabelRepo) Update(ctx context.Context, labelID string, fields map[string]any) (*models.Label, error) {
	label, err := r.GetByID(ctx, labelID)
	if err != nil {
		return nil, err
	}
	for name, value := range fields {
		switch name {
		case "title":
			label.Title = value.(string)
		case "color":
			label.Color = value.(string)
		case "_destroy":
			label.Destroy = value.(bool)
		case "updatedAt":
			t := value.(time.Time)
			label.UpdatedAt = &t
		}
	}
	return label, nil
}

func (r *fakeLabelRepo) Delete(_ context.Context, labelID string) error {
	if _, ok := r.labels[labelID]; !ok {
		return common.ErrNotFound
	}
	delete(r.labels, labelID)
	return nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID string) (*models.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, userID, displayName, avatar string) (*models.User, error) {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.DisplayName = displayName
	user.Avatar = avatar
	now := time.Now()
	user.UpdatedAt = &now
	return user, nil
}

type fakeManager struct {
	boardRepo  *fakeBoardRepo
	columnRepo *fakeColumnRepo
	cardRepo   *fakeCardRepo
	labelRepo  *fakeLabelRepo
	userRepo   *fakeUserRepo
}

func newFakeManager() *fakeManager {
	return &fakeManager{
		boardRepo:  &fakeBoardRepo{boards: map[string]*models.Board{}},
		columnRepo: &fakeColumnRepo{columns: map[string]*models.Column{}},
		cardRepo:   newFakeCardRepo(),
		labelRepo:  newFakeLabelRepo(),
		userRepo:   &fakeUserRepo{users: map[string]*models.User{}},
	}
}

func (m *fakeManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeManager) Boards(dbx.DBTX) boards.Repository            { return m.boardRepo }
func (m *fakeManager) Columns(dbx.DBTX) columns.Repository          { return m.columnRepo }
func (m *fakeManager) Cards(dbx.DBTX) cards.Repository              { return m.cardRepo }
func (m *fakeManager) Labels(dbx.DBTX) labels.Repository            { return m.labelRepo }
func (m *fakeManager) Users(dbx.DBTX) users.Repository              { return m.userRepo }

// fakeStorage returns a canned result or error without touching the network.
type fakeStorage struct {
	result  *UploadResult
	err     error
	uploads int
	folders []string
}

func (s *fakeStorage) Upload(_ context.Context, data []byte, filename, folder string) (*UploadResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.uploads++
	s.folders = append(s.folders, folder)
	if s.result != nil {
		return s.result, nil
	}
	return &UploadResult{
		AssetID:          "asset-1",
		OriginalFilename: filename,
		SecureURL:        "https://store.example.com/" + folder + "/" + filename,
		Bytes:            int64(len(data)),
	}, nil
}

// testBoard wires a board with one known member into the fake manager.
func (m *fakeManager) addBoard(id string, ownerIDs, memberIDs []string) {
	m.boardRepo.boards[id] = &models.Board{
		ID:        id,
		Title:     "Board " + id,
		OwnerIDs:  ownerIDs,
		MemberIDs: memberIDs,
		CreatedAt: time.Now(),
	}
}
