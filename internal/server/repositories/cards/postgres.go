// Package cards provides the PostgreSQL-backed card document repository.
// Embedded sub-entities (attachments, comments, tasks) and the id sets live
// in JSONB columns; mutations are single statements with RETURNING so the
// caller always sees the post-update document.
package cards

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/quanle-dev/taskboard/internal/common"
	"github.com/quanle-dev/taskboard/internal/dbx"
	"github.com/quanle-dev/taskboard/internal/server/models"
)

const cardColumns = `id, board_id, column_id, title, description, cover, member_ids, attachments, label_ids, dates, comments, tasks, destroy, created_at, updated_at`

// updatableColumns maps patchable document field names to table columns.
// _id, boardId and createdAt are deliberately absent: they are immutable
// after creation and silently stripped from generic patches.
var updatableColumns = map[string]string{
	"title":       "title",
	"description": "description",
	"cover":       "cover",
	"columnId":    "column_id",
	"memberIds":   "member_ids",
	"attachments": "attachments",
	"labelIds":    "label_ids",
	"dates":       "dates",
	"comments":    "comments",
	"tasks":       "tasks",
	"_destroy":    "destroy",
	"updatedAt":   "updated_at",
}

// jsonbFields marks the document fields whose values must be marshalled to
// JSONB before binding.
var jsonbFields = map[string]bool{
	"memberIds":   true,
	"attachments": true,
	"labelIds":    true,
	"dates":       true,
	"comments":    true,
	"tasks":       true,
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, card *models.Card) (string, error) {
	query := `
		INSERT INTO cards (board_id, column_id, title, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id
		`

	var id string
	err := r.db.QueryRowContext(ctx, query,
		card.BoardID, card.ColumnID, card.Title, card.Description).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, cardID string) (*models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, cardID))
}

func (r *PostgresRepository) Update(ctx context.Context, cardID string, fields map[string]any) (*models.Card, error) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		if _, ok := updatableColumns[name]; ok {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return r.GetByID(ctx, cardID)
	}
	// Deterministic statement shape for a given field set.
	sort.Strings(names)

	set := make([]string, 0, len(names))
	args := []any{cardID}
	for _, name := range names {
		value := fields[name]
		if jsonbFields[name] {
			encoded, err := json.Marshal(value)
			if err != nil {
				return nil, fmt.Errorf("encode %s: %w", name, err)
			}
			set = append(set, fmt.Sprintf("%s = $%d::jsonb", updatableColumns[name], len(args)+1))
			args = append(args, encoded)
			continue
		}
		set = append(set, fmt.Sprintf("%s = $%d", updatableColumns[name], len(args)+1))
		args = append(args, value)
	}

	query := `UPDATE cards SET ` + strings.Join(set, ", ") + ` WHERE id = $1 RETURNING ` + cardColumns
	return r.scanOne(r.db.QueryRowContext(ctx, query, args...))
}

func (r *PostgresRepository) UpdateTasks(ctx context.Context, cardID string, tasks []models.Task, updatedAt time.Time) (*models.Card, error) {
	if tasks == nil {
		tasks = []models.Task{}
	}
	encoded, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}

	query := `
		UPDATE cards SET tasks = $2::jsonb, updated_at = $3
		WHERE id = $1
		RETURNING ` + cardColumns

	return r.scanOne(r.db.QueryRowContext(ctx, query, cardID, encoded, updatedAt))
}

func (r *PostgresRepository) UnshiftComment(ctx context.Context, cardID string, comment models.Comment) (*models.Card, error) {
	encoded, err := json.Marshal(comment)
	if err != nil {
		return nil, fmt.Errorf("encode comment: %w", err)
	}

	query := `
		UPDATE cards SET comments = jsonb_insert(comments, '{0}', $2::jsonb), updated_at = now()
		WHERE id = $1
		RETURNING ` + cardColumns

	return r.scanOne(r.db.QueryRowContext(ctx, query, cardID, encoded))
}

func (r *PostgresRepository) UpdateMembers(ctx context.Context, cardID string, action common.SetAction, userID string) (*models.Card, error) {
	return r.updateIDSet(ctx, cardID, "member_ids", action, userID)
}

func (r *PostgresRepository) UpdateLabels(ctx context.Context, cardID string, action common.SetAction, labelID string) (*models.Card, error) {
	return r.updateIDSet(ctx, cardID, "label_ids", action, labelID)
}

// updateIDSet applies set-membership semantics to a JSONB id array: ADD is
// dedup-safe, REMOVE of an absent id is a no-op. Any other action leaves the
// field untouched and just returns the card.
func (r *PostgresRepository) updateIDSet(ctx context.Context, cardID, column string, action common.SetAction, id string) (*models.Card, error) {
	switch action {
	case common.SetActionAdd:
		elem, err := json.Marshal([]string{id})
		if err != nil {
			return nil, err
		}
		query := fmt.Sprintf(`
			UPDATE cards SET %[1]s = CASE WHEN %[1]s @> $2::jsonb THEN %[1]s ELSE %[1]s || $2::jsonb END
			WHERE id = $1
			RETURNING `, column) + cardColumns
		return r.scanOne(r.db.QueryRowContext(ctx, query, cardID, elem))

	case common.SetActionRemove:
		query := fmt.Sprintf(`
			UPDATE cards SET %[1]s = %[1]s - $2::text
			WHERE id = $1
			RETURNING `, column) + cardColumns
		return r.scanOne(r.db.QueryRowContext(ctx, query, cardID, id))

	default:
		return r.GetByID(ctx, cardID)
	}
}

// dateKeys is the closed set of patchable keys inside the dates object.
var dateKeys = map[string]bool{"startDate": true, "endDate": true, "totalDate": true}

func (r *PostgresRepository) UpdateDates(ctx context.Context, cardID string, patch map[string]any) (*models.Card, error) {
	filtered := make(map[string]any, len(patch))
	for key, value := range patch {
		if dateKeys[key] {
			filtered[key] = value
		}
	}
	if len(filtered) == 0 {
		return r.GetByID(ctx, cardID)
	}

	encoded, err := json.Marshal(filtered)
	if err != nil {
		return nil, fmt.Errorf("encode dates: %w", err)
	}

	query := `
		UPDATE cards SET dates = dates || $2::jsonb, updated_at = now()
		WHERE id = $1
		RETURNING ` + cardColumns

	return r.scanOne(r.db.QueryRowContext(ctx, query, cardID, encoded))
}

func (r *PostgresRepository) RemoveLabelFromCards(ctx context.Context, labelID string) (int64, error) {
	// One bulk statement so the cascade is not a per-card round trip.
	query := `
		UPDATE cards SET label_ids = label_ids - $1::text
		WHERE label_ids @> jsonb_build_array($1::text)
		`

	res, err := r.db.ExecContext(ctx, query, labelID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) RefreshCommentAuthors(ctx context.Context, userID, avatar, displayName string) (int64, error) {
	query := `
		UPDATE cards SET comments = (
			SELECT jsonb_agg(
				CASE WHEN c->>'userId' = $1
					THEN c || jsonb_build_object('userAvatar', $2::text, 'userDisplayName', $3::text)
					ELSE c
				END ORDER BY ord)
			FROM jsonb_array_elements(comments) WITH ORDINALITY AS t(c, ord)
		)
		WHERE EXISTS (
			SELECT 1 FROM jsonb_array_elements(comments) AS c WHERE c->>'userId' = $1
		)
		`

	res, err := r.db.ExecContext(ctx, query, userID, avatar, displayName)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) DeleteManyByColumnID(ctx context.Context, columnID string) (int64, error) {
	query := `DELETE FROM cards WHERE column_id = $1`

	res, err := r.db.ExecContext(ctx, query, columnID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Card, error) {
	card := &models.Card{}
	var cover sql.NullString
	var updatedAt sql.NullTime
	var memberIDs, attachments, labelIDs, dates, comments, tasks []byte

	err := row.Scan(
		&card.ID, &card.BoardID, &card.ColumnID, &card.Title, &card.Description, &cover,
		&memberIDs, &attachments, &labelIDs, &dates, &comments, &tasks,
		&card.Destroy, &card.CreatedAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if cover.Valid {
		card.Cover = &cover.String
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		card.UpdatedAt = &t
	}

	for _, field := range []struct {
		raw []byte
		dst any
	}{
		{memberIDs, &card.MemberIDs},
		{attachments, &card.Attachments},
		{labelIDs, &card.LabelIDs},
		{dates, &card.Dates},
		{comments, &card.Comments},
		{tasks, &card.Tasks},
	} {
		if err := json.Unmarshal(field.raw, field.dst); err != nil {
			return nil, fmt.Errorf("card decode error: %w", err)
		}
	}

	return card, nil
}
