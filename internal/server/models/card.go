package models

import "time"

// Card is the unit of work on a board. boardId/columnId are ownership
// references fixed at creation; everything else mutates through the card
// repository operations.
type Card struct {
	ID          string       `json:"_id"`
	BoardID     string       `json:"boardId"`
	ColumnID    string       `json:"columnId"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Cover       *string      `json:"cover"`
	MemberIDs   []string     `json:"memberIds"`
	Attachments []Attachment `json:"attachments"`
	LabelIDs    []string     `json:"labelIds"`
	Dates       Dates        `json:"dates"`
	Comments    []Comment    `json:"comments"`
	Tasks       []Task       `json:"tasks"`
	Destroy     bool         `json:"_destroy"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   *time.Time   `json:"updatedAt"`
}

// Attachment is immutable once created and removed by identity only.
// Sequences are kept newest-first.
type Attachment struct {
	ID        string    `json:"_id"`
	FileName  string    `json:"fileName"`
	Format    *string   `json:"format"`
	URL       string    `json:"url"`
	Bytes     int64     `json:"bytes"`
	CreatedAt time.Time `json:"createdAt"`
	PublicID  *string   `json:"publicId"`
}

// Comment snapshots the author's profile at comment time. userAvatar and
// userDisplayName are a denormalized cache refreshed only by the bulk
// author-profile refresh, never live-synced.
type Comment struct {
	UserID          string    `json:"userId"`
	UserEmail       string    `json:"userEmail"`
	UserAvatar      string    `json:"userAvatar"`
	UserDisplayName string    `json:"userDisplayName"`
	Content         string    `json:"content"`
	CommentedAt     time.Time `json:"commentedAt"`
}

// Dates carries an optional date range. totalDate is stored independently;
// no derivation from the range is enforced.
type Dates struct {
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	TotalDate *float64   `json:"totalDate"`
}
