// Package models defines the server-side data models persisted in the
// document store. Embedded sub-entities (tasks, comments, attachments) and
// set-valued id fields are stored as JSONB.
package models

import "time"

// Board is the aggregate owning columns, cards and labels. The core only
// consumes its membership sets and soft-delete flag.
type Board struct {
	ID        string
	Title     string
	OwnerIDs  []string
	MemberIDs []string
	Destroy   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasMember reports whether userID is an owner or a member of the board.
func (b *Board) HasMember(userID string) bool {
	for _, id := range b.OwnerIDs {
		if id == userID {
			return true
		}
	}
	for _, id := range b.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
