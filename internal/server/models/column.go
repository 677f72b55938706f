package models

import "time"

// Column belongs to a board and holds the display order of its cards.
type Column struct {
	ID           string
	BoardID      string
	Title        string
	CardOrderIDs []string
	Destroy      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
