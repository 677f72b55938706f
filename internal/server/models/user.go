package models

import "time"

// User carries the profile fields snapshotted into comments. Authentication
// itself happens upstream; the server only reads and patches profiles.
type User struct {
	ID          string
	Email       string
	DisplayName string
	Avatar      string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
