package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task is one level of the checklist embedded in a card. Its identity is
// assigned once at construction and never regenerated.
type Task struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	Subtasks    []Subtask `json:"subtasks"`
}

// Subtask supports multi-user assignment. LegacyAssigneeID is the old
// single-assignee field kept on the JSON shape for documents written before
// assigneeIds existed; new writes always produce AssigneeIDs.
type Subtask struct {
	ID               string    `json:"_id"`
	Title            string    `json:"title"`
	IsCompleted      bool      `json:"isCompleted"`
	AssigneeIDs      []string  `json:"assigneeIds"`
	LegacyAssigneeID string    `json:"assigneeId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Assignees resolves the current assignee set, falling back to the legacy
// single-assignee field when the set field is absent.
func (s *Subtask) Assignees() []string {
	if s.AssigneeIDs != nil {
		return s.AssigneeIDs
	}
	if s.LegacyAssigneeID != "" {
		return []string{s.LegacyAssigneeID}
	}
	return []string{}
}

// NewTask constructs a task with a generated identity, trimmed title and
// trimmed-or-empty description.
func NewTask(title, description string) Task {
	return Task{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now().UTC(),
		Subtasks:    []Subtask{},
	}
}

// NewSubtask constructs a subtask with a generated identity and defaults.
func NewSubtask(title string) Subtask {
	return Subtask{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(title),
		IsCompleted: false,
		AssigneeIDs: []string{},
		CreatedAt:   time.Now().UTC(),
	}
}
