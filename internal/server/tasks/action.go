// Package tasks implements the card task-action state machine: a
// discriminated action applied to a card's embedded task/subtask tree,
// producing the next tree. Apply is pure; persistence happens in the card
// service.
package tasks

// Type discriminates task actions. The set is closed; unknown values are
// defined no-ops, not errors.
type Type string

const (
	TypeAddTask             Type = "ADD_TASK"
	TypeUpdateTask          Type = "UPDATE_TASK"
	TypeDeleteTask          Type = "DELETE_TASK"
	TypeReorderTasks        Type = "REORDER_TASKS"
	TypeAddSubtask          Type = "ADD_SUBTASK"
	TypeUpdateSubtask       Type = "UPDATE_SUBTASK"
	TypeToggleSubtask       Type = "TOGGLE_SUBTASK"
	TypeAssignSubtask       Type = "ASSIGN_SUBTASK"
	TypeReorderSubtasks     Type = "REORDER_SUBTASKS"
	TypeDeleteSubtask       Type = "DELETE_SUBTASK"
	TypeCompleteAllSubtasks Type = "COMPLETE_ALL_SUBTASKS"
)

// Payload carries the union of action-specific fields. All fields are
// optional-safe: a missing field makes the affected record a no-op, never a
// crash. Description is a pointer so an explicitly supplied empty string
// (clear the description) is distinguishable from an absent field.
type Payload struct {
	TaskID      string   `json:"taskId"`
	SubtaskID   string   `json:"subtaskId"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	IsCompleted bool     `json:"isCompleted"`
	UserID      string   `json:"userId"`
	Remove      bool     `json:"remove"`
	ClearAll    bool     `json:"clearAll"`
	OrderedIDs  []string `json:"orderedIds"`
}

// Action is one discriminated mutation of a card's task tree.
type Action struct {
	Type    Type    `json:"type"`
	Payload Payload `json:"payload"`
}
