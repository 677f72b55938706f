package tasks

import (
	"strings"

	"github.com/quanle-dev/taskboard/internal/ordered"
	"github.com/quanle-dev/taskboard/internal/server/models"
)

// Apply computes the next task tree for the given action. The input slice is
// never mutated. Lookups that fail to match leave the corresponding records
// unchanged; the reorder actions instead drop ids missing from either side.
func Apply(current []models.Task, a Action) []models.Task {
	p := a.Payload

	switch a.Type {
	case TypeAddTask:
		if strings.TrimSpace(p.Title) == "" {
			return copyTasks(current)
		}
		desc := ""
		if p.Description != nil {
			desc = *p.Description
		}
		return ordered.Prepend(current, models.NewTask(p.Title, desc))

	case TypeUpdateTask:
		return mapTask(current, p.TaskID, func(t models.Task) models.Task {
			if title := strings.TrimSpace(p.Title); title != "" {
				t.Title = title
			}
			if p.Description != nil {
				t.Description = strings.TrimSpace(*p.Description)
			}
			return t
		})

	case TypeDeleteTask:
		return ordered.RemoveByID(current, p.TaskID, taskID)

	case TypeReorderTasks:
		return ordered.ReorderByID(current, p.OrderedIDs, taskID)

	case TypeAddSubtask:
		if strings.TrimSpace(p.Title) == "" {
			return copyTasks(current)
		}
		return mapTask(current, p.TaskID, func(t models.Task) models.Task {
			t.Subtasks = ordered.Prepend(t.Subtasks, models.NewSubtask(p.Title))
			return t
		})

	case TypeUpdateSubtask:
		return mapSubtask(current, p.TaskID, p.SubtaskID, func(s models.Subtask) models.Subtask {
			if title := strings.TrimSpace(p.Title); title != "" {
				s.Title = title
			}
			return s
		})

	case TypeToggleSubtask:
		// An absolute set driven by the caller-supplied target state, not a
		// toggle of the current value.
		return mapSubtask(current, p.TaskID, p.SubtaskID, func(s models.Subtask) models.Subtask {
			s.IsCompleted = p.IsCompleted
			return s
		})

	case TypeAssignSubtask:
		return mapSubtask(current, p.TaskID, p.SubtaskID, func(s models.Subtask) models.Subtask {
			return assign(s, p)
		})

	case TypeReorderSubtasks:
		return mapTask(current, p.TaskID, func(t models.Task) models.Task {
			t.Subtasks = ordered.ReorderByID(t.Subtasks, p.OrderedIDs, subtaskID)
			return t
		})

	case TypeDeleteSubtask:
		return mapTask(current, p.TaskID, func(t models.Task) models.Task {
			t.Subtasks = ordered.RemoveByID(t.Subtasks, p.SubtaskID, subtaskID)
			return t
		})

	case TypeCompleteAllSubtasks:
		return mapTask(current, p.TaskID, func(t models.Task) models.Task {
			subs := make([]models.Subtask, len(t.Subtasks))
			for i, s := range t.Subtasks {
				s.IsCompleted = true
				subs[i] = s
			}
			t.Subtasks = subs
			return t
		})

	default:
		// Unknown action types leave the tree unchanged.
		return copyTasks(current)
	}
}

// assign applies the ASSIGN_SUBTASK semantics to one subtask: clearAll wins,
// then add/remove of a single user id with set semantics. New writes always
// produce the set-valued field; the legacy single-assignee field is consumed
// through Assignees and cleared on write.
func assign(s models.Subtask, p Payload) models.Subtask {
	if p.ClearAll {
		s.AssigneeIDs = []string{}
		s.LegacyAssigneeID = ""
		return s
	}
	if p.UserID == "" {
		return s
	}

	current := s.Assignees()
	if p.Remove {
		next := make([]string, 0, len(current))
		for _, id := range current {
			if id != p.UserID {
				next = append(next, id)
			}
		}
		s.AssigneeIDs = next
		s.LegacyAssigneeID = ""
		return s
	}

	for _, id := range current {
		if id == p.UserID {
			// Duplicate add is a no-op, but the read path may still have
			// normalized the legacy field into the set form.
			s.AssigneeIDs = current
			s.LegacyAssigneeID = ""
			return s
		}
	}
	s.AssigneeIDs = append(append([]string{}, current...), p.UserID)
	s.LegacyAssigneeID = ""
	return s
}

func taskID(t models.Task) string       { return t.ID }
func subtaskID(s models.Subtask) string { return s.ID }

func copyTasks(tasks []models.Task) []models.Task {
	return append([]models.Task{}, tasks...)
}

// mapTask returns a new slice with fn applied to the task matching id.
// No match means the sequence is returned unchanged (copied).
func mapTask(tasks []models.Task, id string, fn func(models.Task) models.Task) []models.Task {
	result := copyTasks(tasks)
	for i, t := range result {
		if t.ID == id {
			result[i] = fn(t)
		}
	}
	return result
}

// mapSubtask applies fn to the subtask matching subtaskID within the task
// matching taskID, leaving every other record untouched.
func mapSubtask(tasks []models.Task, taskID, subtaskID string, fn func(models.Subtask) models.Subtask) []models.Task {
	return mapTask(tasks, taskID, func(t models.Task) models.Task {
		subs := make([]models.Subtask, len(t.Subtasks))
		for i, s := range t.Subtasks {
			if s.ID == subtaskID {
				s = fn(s)
			}
			subs[i] = s
		}
		t.Subtasks = subs
		return t
	})
}
