package domain

import "strings"

// TaskFilter represents the client-side view criteria for the task list.
// A zero TaskFilter matches every task.
type TaskFilter struct {
	// Search is matched case-insensitively against title and description.
	Search string
	// Status restricts the list to one status; empty means any.
	Status Status
}

// Matches reports whether t satisfies both the search text and the status.
func (f TaskFilter) Matches(t *Task) bool {
	if t == nil {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), needle) ||
		strings.Contains(strings.ToLower(t.Description), needle)
}

// Apply returns the tasks that match f, preserving order.
func (f TaskFilter) Apply(tasks []*Task) []*Task {
	out := make([]*Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}
