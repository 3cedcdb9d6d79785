package domain

import "strings"

// TaskPatch is a partial update. Nil fields are left untouched.
// ClearDueDate removes the due date and takes precedence over DueDate.
type TaskPatch struct {
	Title        *string
	Description  *string
	Status       *Status
	DueDate      *Date
	ClearDueDate bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.DueDate == nil && !p.ClearDueDate
}

// Apply merges the patch into t. The title is trimmed.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	switch {
	case p.ClearDueDate:
		t.DueDate = nil
	case p.DueDate != nil:
		due := *p.DueDate
		t.DueDate = &due
	}
}

// StatusPatch returns a patch that only sets the status.
func StatusPatch(s Status) TaskPatch {
	return TaskPatch{Status: &s}
}
