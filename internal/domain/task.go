package domain

import (
	"strings"
	"time"
)

// Task is the single entity of the application: a to-do item.
// ID is assigned by the store and is opaque to everything else; TaskID is a
// UUID generated by the service at creation time.
type Task struct {
	ID          string    `json:"id"`
	TaskID      string    `json:"taskId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	DueDate     *Date     `json:"dueDate,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewTaskInput carries the user-supplied fields of a task to create.
type NewTaskInput struct {
	Title       string
	Description string
	Status      Status
	DueDate     *Date
}

// NewTask builds a task ready for insertion: the title is trimmed and the
// status defaults to pending.
func NewTask(in NewTaskInput, taskID string) *Task {
	status := in.Status
	if status == "" {
		status = StatusPending
	}
	return &Task{
		TaskID:      taskID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Status:      status,
		DueDate:     in.DueDate,
	}
}

// IsValid checks the invariants every stored task satisfies.
func (t Task) IsValid() bool {
	return strings.TrimSpace(t.Title) != "" && t.Status.IsValid()
}

// IsCompleted reports whether the task is done.
func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}

// StatusForDueDate is the status a freshly added task starts in: in-progress
// when it is due today, pending otherwise. It never yields completed.
func StatusForDueDate(due *Date, today Date) Status {
	if due != nil && due.Equal(today) {
		return StatusInProgress
	}
	return StatusPending
}
