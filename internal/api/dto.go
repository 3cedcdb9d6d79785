package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"taskboard/internal/domain"
)

// optionalDate distinguishes an absent dueDate from an explicit null.
// Null and "" both mean "no date".
type optionalDate struct {
	Set   bool
	Value *domain.Date
}

func (o *optionalDate) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("dueDate must be a date string or null")
	}
	if s == "" {
		o.Value = nil
		return nil
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return err
	}
	o.Value = &d
	return nil
}

// createTaskRequest is the POST /api/tasks body. Unknown fields are ignored.
type createTaskRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	DueDate     optionalDate `json:"dueDate"`
}

func (r createTaskRequest) toInput() domain.NewTaskInput {
	return domain.NewTaskInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      domain.Status(r.Status),
		DueDate:     r.DueDate.Value,
	}
}

// updateTaskRequest is the PATCH /api/tasks/{id} body. Absent fields are
// left unchanged; dueDate null clears the date.
type updateTaskRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Status      *string      `json:"status"`
	DueDate     optionalDate `json:"dueDate"`
}

func (r updateTaskRequest) toPatch() domain.TaskPatch {
	patch := domain.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
	}
	if r.Status != nil {
		s := domain.Status(*r.Status)
		patch.Status = &s
	}
	if r.DueDate.Set {
		if r.DueDate.Value == nil {
			patch.ClearDueDate = true
		} else {
			patch.DueDate = r.DueDate.Value
		}
	}
	return patch
}

// deleteResponse acknowledges a delete.
type deleteResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// errorResponse is the body of every non-2xx JSON response.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
