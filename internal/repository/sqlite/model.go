package sqlite

import (
	"database/sql"
	"strconv"

	"taskboard/internal/domain"
)

// taskRow mirrors a row of the tasks table.
type taskRow struct {
	ID          int64
	TaskUID     string
	Title       string
	Description string
	Status      string
	DueDate     sql.NullString
	CreatedAt   string
	UpdatedAt   string
}

// toDomain converts a database row into a domain Task.
func (r *taskRow) toDomain() (*domain.Task, error) {
	createdAt, err := ParseTimeFromDB(r.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := ParseTimeFromDB(r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	due, err := ParseDateFromDB(r.DueDate)
	if err != nil {
		return nil, err
	}

	return &domain.Task{
		ID:          FormatID(r.ID),
		TaskID:      r.TaskUID,
		Title:       r.Title,
		Description: r.Description,
		Status:      domain.Status(r.Status),
		DueDate:     due,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// FormatID renders a rowid as the opaque string id handed to callers.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// ParseID converts an opaque id back into a rowid.
func ParseID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
