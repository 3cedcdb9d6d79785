package mongo

import (
	"time"

	"taskboard/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// taskDocument is the stored shape of a task in the tasks collection.
type taskDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	TaskID      string             `bson:"taskId"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Status      string             `bson:"status"`
	DueDate     *time.Time         `bson:"dueDate,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func fromDomain(t *domain.Task) taskDocument {
	return taskDocument{
		TaskID:      t.TaskID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		DueDate:     dateToTime(t.DueDate),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (d taskDocument) toDomain() *domain.Task {
	var due *domain.Date
	if d.DueDate != nil {
		date := domain.DateOf(d.DueDate.UTC())
		due = &date
	}
	return &domain.Task{
		ID:          d.ID.Hex(),
		TaskID:      d.TaskID,
		Title:       d.Title,
		Description: d.Description,
		Status:      domain.Status(d.Status),
		DueDate:     due,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

// dateToTime stores a civil date as midnight UTC.
func dateToTime(d *domain.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time()
	return &t
}
