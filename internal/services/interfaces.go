package services

import (
	"context"

	"taskboard/internal/domain"

	"github.com/google/uuid"
)

// IDGenerator produces the public taskId assigned at creation
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator generates random (version 4) UUIDs
type UUIDGenerator struct{}

// NewID returns a new UUID string
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// IDGeneratorFunc adapts a function to IDGenerator
type IDGeneratorFunc func() string

// NewID calls f
func (f IDGeneratorFunc) NewID() string {
	return f()
}

// TaskService handles the task lifecycle on top of a store
type TaskService interface {
	ListTasks(ctx context.Context) ([]*domain.Task, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	CreateTask(ctx context.Context, in domain.NewTaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error

	// SearchTasks runs a full-text query over title and description
	SearchTasks(ctx context.Context, query string) ([]*domain.Task, error)
}

// SortOrder defines how task results should be sorted
type SortOrder string

const (
	SortByCreated SortOrder = "created" // Store order (default)
	SortByTitle   SortOrder = "title"   // Alphabetical, case-insensitive
	SortByDueDate SortOrder = "due"     // Earliest due first, undated last
	SortByStatus  SortOrder = "status"  // pending, in-progress, completed
)

// SortOrders lists the accepted sort orders
var SortOrders = []SortOrder{SortByCreated, SortByTitle, SortByDueDate, SortByStatus}

// SearchCriteria represents criteria for searching tasks
type SearchCriteria struct {
	// Query is a full-text query; empty lists everything
	Query  string        `json:"query,omitempty"`
	Status domain.Status `json:"status,omitempty"`
	Sort   SortOrder     `json:"sort,omitempty"`
}

// SearchService handles search and discovery operations
type SearchService interface {
	Search(ctx context.Context, criteria SearchCriteria) ([]*domain.Task, error)
	SortTasks(tasks []*domain.Task, order SortOrder) []*domain.Task
}

// BoardSummary counts tasks by status and by category relative to a day
type BoardSummary struct {
	Total      int                     `json:"total"`
	ByStatus   map[domain.Status]int   `json:"byStatus"`
	ByCategory map[domain.Category]int `json:"byCategory"`
}

// ReportingService handles aggregate views over all tasks
type ReportingService interface {
	GetSummary(ctx context.Context, today domain.Date) (*BoardSummary, error)
	Summarize(tasks []*domain.Task, today domain.Date) *BoardSummary
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TaskService      TaskService
	SearchService    SearchService
	ReportingService ReportingService
}
