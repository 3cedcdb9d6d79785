// Package repository defines the persistence contract for tasks. Backends
// live in the sqlite and mongo subpackages.
package repository

import (
	"context"

	"taskboard/internal/domain"
)

// Store is a document-style task store. Ids are opaque strings assigned by
// the backend; an id the backend cannot parse is reported as not found.
type Store interface {
	// Insert assigns ID, CreatedAt and UpdatedAt on the given task.
	Insert(ctx context.Context, task *domain.Task) error
	// FindAll returns every task in insertion order.
	FindAll(ctx context.Context) ([]*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// UpdateByID merges the patch into the stored task and returns the result.
	UpdateByID(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteByID(ctx context.Context, id string) error
	// Search runs a full-text query over title and description.
	Search(ctx context.Context, query string) ([]*domain.Task, error)

	Ping(ctx context.Context) error
	Close() error
}
