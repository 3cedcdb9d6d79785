package services

import (
	"context"
	stderrors "errors"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
	"taskboard/internal/repository"
	"taskboard/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	store         repository.Store
	ids           IDGenerator
	taskValidator *validation.TaskValidator
}

// NewTaskService creates a new TaskService instance. A nil validator uses
// default limits; a nil generator uses UUIDs.
func NewTaskService(store repository.Store, taskValidator *validation.TaskValidator, ids IDGenerator) TaskService {
	if taskValidator == nil {
		taskValidator = validation.NewTaskValidator()
	}
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &taskServiceImpl{
		store:         store,
		ids:           ids,
		taskValidator: taskValidator,
	}
}

// NewServiceContainer wires every service over one store
func NewServiceContainer(store repository.Store, taskValidator *validation.TaskValidator, ids IDGenerator) *ServiceContainer {
	taskService := NewTaskService(store, taskValidator, ids)
	return &ServiceContainer{
		TaskService:      taskService,
		SearchService:    NewSearchService(taskService),
		ReportingService: NewReportingService(taskService),
	}
}

// ListTasks returns every task; filtering happens client-side
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	return s.store.FindAll(ctx)
}

// GetTask retrieves a task by its id
func (s *taskServiceImpl) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if err := s.taskValidator.ValidateTaskID(id); err != nil {
		return nil, errors.NewNotFoundError("task", id)
	}
	return s.store.FindByID(ctx, id)
}

// CreateTask validates the input and stores a new task with a fresh taskId
func (s *taskServiceImpl) CreateTask(ctx context.Context, in domain.NewTaskInput) (*domain.Task, error) {
	if err := s.taskValidator.ValidateNewTask(in); err != nil {
		return nil, wrapValidation("invalid task", err)
	}

	task := domain.NewTask(in, s.ids.NewID())
	if err := s.store.Insert(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask validates the provided fields and applies a partial update
func (s *taskServiceImpl) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	if err := s.taskValidator.ValidateTaskID(id); err != nil {
		return nil, errors.NewNotFoundError("task", id)
	}
	if err := s.taskValidator.ValidatePatch(patch); err != nil {
		return nil, wrapValidation("invalid update", err)
	}
	return s.store.UpdateByID(ctx, id, patch)
}

// DeleteTask removes a task by its id
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	if err := s.taskValidator.ValidateTaskID(id); err != nil {
		return errors.NewNotFoundError("task", id)
	}
	return s.store.DeleteByID(ctx, id)
}

// SearchTasks runs a full-text query through the store's text index
func (s *taskServiceImpl) SearchTasks(ctx context.Context, query string) ([]*domain.Task, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.NewInvalidInputError("query", query, "must not be empty")
	}
	return s.store.Search(ctx, query)
}

// wrapValidation converts field errors into a Validation AppError whose
// message lists every failed field.
func wrapValidation(prefix string, err error) error {
	var ve *validation.ValidationError
	if !stderrors.As(err, &ve) {
		return errors.NewValidationError(prefix, err)
	}
	messages := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		messages = append(messages, fe.Message)
	}
	return errors.NewValidationError(prefix+": "+strings.Join(messages, "; "), err).
		WithContext("fields", ve.Fields())
}
