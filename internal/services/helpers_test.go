package services

import (
	"context"
	"fmt"
	"testing"

	"taskboard/internal/domain"
	"taskboard/internal/repository/sqlite"

	"github.com/stretchr/testify/require"
)

// sequentialIDs yields task-1, task-2, ...
func sequentialIDs() IDGenerator {
	n := 0
	return IDGeneratorFunc(func() string {
		n++
		return fmt.Sprintf("task-%d", n)
	})
}

func setupStore(t *testing.T) *sqlite.SQLiteRepository {
	t.Helper()
	repo, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func setupTaskService(t *testing.T) TaskService {
	t.Helper()
	return NewTaskService(setupStore(t), nil, sequentialIDs())
}

func setupContainerWithData(t *testing.T, inputs ...domain.NewTaskInput) (*ServiceContainer, []*domain.Task) {
	t.Helper()
	container := NewServiceContainer(setupStore(t), nil, sequentialIDs())

	tasks := make([]*domain.Task, 0, len(inputs))
	for _, in := range inputs {
		task, err := container.TaskService.CreateTask(context.Background(), in)
		require.NoError(t, err)
		tasks = append(tasks, task)
	}
	return container, tasks
}

func datePtr(d domain.Date) *domain.Date {
	return &d
}
