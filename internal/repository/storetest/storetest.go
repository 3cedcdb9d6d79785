// Package storetest holds the behavioural test suite every repository.Store
// backend must pass.
package storetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
	"taskboard/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty store. The suite closes it when the test ends.
type Factory func(t *testing.T) repository.Store

// Run exercises the full Store contract against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, store repository.Store)
	}{
		{"InsertAssignsIDAndTimestamps", testInsert},
		{"InsertRequiresTitle", testInsertRequiresTitle},
		{"InsertRejectsDuplicateTaskID", testInsertDuplicateTaskID},
		{"FindAllInInsertionOrder", testFindAll},
		{"FindByIDRoundTrip", testFindByID},
		{"FindByIDNotFound", testFindByIDNotFound},
		{"UpdateMergesFields", testUpdateMerges},
		{"UpdateClearsDueDate", testUpdateClearsDueDate},
		{"UpdateNotFound", testUpdateNotFound},
		{"DeleteThenFind", testDelete},
		{"CreatesMinusDeletes", testCreatesMinusDeletes},
		{"Search", testSearch},
		{"Ping", testPing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t)
			t.Cleanup(func() { store.Close() })
			tt.fn(t, store)
		})
	}
}

// NewTask returns an insertable task with a fresh taskId.
func NewTask(title string) *domain.Task {
	return domain.NewTask(domain.NewTaskInput{Title: title}, uuid.NewString())
}

func insert(t *testing.T, store repository.Store, task *domain.Task) *domain.Task {
	t.Helper()
	require.NoError(t, store.Insert(context.Background(), task))
	return task
}

func testInsert(t *testing.T, store repository.Store) {
	task := insert(t, store, NewTask("Buy milk"))

	assert.NotEmpty(t, task.ID)
	assert.False(t, task.CreatedAt.IsZero())
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
	assert.Equal(t, domain.StatusPending, task.Status)
}

func testInsertRequiresTitle(t *testing.T, store repository.Store) {
	err := store.Insert(context.Background(), NewTask("   "))
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err), "expected validation error, got %v", err)
}

func testInsertDuplicateTaskID(t *testing.T, store repository.Store) {
	first := insert(t, store, NewTask("First"))

	dup := NewTask("Second")
	dup.TaskID = first.TaskID
	err := store.Insert(context.Background(), dup)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err), "expected validation error, got %v", err)
}

func testFindAll(t *testing.T, store repository.Store) {
	ctx := context.Background()

	empty, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	titles := []string{"one", "two", "three"}
	for _, title := range titles {
		insert(t, store, NewTask(title))
	}

	tasks, err := store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	for i, task := range tasks {
		assert.Equal(t, titles[i], task.Title)
	}
}

func testFindByID(t *testing.T, store repository.Store) {
	due := domain.NewDate(2025, time.January, 15)
	task := domain.NewTask(domain.NewTaskInput{
		Title:       "Fix bug",
		Description: "the flaky one",
		Status:      domain.StatusInProgress,
		DueDate:     &due,
	}, uuid.NewString())
	insert(t, store, task)

	got, err := store.FindByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, task.TaskID, got.TaskID)
	assert.Equal(t, "Fix bug", got.Title)
	assert.Equal(t, "the flaky one", got.Description)
	assert.Equal(t, domain.StatusInProgress, got.Status)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, due, *got.DueDate)
	assert.WithinDuration(t, task.CreatedAt, got.CreatedAt, time.Millisecond)
}

func testFindByIDNotFound(t *testing.T, store repository.Store) {
	ctx := context.Background()
	task := insert(t, store, NewTask("exists"))
	require.NoError(t, store.DeleteByID(ctx, task.ID))

	for _, id := range []string{task.ID, "not-an-id", ""} {
		_, err := store.FindByID(ctx, id)
		assert.True(t, errors.IsNotFound(err), "id %q: expected not found, got %v", id, err)
	}
}

func testUpdateMerges(t *testing.T, store repository.Store) {
	ctx := context.Background()
	task := domain.NewTask(domain.NewTaskInput{Title: "Write docs", Description: "README"}, uuid.NewString())
	insert(t, store, task)

	updated, err := store.UpdateByID(ctx, task.ID, domain.StatusPatch(domain.StatusCompleted))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.Status)
	assert.Equal(t, "Write docs", updated.Title)
	assert.Equal(t, "README", updated.Description)
	assert.Equal(t, task.TaskID, updated.TaskID)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	title := "  Write better docs "
	due := domain.NewDate(2030, time.March, 1)
	updated, err = store.UpdateByID(ctx, task.ID, domain.TaskPatch{Title: &title, DueDate: &due})
	require.NoError(t, err)
	assert.Equal(t, "Write better docs", updated.Title)
	assert.Equal(t, domain.StatusCompleted, updated.Status)
	require.NotNil(t, updated.DueDate)
	assert.Equal(t, due, *updated.DueDate)
}

func testUpdateClearsDueDate(t *testing.T, store repository.Store) {
	due := domain.NewDate(2025, time.June, 30)
	task := domain.NewTask(domain.NewTaskInput{Title: "Dated", DueDate: &due}, uuid.NewString())
	insert(t, store, task)

	updated, err := store.UpdateByID(context.Background(), task.ID, domain.TaskPatch{ClearDueDate: true})
	require.NoError(t, err)
	assert.Nil(t, updated.DueDate)
}

func testUpdateNotFound(t *testing.T, store repository.Store) {
	ctx := context.Background()
	task := insert(t, store, NewTask("gone"))
	require.NoError(t, store.DeleteByID(ctx, task.ID))

	_, err := store.UpdateByID(ctx, task.ID, domain.StatusPatch(domain.StatusCompleted))
	assert.True(t, errors.IsNotFound(err), "expected not found, got %v", err)
}

func testDelete(t *testing.T, store repository.Store) {
	ctx := context.Background()
	task := insert(t, store, NewTask("delete me"))

	require.NoError(t, store.DeleteByID(ctx, task.ID))

	_, err := store.FindByID(ctx, task.ID)
	assert.True(t, errors.IsNotFound(err))

	err = store.DeleteByID(ctx, task.ID)
	assert.True(t, errors.IsNotFound(err), "second delete: expected not found, got %v", err)
}

func testCreatesMinusDeletes(t *testing.T, store repository.Store) {
	ctx := context.Background()
	const n, m = 5, 2

	var ids []string
	for i := 0; i < n; i++ {
		ids = append(ids, insert(t, store, NewTask(fmt.Sprintf("task %d", i))).ID)
	}
	for _, id := range ids[:m] {
		require.NoError(t, store.DeleteByID(ctx, id))
	}

	tasks, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, n-m)
}

func testSearch(t *testing.T, store repository.Store) {
	ctx := context.Background()
	milk := insert(t, store, NewTask("Buy milk"))
	bug := domain.NewTask(domain.NewTaskInput{Title: "Fix bug", Description: "milk carton parser"}, uuid.NewString())
	insert(t, store, bug)
	insert(t, store, NewTask("Walk dog"))

	got, err := store.Search(ctx, "milk")
	require.NoError(t, err)
	ids := make([]string, 0, len(got))
	for _, task := range got {
		ids = append(ids, task.ID)
	}
	assert.ElementsMatch(t, []string{milk.ID, bug.ID}, ids)

	got, err = store.Search(ctx, "walk")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Walk dog", got[0].Title)

	got, err = store.Search(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, got)

	// an edited title is searchable under its new words
	title := "Buy oat drink"
	_, err = store.UpdateByID(ctx, milk.ID, domain.TaskPatch{Title: &title})
	require.NoError(t, err)
	got, err = store.Search(ctx, "oat")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, milk.ID, got[0].ID)
}

func testPing(t *testing.T, store repository.Store) {
	assert.NoError(t, store.Ping(context.Background()))
}
