package board

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
	"taskboard/internal/logging"
)

var fixedNow = time.Date(2025, time.January, 15, 9, 30, 0, 0, time.UTC)

func setupBoard(t *testing.T, seed ...*domain.Task) (*Board, *fakeAPI, *recorder) {
	t.Helper()
	api := &fakeAPI{}
	for _, task := range seed {
		api.nextID++
		task.ID = fmt.Sprint(api.nextID)
		api.tasks = append(api.tasks, task)
	}
	rec := &recorder{}
	b := New(api, rec, WithClock(func() time.Time { return fixedNow }), WithLogger(logging.Discard()))
	require.NoError(t, b.Refresh(context.Background()))
	return b, api, rec
}

func titles(tasks []*domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func TestVisible(t *testing.T) {
	b, _, _ := setupBoard(t,
		&domain.Task{TaskID: "1", Title: "Buy milk", Status: domain.StatusPending},
		&domain.Task{TaskID: "2", Title: "Fix bug", Description: "the milk counter", Status: domain.StatusCompleted},
		&domain.Task{TaskID: "3", Title: "Walk dog", Status: domain.StatusInProgress},
	)

	tests := []struct {
		name   string
		search string
		status domain.Status
		want   []string
	}{
		{name: "everything", want: []string{"Buy milk", "Fix bug", "Walk dog"}},
		{name: "search title only match", search: "buy", want: []string{"Buy milk"}},
		{name: "search is case-insensitive and covers description", search: "MILK", want: []string{"Buy milk", "Fix bug"}},
		{name: "status filter", status: domain.StatusCompleted, want: []string{"Fix bug"}},
		{name: "search and status", search: "milk", status: domain.StatusPending, want: []string{"Buy milk"}},
		{name: "nothing", search: "zebra", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b.SetSearch(tt.search)
			b.SetStatusFilter(tt.status)
			assert.Equal(t, tt.want, titles(b.Visible()))
		})
	}
}

func TestVisibleExample(t *testing.T) {
	b, _, _ := setupBoard(t,
		&domain.Task{TaskID: "1", Title: "Buy milk", Status: domain.StatusPending},
		&domain.Task{TaskID: "2", Title: "Fix bug", Status: domain.StatusCompleted},
	)

	b.SetSearch("milk")
	assert.Equal(t, []string{"Buy milk"}, titles(b.Visible()))

	b.SetSearch("")
	b.SetStatusFilter(domain.StatusCompleted)
	assert.Equal(t, []string{"Fix bug"}, titles(b.Visible()))
}

func TestCycleStatusFilter(t *testing.T) {
	b, _, _ := setupBoard(t)

	assert.Equal(t, domain.StatusPending, b.CycleStatusFilter())
	assert.Equal(t, domain.StatusInProgress, b.CycleStatusFilter())
	assert.Equal(t, domain.StatusCompleted, b.CycleStatusFilter())
	assert.Equal(t, domain.Status(""), b.CycleStatusFilter())
	assert.Equal(t, domain.TaskFilter{}, b.Filter())
}

func TestCategorize(t *testing.T) {
	b, _, _ := setupBoard(t)
	today := domain.NewDate(2025, time.January, 15)
	yesterday := domain.NewDate(2025, time.January, 14)
	tomorrow := domain.NewDate(2025, time.January, 16)

	tests := []struct {
		name string
		task domain.Task
		want domain.Category
	}{
		{name: "completed overdue", task: domain.Task{Status: domain.StatusCompleted, DueDate: &yesterday}, want: domain.CategoryCompleted},
		{name: "due today", task: domain.Task{Status: domain.StatusPending, DueDate: &today}, want: domain.CategoryDueToday},
		{name: "overdue", task: domain.Task{Status: domain.StatusInProgress, DueDate: &yesterday}, want: domain.CategoryOverdue},
		{name: "future", task: domain.Task{Status: domain.StatusPending, DueDate: &tomorrow}, want: domain.CategoryDefault},
		{name: "no due date", task: domain.Task{Status: domain.StatusPending}, want: domain.CategoryDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Categorize(&tt.task))
		})
	}
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name       string
		dueDate    string
		wantStatus domain.Status
	}{
		{name: "due today starts in progress", dueDate: "2025-01-15", wantStatus: domain.StatusInProgress},
		{name: "due tomorrow is pending", dueDate: "2025-01-16", wantStatus: domain.StatusPending},
		{name: "overdue is pending", dueDate: "2025-01-01", wantStatus: domain.StatusPending},
		{name: "no due date is pending", dueDate: "", wantStatus: domain.StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _, rec := setupBoard(t)

			task, err := b.Add(context.Background(), Draft{Title: "Buy milk", Description: "2 litres", DueDate: tt.dueDate})
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, task.Status)
			assert.NotEqual(t, domain.StatusCompleted, task.Status)

			assert.Equal(t, Notification{Kind: Success, Message: MsgAdded}, rec.last())
			assert.Len(t, b.Tasks(), 1, "board re-fetches after a successful add")
		})
	}
}

func TestAddInvalidDueDate(t *testing.T) {
	b, api, rec := setupBoard(t)

	_, err := b.Add(context.Background(), Draft{Title: "a", Description: "b", DueDate: "15/01/2025"})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Equal(t, Notification{Kind: Failure, Message: MsgAddFailed}, rec.last())
	assert.Empty(t, api.tasks)
}

func TestFailureLeavesStateUnchanged(t *testing.T) {
	b, api, rec := setupBoard(t, &domain.Task{TaskID: "1", Title: "Buy milk", Status: domain.StatusPending})
	before := b.Tasks()
	api.setFail(true)
	ctx := context.Background()

	_, err := b.Add(ctx, Draft{Title: "x", Description: "y", DueDate: "2025-02-01"})
	assert.Error(t, err)
	assert.Equal(t, MsgAddFailed, rec.last().Message)

	assert.Error(t, b.Complete(ctx, before[0]))
	assert.Equal(t, MsgUpdateFailed, rec.last().Message)

	deleted, err := b.Delete(ctx, before[0], AlwaysConfirm)
	assert.Error(t, err)
	assert.False(t, deleted)
	assert.Equal(t, Notification{Kind: Failure, Message: MsgDeleteFailed}, rec.last())

	assert.Equal(t, before, b.Tasks())
}

func TestComplete(t *testing.T) {
	b, api, rec := setupBoard(t, &domain.Task{TaskID: "1", Title: "Buy milk", Description: "2 litres", Status: domain.StatusPending})

	require.NoError(t, b.Complete(context.Background(), b.Tasks()[0]))

	got := b.Tasks()[0]
	assert.Equal(t, domain.StatusCompleted, got.Status)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "2 litres", got.Description)
	assert.Equal(t, MsgUpdated, rec.last().Message)
	require.Len(t, api.patches, 1)
	assert.Nil(t, api.patches[0].Title)
}

func TestDelete(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		b, api, rec := setupBoard(t, &domain.Task{TaskID: "1", Title: "Buy milk", Status: domain.StatusPending})
		var asked string

		deleted, err := b.Delete(context.Background(), b.Tasks()[0], ConfirmFunc(func(p string) bool {
			asked = p
			return false
		}))
		require.NoError(t, err)
		assert.False(t, deleted)
		assert.Contains(t, asked, "Buy milk")
		assert.Zero(t, api.deletes)
		assert.Len(t, b.Tasks(), 1)
		assert.Empty(t, rec.all)
	})

	t.Run("nil confirmer declines", func(t *testing.T) {
		b, api, _ := setupBoard(t, &domain.Task{TaskID: "1", Title: "Buy milk", Status: domain.StatusPending})

		deleted, err := b.Delete(context.Background(), b.Tasks()[0], nil)
		require.NoError(t, err)
		assert.False(t, deleted)
		assert.Zero(t, api.deletes)
		assert.Len(t, b.Tasks(), 1)
	})

	t.Run("confirmed", func(t *testing.T) {
		b, api, rec := setupBoard(t, &domain.Task{TaskID: "1", Title: "Buy milk", Status: domain.StatusPending})
		b.BeginEdit(b.Tasks()[0])

		deleted, err := b.Delete(context.Background(), b.Tasks()[0], AlwaysConfirm)
		require.NoError(t, err)
		assert.True(t, deleted)
		assert.Equal(t, 1, api.deletes)
		assert.Empty(t, b.Tasks())
		assert.Equal(t, Notification{Kind: Success, Message: MsgDeleted}, rec.last())

		_, editing := b.Editing()
		assert.False(t, editing)
	})
}

func TestInlineEdit(t *testing.T) {
	due := domain.NewDate(2025, time.January, 20)
	seed := func() *domain.Task {
		return &domain.Task{TaskID: "1", Title: "Buy milk", Description: "2 litres", Status: domain.StatusPending, DueDate: &due}
	}

	t.Run("save", func(t *testing.T) {
		b, _, rec := setupBoard(t, seed())
		b.BeginEdit(b.Tasks()[0])

		edit, ok := b.Editing()
		require.True(t, ok)
		assert.Equal(t, Draft{Title: "Buy milk", Description: "2 litres", DueDate: "2025-01-20"}, edit.Draft)

		require.True(t, b.EditDraft(Draft{Title: "Buy oat milk", Description: "1 litre", DueDate: "2025-01-21"}))
		task, err := b.SaveEdit(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "Buy oat milk", task.Title)
		assert.Equal(t, domain.StatusPending, task.Status)
		assert.Equal(t, "2025-01-21", task.DueDate.String())
		assert.Equal(t, MsgUpdated, rec.last().Message)
		_, ok = b.Editing()
		assert.False(t, ok)
		assert.Equal(t, "Buy oat milk", b.Tasks()[0].Title)
	})

	t.Run("save in progress", func(t *testing.T) {
		b, _, _ := setupBoard(t, seed())
		b.BeginEdit(b.Tasks()[0])

		task, err := b.SaveEditInProgress(context.Background())
		require.NoError(t, err)
		assert.Equal(t, domain.StatusInProgress, task.Status)
		assert.Equal(t, "Buy milk", task.Title)
	})

	t.Run("clearing the due date", func(t *testing.T) {
		b, _, _ := setupBoard(t, seed())
		b.BeginEdit(b.Tasks()[0])
		b.EditDraft(Draft{Title: "Buy milk", Description: "2 litres"})

		task, err := b.SaveEdit(context.Background())
		require.NoError(t, err)
		assert.Nil(t, task.DueDate)
	})

	t.Run("cancel", func(t *testing.T) {
		b, api, _ := setupBoard(t, seed())
		b.BeginEdit(b.Tasks()[0])
		b.CancelEdit()

		_, ok := b.Editing()
		assert.False(t, ok)
		assert.False(t, b.EditDraft(Draft{Title: "x"}))
		assert.Empty(t, api.patches)
	})

	t.Run("failure keeps the edit open", func(t *testing.T) {
		b, api, rec := setupBoard(t, seed())
		b.BeginEdit(b.Tasks()[0])
		b.EditDraft(Draft{Title: "changed", Description: "2 litres", DueDate: "2025-01-20"})
		api.setFail(true)

		_, err := b.SaveEdit(context.Background())
		require.Error(t, err)
		assert.Equal(t, Notification{Kind: Failure, Message: MsgUpdateFailed}, rec.last())

		edit, ok := b.Editing()
		require.True(t, ok)
		assert.Equal(t, "changed", edit.Draft.Title)
		assert.Equal(t, "Buy milk", b.Tasks()[0].Title)
	})

	t.Run("nothing to save", func(t *testing.T) {
		b, _, rec := setupBoard(t, seed())
		_, err := b.SaveEdit(context.Background())
		assert.Error(t, err)
		assert.Equal(t, Failure, rec.last().Kind)
	})
}

func TestStaleRefreshIsDiscarded(t *testing.T) {
	b, api, _ := setupBoard(t)
	ctx := context.Background()

	// The first refresh's List call is overtaken by a second, newer refresh
	// that completes before it.
	api.listHook = func() {
		api.listHook = nil
		_, err := api.Create(ctx, domain.NewTaskInput{Title: "newer"})
		require.NoError(t, err)
		require.NoError(t, b.Refresh(ctx))

		api.mu.Lock()
		api.tasks = nil
		api.mu.Unlock()
	}

	require.NoError(t, b.Refresh(ctx))
	assert.Equal(t, []string{"newer"}, titles(b.Tasks()))
}

func TestRefreshFailureKeepsTasks(t *testing.T) {
	b, api, _ := setupBoard(t, &domain.Task{TaskID: "1", Title: "Buy milk", Status: domain.StatusPending})
	api.setFail(true)

	assert.Error(t, b.Refresh(context.Background()))
	assert.Len(t, b.Tasks(), 1)
}

func TestDraftIsComplete(t *testing.T) {
	assert.True(t, Draft{Title: "a", Description: "b", DueDate: "2025-01-01"}.IsComplete())
	assert.False(t, Draft{Title: "a", Description: "b"}.IsComplete())
	assert.False(t, Draft{Title: " ", Description: "b", DueDate: "2025-01-01"}.IsComplete())
	assert.False(t, Draft{Title: "a", Description: "", DueDate: "2025-01-01"}.IsComplete())
}
