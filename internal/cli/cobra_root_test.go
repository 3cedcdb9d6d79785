package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/domain"
)

func TestRootCommand_AddAndList(t *testing.T) {
	ctx := context.Background()
	ta := setupTestApp(t, "")

	root := NewRootCommand(ta.app)
	root.SetArgs([]string{"add", "Buy", "milk", "-d", "2 litres", "--due", "2030-06-01"})
	require.NoError(t, root.Execute(ctx))

	tasks, err := ta.client.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Title)
	assert.Equal(t, "2 litres", tasks[0].Description)
	require.NotNil(t, tasks[0].DueDate)
	assert.Equal(t, "2030-06-01", tasks[0].DueDate.String())

	ta.out.Reset()
	root = NewRootCommand(ta.app)
	root.SetArgs([]string{"list", "--status", "pending", "--format", "csv"})
	require.NoError(t, root.Execute(ctx))
	assert.Contains(t, ta.out.String(), "Buy milk,2 litres,pending,2030-06-01")
}

func TestRootCommand_EditFlags(t *testing.T) {
	ctx := context.Background()
	ta := setupTestApp(t, "")
	due := domain.NewDate(2030, time.June, 1)
	task := ta.create(t, domain.NewTaskInput{Title: "Buy milk", DueDate: &due})

	root := NewRootCommand(ta.app)
	root.SetArgs([]string{"edit", task.ID, "--due", "2030-06-02", "--clear-due"})
	assert.Error(t, root.Execute(ctx), "--due and --clear-due are exclusive")

	root = NewRootCommand(ta.app)
	root.SetArgs([]string{"edit", task.ID, "--clear-due", "--title", "Buy oat milk"})
	require.NoError(t, root.Execute(ctx))

	got := ta.get(t, task.ID)
	assert.Equal(t, "Buy oat milk", got.Title)
	assert.Nil(t, got.DueDate)
}

func TestRootCommand_DeleteAndComplete(t *testing.T) {
	ctx := context.Background()
	ta := setupTestApp(t, "")
	keep := ta.create(t, domain.NewTaskInput{Title: "Keep"})
	drop := ta.create(t, domain.NewTaskInput{Title: "Drop"})

	root := NewRootCommand(ta.app)
	root.SetArgs([]string{"complete", keep.ID})
	require.NoError(t, root.Execute(ctx))
	assert.Equal(t, domain.StatusCompleted, ta.get(t, keep.ID).Status)

	root = NewRootCommand(ta.app)
	root.SetArgs([]string{"delete", drop.ID, "-y"})
	require.NoError(t, root.Execute(ctx))

	tasks, err := ta.client.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, keep.ID, tasks[0].ID)
}

func TestRootCommand_InvalidFlagValue(t *testing.T) {
	ta := setupTestApp(t, "")

	root := NewRootCommand(ta.app)
	root.SetArgs([]string{"list", "--db-driver", "postgres"})
	err := root.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.driver")
}
