package tui

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/api"
	"taskboard/internal/board"
	"taskboard/internal/client"
	"taskboard/internal/domain"
	"taskboard/internal/logging"
	"taskboard/internal/repository/sqlite"
	"taskboard/internal/services"
)

var fixedNow = time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	model  *Model
	client *client.Client
	board  *board.Board
}

func setupModel(t *testing.T, seed ...domain.NewTaskInput) *testEnv {
	t.Helper()
	ctx := context.Background()

	repo, err := sqlite.New(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	srv := httptest.NewServer(api.NewRouter(services.NewTaskService(repo, nil, nil), api.RouterOptions{Logger: logging.Discard()}))
	t.Cleanup(srv.Close)

	c, err := client.New(srv.URL+"/api/tasks", client.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	for _, in := range seed {
		_, err := c.Create(ctx, in)
		require.NoError(t, err)
	}

	notices := &Notices{}
	b := board.New(c, notices, board.WithClock(func() time.Time { return fixedNow }), board.WithLogger(logging.Discard()))
	env := &testEnv{model: NewModel(ctx, b, notices), client: c, board: b}
	env.drive(env.model.Init())
	return env
}

// drive feeds the model's own result messages back into Update until the
// command chain settles.
func (e *testEnv) drive(cmd tea.Cmd) {
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case refreshedMsg, addedMsg, savedMsg, changedMsg, DialogSaveMsg, DialogClosedMsg:
			_, next := e.model.Update(msg)
			e.drive(next)
		}
	}
}

func (e *testEnv) press(msgs ...tea.KeyMsg) {
	for _, msg := range msgs {
		_, cmd := e.model.Update(msg)
		e.drive(cmd)
	}
}

// typeText sends text without running the resulting cursor commands.
func (e *testEnv) typeText(s string) {
	e.model.Update(runes(s))
}

func dueOn(y int, m time.Month, d int) *domain.Date {
	date := domain.NewDate(y, m, d)
	return &date
}

func TestModelLoadsTasks(t *testing.T) {
	env := setupModel(t,
		domain.NewTaskInput{Title: "Buy milk"},
		domain.NewTaskInput{Title: "Fix bug", Status: domain.StatusCompleted},
	)

	assert.Len(t, env.board.Tasks(), 2)
	view := env.model.View()
	assert.Contains(t, view, "Buy milk")
	assert.Contains(t, view, "[x] Fix bug")
	assert.Contains(t, view, "filter: all")
}

func TestModelAddThroughDialog(t *testing.T) {
	env := setupModel(t)

	env.press(runes("n"))
	require.Equal(t, modeDialog, env.model.mode)

	env.typeText("Buy milk")
	env.press(keyOf(tea.KeyTab))
	env.typeText("2 litres")
	env.press(keyOf(tea.KeyTab))
	env.typeText("2025-01-15")
	env.press(keyOf(tea.KeyCtrlS))

	assert.Equal(t, modeList, env.model.mode)
	assert.False(t, env.model.dialog.Active())
	assert.Equal(t, board.MsgAdded, env.model.notice.Message)

	tasks := env.board.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Title)
	assert.Equal(t, domain.StatusInProgress, tasks[0].Status, "due today starts in progress")
}

func TestModelDialogRejectsBadDate(t *testing.T) {
	env := setupModel(t)

	env.press(runes("n"))
	env.typeText("Buy milk")
	env.press(keyOf(tea.KeyTab))
	env.typeText("2 litres")
	env.press(keyOf(tea.KeyTab))
	env.typeText("2025-13-45")
	env.press(keyOf(tea.KeyEnter))

	assert.Equal(t, modeDialog, env.model.mode)
	assert.True(t, env.model.dialog.Active())
	assert.Equal(t, board.Notification{Kind: board.Failure, Message: board.MsgAddFailed}, env.model.notice)
	assert.Empty(t, env.board.Tasks())

	env.press(keyOf(tea.KeyEsc))
	assert.Equal(t, modeList, env.model.mode)
}

func TestModelComplete(t *testing.T) {
	env := setupModel(t, domain.NewTaskInput{Title: "Buy milk", Description: "2 litres"})

	env.press(keyOf(tea.KeySpace))

	tasks := env.board.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, domain.StatusCompleted, tasks[0].Status)
	assert.Equal(t, "2 litres", tasks[0].Description)
	assert.Equal(t, board.MsgUpdated, env.model.notice.Message)
}

func TestModelDelete(t *testing.T) {
	env := setupModel(t, domain.NewTaskInput{Title: "Buy milk"}, domain.NewTaskInput{Title: "Fix bug"})

	env.press(runes("d"))
	assert.Equal(t, modeConfirmDelete, env.model.mode)
	assert.Contains(t, env.model.View(), "Delete \"Buy milk\"?")

	env.press(runes("n"))
	assert.Equal(t, modeList, env.model.mode)
	assert.Len(t, env.board.Tasks(), 2)

	env.press(runes("j"), runes("d"), runes("y"))
	tasks := env.board.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Title)
	assert.Equal(t, board.MsgDeleted, env.model.notice.Message)
	assert.Equal(t, 0, env.model.cursor)
}

func TestModelSearchAndFilter(t *testing.T) {
	env := setupModel(t,
		domain.NewTaskInput{Title: "Buy milk"},
		domain.NewTaskInput{Title: "Fix bug", Status: domain.StatusCompleted},
	)

	env.press(runes("/"))
	require.Equal(t, modeSearch, env.model.mode)
	env.typeText("milk")
	env.press(keyOf(tea.KeyEnter))

	assert.Equal(t, modeList, env.model.mode)
	visible := env.board.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "Buy milk", visible[0].Title)

	env.press(runes("/"), keyOf(tea.KeyEsc))
	assert.Len(t, env.board.Visible(), 2)

	env.press(runes("f"), runes("f"), runes("f"))
	assert.Equal(t, domain.StatusCompleted, env.board.Filter().Status)
	visible = env.board.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "Fix bug", visible[0].Title)
	assert.Contains(t, env.model.View(), "filter: completed")
}

func TestModelInlineEdit(t *testing.T) {
	t.Run("save", func(t *testing.T) {
		env := setupModel(t, domain.NewTaskInput{Title: "Buy milk", Description: "2 litres", DueDate: dueOn(2025, time.January, 20)})

		env.press(runes("e"))
		require.Equal(t, modeEdit, env.model.mode)
		env.typeText(" today")
		env.press(keyOf(tea.KeyEnter))

		assert.Equal(t, modeList, env.model.mode)
		task := env.board.Tasks()[0]
		assert.Equal(t, "Buy milk today", task.Title)
		assert.Equal(t, domain.StatusPending, task.Status)
		assert.Equal(t, "2025-01-20", task.DueDate.String())
	})

	t.Run("save as in progress", func(t *testing.T) {
		env := setupModel(t, domain.NewTaskInput{Title: "Buy milk"})

		env.press(runes("e"), keyOf(tea.KeyCtrlP))
		assert.Equal(t, domain.StatusInProgress, env.board.Tasks()[0].Status)
	})

	t.Run("cancel", func(t *testing.T) {
		env := setupModel(t, domain.NewTaskInput{Title: "Buy milk"})

		env.press(runes("e"))
		env.typeText(" changed")
		env.press(keyOf(tea.KeyEsc))

		assert.Equal(t, modeList, env.model.mode)
		_, editing := env.board.Editing()
		assert.False(t, editing)
		assert.Equal(t, "Buy milk", env.board.Tasks()[0].Title)
	})
}

func TestModelQuit(t *testing.T) {
	env := setupModel(t)

	_, cmd := env.model.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, env.model.View())
}
