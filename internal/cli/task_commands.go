package cli

import (
	"context"
	"strings"

	"taskboard/internal/board"
	"taskboard/internal/domain"
	"taskboard/internal/errors"
)

// loadTask refreshes b and returns the task with the given id.
func loadTask(ctx context.Context, b *board.Board, id string) (*domain.Task, error) {
	if err := b.Refresh(ctx); err != nil {
		return nil, err
	}
	for _, t := range b.Tasks() {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, errors.NewNotFoundError("task", id)
}

func requireID(args []string, usage string) (string, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return "", errors.NewInvalidInputError("id", strings.Join(args, " "), usage)
	}
	return strings.TrimSpace(args[0]), nil
}

// EditCommand handles the edit command
type EditCommand struct {
	app *App
	eh  *ErrorHandler

	Title       string
	Description string
	Due         string
	ClearDue    bool
	InProgress  bool
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{app: app, eh: NewErrorHandler()}
}

// Execute edits a task the same way the inline editor does: the current
// values are loaded, the given flags replace them, and the result is saved.
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	id, err := requireID(args, "usage: taskboard edit <id> [--title] [--description] [--due | --clear-due] [--in-progress]")
	if err != nil {
		return err
	}

	b, err := c.app.NewBoard()
	if err != nil {
		return c.eh.Handle("update task", err)
	}
	task, err := loadTask(ctx, b, id)
	if err != nil {
		return c.eh.Handle("update task", err)
	}

	b.BeginEdit(task)
	draft := board.DraftOf(task)
	if c.Title != "" {
		draft.Title = c.Title
	}
	if c.Description != "" {
		draft.Description = c.Description
	}
	if c.Due != "" {
		draft.DueDate = c.Due
	}
	if c.ClearDue {
		draft.DueDate = ""
	}
	b.EditDraft(draft)

	save := b.SaveEdit
	if c.InProgress {
		save = b.SaveEditInProgress
	}
	updated, err := save(ctx)
	if err != nil {
		return c.eh.Handle("update task", err)
	}

	printTask(c.app.out, updated)
	return nil
}

// CompleteCommand handles the complete command
type CompleteCommand struct {
	app *App
	eh  *ErrorHandler
}

// NewCompleteCommand creates a new complete command handler
func NewCompleteCommand(app *App) *CompleteCommand {
	return &CompleteCommand{app: app, eh: NewErrorHandler()}
}

// Execute marks a task completed.
func (c *CompleteCommand) Execute(ctx context.Context, args []string) error {
	id, err := requireID(args, "usage: taskboard complete <id>")
	if err != nil {
		return err
	}

	b, err := c.app.NewBoard()
	if err != nil {
		return c.eh.Handle("update task", err)
	}
	task, err := loadTask(ctx, b, id)
	if err != nil {
		return c.eh.Handle("update task", err)
	}
	if err := b.Complete(ctx, task); err != nil {
		return c.eh.Handle("update task", err)
	}
	return nil
}
