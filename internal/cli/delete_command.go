package cli

import (
	"context"
	"fmt"

	"taskboard/internal/board"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
	eh  *ErrorHandler

	Yes bool
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app, eh: NewErrorHandler()}
}

// Execute deletes a task after asking for confirmation, unless --yes.
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	id, err := requireID(args, "usage: taskboard delete <id> [--yes]")
	if err != nil {
		return err
	}

	b, err := c.app.NewBoard()
	if err != nil {
		return c.eh.Handle("delete task", err)
	}
	task, err := loadTask(ctx, b, id)
	if err != nil {
		return c.eh.Handle("delete task", err)
	}

	var confirm board.Confirmer = board.ConfirmFunc(c.app.Confirm)
	if c.Yes {
		confirm = board.AlwaysConfirm
	}

	deleted, err := b.Delete(ctx, task, confirm)
	if err != nil {
		return c.eh.Handle("delete task", err)
	}
	if !deleted {
		fmt.Fprintln(c.app.out, "Delete cancelled.")
	}
	return nil
}
