package cli

import (
	"context"
	"strings"

	"taskboard/internal/board"
	"taskboard/internal/errors"
)

// AddCommand handles the add command
type AddCommand struct {
	app *App
	eh  *ErrorHandler

	Description string
	Due         string
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app, eh: NewErrorHandler()}
}

// Execute creates a task titled by the joined arguments. A task due today
// starts in progress.
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return errors.NewInvalidInputError("title", "", "usage: taskboard add <title> [--description text] [--due YYYY-MM-DD]")
	}

	b, err := c.app.NewBoard()
	if err != nil {
		return c.eh.Handle("add task", err)
	}

	task, err := b.Add(ctx, board.Draft{Title: title, Description: c.Description, DueDate: c.Due})
	if err != nil {
		return c.eh.Handle("add task", err)
	}

	printTask(c.app.out, task)
	return nil
}
