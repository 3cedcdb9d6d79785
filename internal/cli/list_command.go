package cli

import (
	"context"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
)

// ListCommand handles the list command
type ListCommand struct {
	app *App
	eh  *ErrorHandler

	Search string
	Status string
	Format string
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app, eh: NewErrorHandler()}
}

// Execute fetches every task from the API and prints the ones matching the
// search text and status. Positional arguments are joined into the search.
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	search := c.Search
	if len(args) > 0 {
		search = strings.TrimSpace(search + " " + strings.Join(args, " "))
	}

	status, err := parseStatusFilter(c.Status)
	if err != nil {
		return err
	}

	b, err := c.app.NewBoard()
	if err != nil {
		return c.eh.Handle("list tasks", err)
	}
	if err := b.Refresh(ctx); err != nil {
		return c.eh.Handle("list tasks", err)
	}

	b.SetSearch(search)
	b.SetStatusFilter(status)
	return printTasks(c.app.out, b.Visible(), c.Format, b.Today())
}

// parseStatusFilter accepts "" or "all" for no filter.
func parseStatusFilter(s string) (domain.Status, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return "", nil
	}
	status, err := domain.ParseStatus(s)
	if err != nil {
		return "", errors.NewInvalidInputError("status", s, "must be one of pending, in-progress, completed")
	}
	return status, nil
}
