package cli

import (
	"context"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
	"taskboard/internal/services"
)

// SearchCommand runs a full-text query directly against the store.
type SearchCommand struct {
	app *App
	eh  *ErrorHandler

	Status string
	Sort   string
	Format string
}

// NewSearchCommand creates a new search command handler
func NewSearchCommand(app *App) *SearchCommand {
	return &SearchCommand{app: app, eh: NewErrorHandler()}
}

// Execute searches titles and descriptions for the joined arguments.
func (c *SearchCommand) Execute(ctx context.Context, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return errors.NewInvalidInputError("query", "", "usage: taskboard search <text> [--status] [--sort]")
	}

	status, err := parseStatusFilter(c.Status)
	if err != nil {
		return err
	}
	var order services.SortOrder
	if c.Sort != "" {
		parsed, ok := services.ParseSortOrder(c.Sort)
		if !ok {
			return errors.NewInvalidInputError("sort", c.Sort, "must be one of created, title, due, status")
		}
		order = parsed
	}

	container, err := c.app.Services(ctx)
	if err != nil {
		return c.eh.Handle("search tasks", err)
	}

	tasks, err := container.SearchService.Search(ctx, services.SearchCriteria{Query: query, Status: status, Sort: order})
	if err != nil {
		return c.eh.Handle("search tasks", err)
	}
	return printTasks(c.app.out, tasks, c.Format, domain.DateOf(timeNow()))
}
