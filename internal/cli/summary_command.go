package cli

import (
	"context"
	"fmt"
	"strings"

	"taskboard/internal/domain"
)

// SummaryCommand prints task counts by status and due-date category.
type SummaryCommand struct {
	app *App
	eh  *ErrorHandler
}

// NewSummaryCommand creates a new summary command handler
func NewSummaryCommand(app *App) *SummaryCommand {
	return &SummaryCommand{app: app, eh: NewErrorHandler()}
}

// Execute runs the summary command
func (c *SummaryCommand) Execute(ctx context.Context, args []string) error {
	container, err := c.app.Services(ctx)
	if err != nil {
		return c.eh.Handle("summarize tasks", err)
	}

	summary, err := container.ReportingService.GetSummary(ctx, domain.DateOf(timeNow()))
	if err != nil {
		return c.eh.Handle("summarize tasks", err)
	}

	w := c.app.out
	fmt.Fprintf(w, "Total tasks: %d\n", summary.Total)
	fmt.Fprintln(w, strings.Repeat("-", 24))
	for _, s := range domain.Statuses {
		fmt.Fprintf(w, "%-14s %9d\n", s, summary.ByStatus[s])
	}
	fmt.Fprintln(w, strings.Repeat("-", 24))
	for _, cat := range domain.Categories {
		fmt.Fprintf(w, "%-14s %9d\n", cat, summary.ByCategory[cat])
	}
	return nil
}
