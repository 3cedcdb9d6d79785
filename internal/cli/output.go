package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
)

// Output formats accepted by --format.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
)

var taskHeaders = []string{"ID", "Title", "Description", "Status", "Due", "Category"}

var categoryColors = map[domain.Category]lipgloss.Color{
	domain.CategoryCompleted: lipgloss.Color("#10B981"),
	domain.CategoryDueToday:  lipgloss.Color("#F59E0B"),
	domain.CategoryOverdue:   lipgloss.Color("#EF4444"),
	domain.CategoryDefault:   lipgloss.Color("#E5E7EB"),
}

// printTasks writes tasks in the requested format.
func printTasks(w io.Writer, tasks []*domain.Task, format string, today domain.Date) error {
	switch strings.ToLower(format) {
	case "", FormatTable:
		return printTable(w, tasks, today)
	case FormatCSV:
		return printCSV(w, tasks, today)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	default:
		return errors.NewInvalidInputError("format", format, "must be one of table, csv, json")
	}
}

func taskRow(t *domain.Task, today domain.Date) []string {
	due := ""
	if t.DueDate != nil {
		due = t.DueDate.String()
	}
	return []string{t.ID, t.Title, t.Description, t.Status.String(), due, string(domain.Categorize(t, today))}
}

func printTable(w io.Writer, tasks []*domain.Task, today domain.Date) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks found")
		return err
	}

	rows := make([][]string, 0, len(tasks))
	categories := make([]domain.Category, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, taskRow(t, today))
		categories = append(categories, domain.Categorize(t, today))
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(taskHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if row >= 0 && row < len(categories) {
				return cell.Foreground(categoryColors[categories[row]])
			}
			return cell
		})

	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

func printCSV(w io.Writer, tasks []*domain.Task, today domain.Date) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(taskHeaders); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, t := range tasks {
		if err := writer.Write(taskRow(t, today)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// printTask writes a one-task detail view.
func printTask(w io.Writer, t *domain.Task) {
	due := "none"
	if t.DueDate != nil {
		due = t.DueDate.String()
	}
	fmt.Fprintf(w, "%s  %s [%s] due %s\n", t.ID, t.Title, t.Status, due)
	if t.Description != "" {
		fmt.Fprintf(w, "    %s\n", t.Description)
	}
}
