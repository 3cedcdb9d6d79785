package domain

// Category is the display bucket a task falls into relative to today.
type Category string

const (
	CategoryCompleted Category = "completed"
	CategoryDueToday  Category = "due-today"
	CategoryOverdue   Category = "overdue"
	CategoryDefault   Category = "default"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryOverdue, CategoryDueToday, CategoryDefault, CategoryCompleted}

// Categorize places t relative to today. Completed wins over any due date.
func Categorize(t *Task, today Date) Category {
	switch {
	case t.IsCompleted():
		return CategoryCompleted
	case t.DueDate == nil:
		return CategoryDefault
	case t.DueDate.Equal(today):
		return CategoryDueToday
	case t.DueDate.Before(today):
		return CategoryOverdue
	default:
		return CategoryDefault
	}
}
