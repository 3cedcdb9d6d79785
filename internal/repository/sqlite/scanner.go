package sqlite

import "taskboard/internal/domain"

// taskColumns is the column list every task query selects, in scan order.
const taskColumns = `id, task_uid, title, description, status, due_date, created_at, updated_at`

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanTask scans a single task from a database row
func ScanTask(scanner Scanner) (*domain.Task, error) {
	var row taskRow
	err := scanner.Scan(
		&row.ID,
		&row.TaskUID,
		&row.Title,
		&row.Description,
		&row.Status,
		&row.DueDate,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return row.toDomain()
}

// ScanTasks scans multiple tasks from database rows. The result is never nil.
func ScanTasks(rows Rows) ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
