package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"
	"unicode"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
	"taskboard/internal/repository"
	"taskboard/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

const (
	entityTask          = "task"
	defaultQueryTimeout = 10 * time.Second
	memoryPath          = ":memory:"
)

var _ repository.Store = (*SQLiteRepository)(nil)

// SQLiteRepository implements repository.Store on a local SQLite database
type SQLiteRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
	now          func() time.Time
}

// Option configures a SQLiteRepository
type Option func(*SQLiteRepository)

// WithQueryTimeout bounds every store operation. Zero disables the bound.
func WithQueryTimeout(d time.Duration) Option {
	return func(r *SQLiteRepository) {
		r.queryTimeout = d
	}
}

// WithClock overrides the timestamp source used for createdAt/updatedAt
func WithClock(now func() time.Time) Option {
	return func(r *SQLiteRepository) {
		r.now = now
	}
}

// New opens (creating if needed) the database at dbPath and applies pending
// migrations. dbPath may be ":memory:".
func New(ctx context.Context, dbPath string, opts ...Option) (*SQLiteRepository, error) {
	dsn := dbPath
	if dbPath != memoryPath {
		dsn = dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	if dbPath == memoryPath {
		// each connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	r := &SQLiteRepository{
		db:           db,
		queryTimeout: defaultQueryTimeout,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Ping verifies the database is reachable
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.PingContext(ctx); err != nil {
		return HandleDatabaseError("ping", err)
	}
	return nil
}

// Insert stores a new task and fills in its id and timestamps
func (r *SQLiteRepository) Insert(ctx context.Context, task *domain.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return errors.NewValidationError("title is required", nil)
	}
	if task.Status == "" {
		task.Status = domain.StatusPending
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	now := r.now().UTC()
	query := `
	INSERT INTO tasks (task_uid, title, description, status, due_date, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		task.TaskID,
		task.Title,
		task.Description,
		string(task.Status),
		FormatDateForDB(task.DueDate),
		FormatTimeForDB(now),
		FormatTimeForDB(now),
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return errors.NewValidationError("taskId already exists", err).WithContext("taskId", task.TaskID)
		}
		return HandleDatabaseError("insert task", err)
	}

	task.ID = FormatID(id)
	task.CreatedAt = now
	task.UpdatedAt = now
	return nil
}

// FindAll retrieves all tasks in insertion order
func (r *SQLiteRepository) FindAll(ctx context.Context) ([]*domain.Task, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks")
}

// FindByID retrieves a task by its id
func (r *SQLiteRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	rowID, ok := ParseID(id)
	if !ok {
		return nil, errors.NewNotFoundError(entityTask, id)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTask, entityTask, id, rowID)
}

// UpdateByID applies a partial update and returns the updated task
func (r *SQLiteRepository) UpdateByID(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	rowID, ok := ParseID(id)
	if !ok {
		return nil, errors.NewNotFoundError(entityTask, id)
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, errors.NewValidationError("title is required", nil)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sets, args := buildUpdate(patch)
	sets = append(sets, "updated_at = ?")
	args = append(args, FormatTimeForDB(r.now()), rowID)

	query := `UPDATE tasks SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	if err := ExecuteWithRowsAffected(ctx, r.db, query, entityTask, id, args...); err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id)
}

// DeleteByID removes a task by its id
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	rowID, ok := ParseID(id)
	if !ok {
		return errors.NewNotFoundError(entityTask, id)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `DELETE FROM tasks WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, entityTask, id, rowID)
}

// Search returns tasks whose title or description match every word of query,
// best match first. Words are matched as prefixes.
func (r *SQLiteRepository) Search(ctx context.Context, query string) ([]*domain.Task, error) {
	match := buildMatchQuery(query)
	if match == "" {
		return []*domain.Task{}, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	q := `
	SELECT t.id, t.task_uid, t.title, t.description, t.status, t.due_date, t.created_at, t.updated_at
	FROM tasks_fts
	JOIN tasks t ON t.id = tasks_fts.rowid
	WHERE tasks_fts MATCH ?
	ORDER BY rank, t.id`
	return QueryMultiple(ctx, r.db, q, ScanTasks, "tasks", match)
}

func (r *SQLiteRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

func buildUpdate(patch domain.TaskPatch) ([]string, []interface{}) {
	var sets []string
	var args []interface{}

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, strings.TrimSpace(*patch.Title))
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*patch.Status))
	}
	switch {
	case patch.ClearDueDate:
		sets = append(sets, "due_date = NULL")
	case patch.DueDate != nil:
		sets = append(sets, "due_date = ?")
		args = append(args, FormatDateForDB(patch.DueDate))
	}

	return sets, args
}

// buildMatchQuery turns free text into an FTS5 query of quoted prefix
// terms, so user input can never produce a syntax error.
func buildMatchQuery(query string) string {
	words := strings.FieldsFunc(query, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	terms := make([]string, 0, len(words))
	for _, w := range words {
		terms = append(terms, `"`+w+`"*`)
	}
	return strings.Join(terms, " ")
}
