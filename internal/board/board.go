// Package board holds the client-side task list state: the fetched tasks,
// the search and status filter, and the task under inline edit. Every
// mutation goes through the REST API and is followed by a full refresh.
package board

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
)

// TaskAPI is the subset of the REST client the board needs.
type TaskAPI interface {
	List(ctx context.Context) ([]*domain.Task, error)
	Create(ctx context.Context, in domain.NewTaskInput) (*domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}

// Draft is the user-entered form of a task. DueDate is YYYY-MM-DD or empty.
type Draft struct {
	Title       string
	Description string
	DueDate     string
}

// DraftOf returns the editable form of t.
func DraftOf(t *domain.Task) Draft {
	d := Draft{Title: t.Title, Description: t.Description}
	if t.DueDate != nil {
		d.DueDate = t.DueDate.String()
	}
	return d
}

// IsComplete reports whether every field of the draft is filled in.
func (d Draft) IsComplete() bool {
	return strings.TrimSpace(d.Title) != "" &&
		strings.TrimSpace(d.Description) != "" &&
		strings.TrimSpace(d.DueDate) != ""
}

func (d Draft) dueDate() (*domain.Date, error) {
	if strings.TrimSpace(d.DueDate) == "" {
		return nil, nil
	}
	due, err := domain.ParseDate(d.DueDate)
	if err != nil {
		return nil, errors.NewInvalidInputError("dueDate", d.DueDate, "expected YYYY-MM-DD")
	}
	return &due, nil
}

// Edit is the inline edit in progress.
type Edit struct {
	TaskID string
	Draft  Draft
}

// Board is safe for concurrent use.
type Board struct {
	api      TaskAPI
	notifier Notifier
	logger   *log.Logger
	now      func() time.Time

	mu      sync.Mutex
	tasks   []*domain.Task
	filter  domain.TaskFilter
	editing *Edit

	// refresh sequencing: issued is the last number handed out, applied is
	// the number of the response currently shown.
	issued  uint64
	applied uint64
}

// Option configures a Board.
type Option func(*Board)

// WithLogger sets the logger used for failure details.
func WithLogger(logger *log.Logger) Option {
	return func(b *Board) {
		b.logger = logger
	}
}

// WithClock overrides the clock used to decide "today".
func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		b.now = now
	}
}

// New creates an empty board. Call Refresh to load tasks.
func New(api TaskAPI, notifier Notifier, opts ...Option) *Board {
	if notifier == nil {
		notifier = NotifierFunc(func(Notification) {})
	}
	b := &Board{
		api:      api,
		notifier: notifier,
		logger:   log.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Today is the board's notion of the current date.
func (b *Board) Today() domain.Date {
	return domain.DateOf(b.now())
}

// Tasks returns every loaded task, unfiltered.
func (b *Board) Tasks() []*domain.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*domain.Task, len(b.tasks))
	copy(out, b.tasks)
	return out
}

// Visible returns the tasks matching the current search and status filter.
func (b *Board) Visible() []*domain.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filter.Apply(b.tasks)
}

// Filter returns the current view criteria.
func (b *Board) Filter() domain.TaskFilter {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filter
}

// SetSearch replaces the search text.
func (b *Board) SetSearch(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filter.Search = s
}

// SetStatusFilter restricts the view to one status; "" shows all.
func (b *Board) SetStatusFilter(s domain.Status) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filter.Status = s
}

// CycleStatusFilter advances the filter through all, pending, in-progress,
// completed and back to all, returning the new value.
func (b *Board) CycleStatusFilter() domain.Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	order := append([]domain.Status{""}, domain.Statuses...)
	for i, s := range order {
		if s == b.filter.Status {
			b.filter.Status = order[(i+1)%len(order)]
			return b.filter.Status
		}
	}
	b.filter.Status = ""
	return ""
}

// Categorize buckets t relative to the board's today.
func (b *Board) Categorize(t *domain.Task) domain.Category {
	return domain.Categorize(t, b.Today())
}

// Refresh re-fetches the full task list. A response is applied only if no
// newer refresh has already been applied.
func (b *Board) Refresh(ctx context.Context) error {
	b.mu.Lock()
	b.issued++
	seq := b.issued
	b.mu.Unlock()

	tasks, err := b.api.List(ctx)
	if err != nil {
		b.logger.Debug("refresh failed", "err", err)
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if seq < b.applied {
		b.logger.Debug("discarding stale refresh", "seq", seq, "applied", b.applied)
		return nil
	}
	b.applied = seq
	b.tasks = tasks
	return nil
}

// Add creates a task from draft. A task due today starts in-progress,
// anything else pending.
func (b *Board) Add(ctx context.Context, draft Draft) (*domain.Task, error) {
	due, err := draft.dueDate()
	if err != nil {
		return nil, b.fail(MsgAddFailed, err)
	}

	task, err := b.api.Create(ctx, domain.NewTaskInput{
		Title:       draft.Title,
		Description: draft.Description,
		Status:      domain.StatusForDueDate(due, b.Today()),
		DueDate:     due,
	})
	if err != nil {
		return nil, b.fail(MsgAddFailed, err)
	}

	b.succeed(MsgAdded)
	b.refreshAfterMutation(ctx)
	return task, nil
}

// Complete marks t completed.
func (b *Board) Complete(ctx context.Context, t *domain.Task) error {
	if _, err := b.api.Update(ctx, t.ID, domain.StatusPatch(domain.StatusCompleted)); err != nil {
		return b.fail(MsgUpdateFailed, err)
	}
	b.succeed(MsgUpdated)
	b.refreshAfterMutation(ctx)
	return nil
}

// Delete removes t once confirm agrees. Declining is not an error, and a nil
// confirm declines.
func (b *Board) Delete(ctx context.Context, t *domain.Task, confirm Confirmer) (bool, error) {
	if confirm == nil || !confirm.Confirm(DeletePrompt(t)) {
		return false, nil
	}
	if err := b.api.Delete(ctx, t.ID); err != nil {
		return false, b.fail(MsgDeleteFailed, err)
	}

	b.mu.Lock()
	if b.editing != nil && b.editing.TaskID == t.ID {
		b.editing = nil
	}
	b.mu.Unlock()

	b.succeed(MsgDeleted)
	b.refreshAfterMutation(ctx)
	return true, nil
}

// DeletePrompt is the confirmation question asked before deleting t.
func DeletePrompt(t *domain.Task) string {
	return "Delete \"" + t.Title + "\"? You won't be able to revert this!"
}

// BeginEdit puts t under inline edit, replacing any edit in progress.
func (b *Board) BeginEdit(t *domain.Task) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.editing = &Edit{TaskID: t.ID, Draft: DraftOf(t)}
}

// Editing returns the edit in progress, if any.
func (b *Board) Editing() (Edit, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.editing == nil {
		return Edit{}, false
	}
	return *b.editing, true
}

// EditDraft replaces the draft of the edit in progress. It reports false
// when nothing is being edited.
func (b *Board) EditDraft(d Draft) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.editing == nil {
		return false
	}
	b.editing.Draft = d
	return true
}

// CancelEdit drops the edit in progress.
func (b *Board) CancelEdit() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.editing = nil
}

// SaveEdit sends the edited title, description and due date.
func (b *Board) SaveEdit(ctx context.Context) (*domain.Task, error) {
	return b.saveEdit(ctx, nil)
}

// SaveEditInProgress saves the edit and moves the task to in-progress.
func (b *Board) SaveEditInProgress(ctx context.Context) (*domain.Task, error) {
	s := domain.StatusInProgress
	return b.saveEdit(ctx, &s)
}

func (b *Board) saveEdit(ctx context.Context, status *domain.Status) (*domain.Task, error) {
	edit, ok := b.Editing()
	if !ok {
		return nil, b.fail(MsgUpdateFailed, errors.NewInvalidInputError("edit", nil, "no task is being edited"))
	}

	due, err := edit.Draft.dueDate()
	if err != nil {
		return nil, b.fail(MsgUpdateFailed, err)
	}
	title, description := edit.Draft.Title, edit.Draft.Description
	patch := domain.TaskPatch{
		Title:        &title,
		Description:  &description,
		Status:       status,
		DueDate:      due,
		ClearDueDate: due == nil,
	}

	task, err := b.api.Update(ctx, edit.TaskID, patch)
	if err != nil {
		return nil, b.fail(MsgUpdateFailed, err)
	}

	b.mu.Lock()
	if b.editing != nil && b.editing.TaskID == edit.TaskID {
		b.editing = nil
	}
	b.mu.Unlock()

	b.succeed(MsgUpdated)
	b.refreshAfterMutation(ctx)
	return task, nil
}

func (b *Board) refreshAfterMutation(ctx context.Context) {
	if err := b.Refresh(ctx); err != nil {
		b.logger.Warn("refresh after mutation failed", "err", err)
	}
}

func (b *Board) fail(message string, err error) error {
	if errors.ShouldLogError(err) {
		b.logger.Error(message, "err", err)
	} else {
		b.logger.Debug(message, "err", err)
	}
	b.notifier.Notify(Notification{Kind: Failure, Message: message})
	return err
}

func (b *Board) succeed(message string) {
	b.notifier.Notify(Notification{Kind: Success, Message: message})
}
