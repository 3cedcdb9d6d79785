package board

import (
	"context"
	"fmt"
	"sync"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
)

// fakeAPI is an in-memory TaskAPI. Setting fail makes every call error.
type fakeAPI struct {
	mu      sync.Mutex
	tasks   []*domain.Task
	nextID  int
	fail    bool
	deletes int
	patches []domain.TaskPatch

	// listHook, when set, runs at the start of List.
	listHook func()
}

func (f *fakeAPI) List(ctx context.Context) ([]*domain.Task, error) {
	if f.listHook != nil {
		f.listHook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errors.NewTransportError("GET", "/api/tasks", 500, nil)
	}
	out := make([]*domain.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeAPI) Create(ctx context.Context, in domain.NewTaskInput) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errors.NewTransportError("POST", "/api/tasks", 500, nil)
	}
	f.nextID++
	t := domain.NewTask(in, fmt.Sprintf("uid-%d", f.nextID))
	t.ID = fmt.Sprint(f.nextID)
	f.tasks = append(f.tasks, t)
	cp := *t
	return &cp, nil
}

func (f *fakeAPI) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errors.NewTransportError("PATCH", "/api/tasks/"+id, 500, nil)
	}
	f.patches = append(f.patches, patch)
	for _, t := range f.tasks {
		if t.ID == id {
			patch.Apply(t)
			cp := *t
			return &cp, nil
		}
	}
	return nil, errors.NewNotFoundError("task", id)
}

func (f *fakeAPI) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.NewTransportError("DELETE", "/api/tasks/"+id, 500, nil)
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			f.deletes++
			return nil
		}
	}
	return errors.NewNotFoundError("task", id)
}

func (f *fakeAPI) setFail(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = v
}

// recorder collects notifications.
type recorder struct {
	mu  sync.Mutex
	all []Notification
}

func (r *recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.all = append(r.all, n)
}

func (r *recorder) last() Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.all) == 0 {
		return Notification{}
	}
	return r.all[len(r.all)-1]
}
