package services

import (
	"context"
	"sort"
	"strings"

	"taskboard/internal/domain"
)

// searchServiceImpl implements the SearchService interface
type searchServiceImpl struct {
	taskService TaskService
}

// NewSearchService creates a new SearchService instance
func NewSearchService(taskService TaskService) SearchService {
	return &searchServiceImpl{taskService: taskService}
}

// Search combines the full-text index with a status filter. Without a sort
// order, results keep the order the store returned them in (relevance for
// text queries, insertion order otherwise).
func (s *searchServiceImpl) Search(ctx context.Context, criteria SearchCriteria) ([]*domain.Task, error) {
	var (
		tasks []*domain.Task
		err   error
	)
	if strings.TrimSpace(criteria.Query) == "" {
		tasks, err = s.taskService.ListTasks(ctx)
	} else {
		tasks, err = s.taskService.SearchTasks(ctx, criteria.Query)
	}
	if err != nil {
		return nil, err
	}

	tasks = domain.TaskFilter{Status: criteria.Status}.Apply(tasks)

	if criteria.Sort != "" {
		tasks = s.SortTasks(tasks, criteria.Sort)
	}
	return tasks, nil
}

// SortTasks returns a sorted copy of tasks. Unknown orders leave the order
// unchanged.
func (s *searchServiceImpl) SortTasks(tasks []*domain.Task, order SortOrder) []*domain.Task {
	sorted := make([]*domain.Task, len(tasks))
	copy(sorted, tasks)

	var less func(a, b *domain.Task) bool
	switch order {
	case SortByCreated:
		less = func(a, b *domain.Task) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortByTitle:
		less = func(a, b *domain.Task) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) }
	case SortByDueDate:
		less = func(a, b *domain.Task) bool {
			switch {
			case a.DueDate == nil:
				return false
			case b.DueDate == nil:
				return true
			default:
				return a.DueDate.Before(*b.DueDate)
			}
		}
	case SortByStatus:
		less = func(a, b *domain.Task) bool { return statusRank(a.Status) < statusRank(b.Status) }
	default:
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// ParseSortOrder validates a user-supplied sort order. Empty is allowed.
func ParseSortOrder(s string) (SortOrder, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", true
	}
	for _, o := range SortOrders {
		if string(o) == s {
			return o, true
		}
	}
	return "", false
}

func statusRank(s domain.Status) int {
	for i, status := range domain.Statuses {
		if status == s {
			return i
		}
	}
	return len(domain.Statuses)
}
