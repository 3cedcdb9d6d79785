package services

import (
	"context"

	"taskboard/internal/domain"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	taskService TaskService
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(taskService TaskService) ReportingService {
	return &reportingServiceImpl{taskService: taskService}
}

// GetSummary loads every task and summarizes it relative to today
func (r *reportingServiceImpl) GetSummary(ctx context.Context, today domain.Date) (*BoardSummary, error) {
	tasks, err := r.taskService.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return r.Summarize(tasks, today), nil
}

// Summarize counts tasks per status and per category. Every status and
// category is present in the result, with zero counts where empty.
func (r *reportingServiceImpl) Summarize(tasks []*domain.Task, today domain.Date) *BoardSummary {
	summary := &BoardSummary{
		Total:      len(tasks),
		ByStatus:   make(map[domain.Status]int, len(domain.Statuses)),
		ByCategory: make(map[domain.Category]int, len(domain.Categories)),
	}
	for _, s := range domain.Statuses {
		summary.ByStatus[s] = 0
	}
	for _, c := range domain.Categories {
		summary.ByCategory[c] = 0
	}

	for _, t := range tasks {
		summary.ByStatus[t.Status]++
		summary.ByCategory[domain.Categorize(t, today)]++
	}
	return summary
}
