// Package analytics computes aggregate statistics, reports and exports over
// one owner's tasks. All operations are read-only and stateless: every call
// re-reads the task store.
package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cxmpoundV/TaskManagementAPI/internal/clock"
	"github.com/cxmpoundV/TaskManagementAPI/internal/domain"
	"github.com/cxmpoundV/TaskManagementAPI/internal/store"
)

type Engine struct {
	store store.TaskStore
	clock clock.Clock
}

func New(ts store.TaskStore, clk clock.Clock) *Engine {
	return &Engine{store: ts, clock: clk}
}

type Statistics struct {
	TotalTasks                int64            `json:"total_tasks"`
	OverdueTasks              int64            `json:"overdue_tasks"`
	CompletedTasks            int64            `json:"completed_tasks"`
	AverageCompletionTimeDays int              `json:"average_completion_time_days"`
	PriorityDistribution      map[string]int64 `json:"priority_distribution"`
}

// GetTaskStatistics aggregates one owner's task set. An owner with zero tasks
// yields zero-valued statistics, not an error.
//
// The average completion time is signed: a task completed before its due date
// contributes a negative delta and pulls the average down.
func (e *Engine) GetTaskStatistics(ctx context.Context, ownerID int64) (*Statistics, error) {
	now := e.clock.Now()

	total, err := e.store.Count(ctx, store.TaskFilter{OwnerID: &ownerID})
	if err != nil {
		return nil, fmt.Errorf("get task statistics: %w", err)
	}

	overdue, err := e.store.Count(ctx, store.TaskFilter{
		OwnerID:   &ownerID,
		StatusNot: store.Ptr(domain.StatusCompleted),
		DueBefore: &now,
	})
	if err != nil {
		return nil, fmt.Errorf("get task statistics: %w", err)
	}

	completed, err := e.store.Query(ctx, store.TaskFilter{
		OwnerID:      &ownerID,
		Status:       store.Ptr(domain.StatusCompleted),
		CompletedSet: store.Ptr(true),
	}, store.OrderNone)
	if err != nil {
		return nil, fmt.Errorf("get task statistics: %w", err)
	}

	var totalCompletionTime time.Duration
	for _, t := range completed {
		totalCompletionTime += t.CompletedDate.Sub(t.DueDate)
	}
	avgDays := 0
	if len(completed) > 0 {
		avg := totalCompletionTime / time.Duration(len(completed))
		avgDays = floorDays(avg)
	}

	dist, err := e.store.GroupCount(ctx, store.FieldPriority, store.TaskFilter{OwnerID: &ownerID})
	if err != nil {
		return nil, fmt.Errorf("get task statistics: %w", err)
	}

	return &Statistics{
		TotalTasks:                total,
		OverdueTasks:              overdue,
		CompletedTasks:            int64(len(completed)),
		AverageCompletionTimeDays: avgDays,
		PriorityDistribution:      dist,
	}, nil
}

type ReportTask struct {
	Name     string    `json:"name"`
	DueDate  time.Time `json:"due_date"`
	Priority string    `json:"priority"`
}

type Report struct {
	UpcomingTasks      []ReportTask     `json:"upcoming_tasks"`
	StatusDistribution map[string]int64 `json:"status_distribution"`
	Statistics         *Statistics      `json:"statistics"`
}

// GenerateTaskReport builds the composite report: tasks due within the next
// seven days (due_date ascending), the status distribution, and the embedded
// statistics. The three store reads are separate queries and are not
// transactionally atomic with each other.
func (e *Engine) GenerateTaskReport(ctx context.Context, ownerID int64) (*Report, error) {
	now := e.clock.Now()
	weekEnd := now.Add(7 * 24 * time.Hour)

	upcoming, err := e.store.Query(ctx, store.TaskFilter{
		OwnerID: &ownerID,
		DueFrom: &now,
		DueTo:   &weekEnd,
	}, store.OrderDueDateAsc)
	if err != nil {
		return nil, fmt.Errorf("generate task report: %w", err)
	}

	statusDist, err := e.store.GroupCount(ctx, store.FieldStatus, store.TaskFilter{OwnerID: &ownerID})
	if err != nil {
		return nil, fmt.Errorf("generate task report: %w", err)
	}

	stats, err := e.GetTaskStatistics(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("generate task report: %w", err)
	}

	report := &Report{
		UpcomingTasks:      make([]ReportTask, 0, len(upcoming)),
		StatusDistribution: statusDist,
		Statistics:         stats,
	}
	for _, t := range upcoming {
		report.UpcomingTasks = append(report.UpcomingTasks, ReportTask{
			Name:     t.Name,
			DueDate:  t.DueDate,
			Priority: t.Priority,
		})
	}
	return report, nil
}

// ExportTasks returns the owner's full task set in fixed column order. The
// same export feeds both the CSV writer and the chart renderer, so the store
// is only queried once per export.
func (e *Engine) ExportTasks(ctx context.Context, ownerID int64) (*Export, error) {
	tasks, err := e.store.Query(ctx, store.TaskFilter{OwnerID: &ownerID}, store.OrderNone)
	if err != nil {
		return nil, fmt.Errorf("export tasks: %w", err)
	}
	return &Export{Tasks: tasks}, nil
}

// floorDays converts a duration to whole days rounding toward negative
// infinity, matching signed completion-delta semantics (-36h is -2 days).
func floorDays(d time.Duration) int {
	return int(math.Floor(d.Hours() / 24))
}
