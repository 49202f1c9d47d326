// Package scheduler derives suggested start dates for pending tasks from
// their priority and due date.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/cxmpoundV/TaskManagementAPI/internal/clock"
	"github.com/cxmpoundV/TaskManagementAPI/internal/domain"
	"github.com/cxmpoundV/TaskManagementAPI/internal/store"
)

type Scheduler struct {
	store store.TaskStore
	clock clock.Clock
}

func New(ts store.TaskStore, clk clock.Clock) *Scheduler {
	return &Scheduler{store: ts, clock: clk}
}

type ScheduledTask struct {
	TaskID             int64     `json:"task_id"`
	Name               string    `json:"name"`
	SuggestedStartDate time.Time `json:"suggested_start_date"`
	DueDate            time.Time `json:"due_date"`
	Priority           string    `json:"priority"`
}

// ScheduleTasks suggests a start date for every pending task, ordered by
// priority descending then due date ascending. High priority starts now,
// medium starts tomorrow, everything else (low or unrecognized) in two days.
//
// The selection deliberately spans all owners; see DESIGN.md.
func (s *Scheduler) ScheduleTasks(ctx context.Context) ([]ScheduledTask, error) {
	pending, err := s.store.Query(ctx, store.TaskFilter{
		Status: store.Ptr(domain.StatusPending),
	}, store.OrderPriorityThenDue)
	if err != nil {
		return nil, fmt.Errorf("schedule tasks: %w", err)
	}

	now := s.clock.Now()
	scheduled := make([]ScheduledTask, 0, len(pending))
	for _, t := range pending {
		scheduled = append(scheduled, ScheduledTask{
			TaskID:             t.TaskID,
			Name:               t.Name,
			SuggestedStartDate: now.Add(startOffset(t.Priority)),
			DueDate:            t.DueDate,
			Priority:           t.Priority,
		})
	}
	return scheduled, nil
}

func startOffset(priority string) time.Duration {
	switch priority {
	case domain.PriorityHigh:
		return 0
	case domain.PriorityMedium:
		return 24 * time.Hour
	default:
		return 48 * time.Hour
	}
}
