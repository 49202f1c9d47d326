package domain

import "time"

// Status and priority are open string domains: the store accepts arbitrary
// values, only the constants below carry special meaning in the engine.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"

	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

type Task struct {
	TaskID        int64      `db:"task_id" json:"task_id"`
	Name          string     `db:"name" json:"name"`
	Description   string     `db:"description" json:"description,omitempty"`
	Status        string     `db:"status" json:"status"`
	DueDate       time.Time  `db:"due_date" json:"due_date"`
	CompletedDate *time.Time `db:"completed_date" json:"completed_date,omitempty"`
	AssignedTo    string     `db:"assigned_to" json:"assigned_to,omitempty"`
	Priority      string     `db:"priority" json:"priority"`
	OwnerID       int64      `db:"owner_id" json:"owner_id"`
}

// PriorityRank orders priorities for scheduling: high > medium > low,
// any unrecognized value sorts below low.
func PriorityRank(priority string) int {
	switch priority {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}
