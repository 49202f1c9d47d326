// Package store defines the persistence contracts the engine consumes.
// The Postgres implementation lives in internal/repository; Memory below is
// a deterministic in-process implementation used by the engine tests.
package store

import (
	"context"
	"time"

	"github.com/cxmpoundV/TaskManagementAPI/internal/domain"
)

// TaskFilter narrows a task query. Nil fields are ignored.
type TaskFilter struct {
	OwnerID      *int64
	OwnerEmail   *string // matches via the owning user's email
	Status       *string
	StatusNot    *string
	DueBefore    *time.Time // due_date < t (strict)
	DueFrom      *time.Time // due_date >= t
	DueTo        *time.Time // due_date <= t
	CompletedSet *bool      // completed_date IS (NOT) NULL
}

type Order int

const (
	OrderNone Order = iota
	OrderDueDateAsc
	// OrderPriorityThenDue sorts by priority rank descending
	// (high > medium > low > anything else), then due_date ascending.
	OrderPriorityThenDue
)

// Groupable fields for GroupCount.
const (
	FieldStatus   = "status"
	FieldPriority = "priority"
)

type TaskStore interface {
	Query(ctx context.Context, f TaskFilter, order Order) ([]domain.Task, error)
	Count(ctx context.Context, f TaskFilter) (int64, error)
	GroupCount(ctx context.Context, field string, f TaskFilter) (map[string]int64, error)
}

type UserStore interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	ListEmails(ctx context.Context) ([]string, error)
}

// Ptr is a small helper for building filters from literals.
func Ptr[T any](v T) *T { return &v }
