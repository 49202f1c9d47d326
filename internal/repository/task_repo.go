package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cxmpoundV/TaskManagementAPI/internal/domain"
	"github.com/cxmpoundV/TaskManagementAPI/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `t.task_id, t.name, COALESCE(t.description, ''), t.status, t.due_date, t.completed_date, COALESCE(t.assigned_to, ''), t.priority, t.owner_id`

// priorityRankSQL mirrors domain.PriorityRank so the database sorts the same
// way the in-memory store does.
const priorityRankSQL = `CASE t.priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 WHEN 'low' THEN 1 ELSE 0 END`

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// buildWhere translates a store.TaskFilter into SQL conditions. The users
// join is only added when the filter needs the owner's email.
func buildWhere(f store.TaskFilter) (join, where string, args []any) {
	var conds []string
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, strings.Replace(cond, "?", "$"+strconv.Itoa(len(args)), 1))
	}

	if f.OwnerID != nil {
		add("t.owner_id = ?", *f.OwnerID)
	}
	if f.OwnerEmail != nil {
		join = " JOIN users u ON u.id = t.owner_id"
		add("u.email = ?", *f.OwnerEmail)
	}
	if f.Status != nil {
		add("t.status = ?", *f.Status)
	}
	if f.StatusNot != nil {
		add("t.status != ?", *f.StatusNot)
	}
	if f.DueBefore != nil {
		add("t.due_date < ?", *f.DueBefore)
	}
	if f.DueFrom != nil {
		add("t.due_date >= ?", *f.DueFrom)
	}
	if f.DueTo != nil {
		add("t.due_date <= ?", *f.DueTo)
	}
	if f.CompletedSet != nil {
		if *f.CompletedSet {
			conds = append(conds, "t.completed_date IS NOT NULL")
		} else {
			conds = append(conds, "t.completed_date IS NULL")
		}
	}

	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}
	return join, where, args
}

func orderClause(order store.Order) string {
	switch order {
	case store.OrderDueDateAsc:
		return " ORDER BY t.due_date ASC, t.task_id ASC"
	case store.OrderPriorityThenDue:
		return " ORDER BY " + priorityRankSQL + " DESC, t.due_date ASC, t.task_id ASC"
	default:
		return " ORDER BY t.task_id ASC"
	}
}

func (r *TaskRepository) Query(ctx context.Context, f store.TaskFilter, order store.Order) ([]domain.Task, error) {
	join, where, args := buildWhere(f)
	sql := `SELECT ` + taskColumns + ` FROM tasks t` + join + where + orderClause(order)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var res []domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.TaskID, &t.Name, &t.Description, &t.Status, &t.DueDate,
			&t.CompletedDate, &t.AssignedTo, &t.Priority, &t.OwnerID); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		res = append(res, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return res, nil
}

func (r *TaskRepository) Count(ctx context.Context, f store.TaskFilter) (int64, error) {
	join, where, args := buildWhere(f)
	sql := `SELECT COUNT(*) FROM tasks t` + join + where

	var n int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return n, nil
}

func (r *TaskRepository) GroupCount(ctx context.Context, field string, f store.TaskFilter) (map[string]int64, error) {
	if field != store.FieldStatus && field != store.FieldPriority {
		return nil, fmt.Errorf("group count: unsupported field %q", field)
	}

	join, where, args := buildWhere(f)
	sql := `SELECT t.` + field + `, COUNT(*) FROM tasks t` + join + where + ` GROUP BY t.` + field

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	res := make(map[string]int64)
	for rows.Next() {
		var value string
		var count int64
		if err := rows.Scan(&value, &count); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		res[value] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return res, nil
}

// Create inserts a task, relying on the schema defaults for status, priority
// and due_date when the caller leaves them zero-valued.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO tasks (name, description, status, due_date, assigned_to, priority, owner_id)
		 VALUES ($1, $2,
		         COALESCE(NULLIF($3, ''), 'pending'),
		         COALESCE($4::timestamptz, NOW() + INTERVAL '7 day'),
		         $5,
		         COALESCE(NULLIF($6, ''), 'medium'),
		         $7)
		 RETURNING task_id, status, due_date, priority`,
		t.Name, t.Description, t.Status, nullTime(t.DueDate), t.AssignedTo, t.Priority, t.OwnerID,
	).Scan(&t.TaskID, &t.Status, &t.DueDate, &t.Priority)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// nullTime maps the zero time to NULL so inserts fall back to column defaults.
func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
