package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/cxmpoundV/TaskManagementAPI/internal/store"
)

func TestBuildWhere_Empty(t *testing.T) {
	join, where, args := buildWhere(store.TaskFilter{})
	if join != "" || where != "" || len(args) != 0 {
		t.Fatalf("empty filter should produce no SQL: join=%q where=%q args=%v", join, where, args)
	}
}

func TestBuildWhere_OwnerEmailAddsJoin(t *testing.T) {
	join, where, args := buildWhere(store.TaskFilter{OwnerEmail: store.Ptr("a@example.com")})
	if !strings.Contains(join, "JOIN users") {
		t.Errorf("expected users join, got %q", join)
	}
	if !strings.Contains(where, "u.email = $1") {
		t.Errorf("expected email condition, got %q", where)
	}
	if len(args) != 1 || args[0] != "a@example.com" {
		t.Errorf("args: %v", args)
	}
}

func TestBuildWhere_PlaceholdersAreSequential(t *testing.T) {
	now := time.Now()
	_, where, args := buildWhere(store.TaskFilter{
		OwnerID:   store.Ptr(int64(7)),
		Status:    store.Ptr("pending"),
		StatusNot: store.Ptr("completed"),
		DueBefore: &now,
	})

	for i := 1; i <= len(args); i++ {
		if !strings.Contains(where, "$"+string(rune('0'+i))) {
			t.Errorf("missing placeholder $%d in %q", i, where)
		}
	}
	if len(args) != 4 {
		t.Errorf("args: got %d, want 4", len(args))
	}
}

func TestBuildWhere_CompletedSetUsesNullCheck(t *testing.T) {
	_, where, args := buildWhere(store.TaskFilter{CompletedSet: store.Ptr(true)})
	if !strings.Contains(where, "completed_date IS NOT NULL") {
		t.Errorf("expected null check, got %q", where)
	}
	if len(args) != 0 {
		t.Errorf("null check must not bind args: %v", args)
	}

	_, where, _ = buildWhere(store.TaskFilter{CompletedSet: store.Ptr(false)})
	if !strings.Contains(where, "completed_date IS NULL") {
		t.Errorf("expected null check, got %q", where)
	}
}

func TestOrderClause(t *testing.T) {
	if got := orderClause(store.OrderPriorityThenDue); !strings.Contains(got, "CASE t.priority") {
		t.Errorf("priority order must rank via CASE, got %q", got)
	}
	if got := orderClause(store.OrderDueDateAsc); !strings.Contains(got, "t.due_date ASC") {
		t.Errorf("due date order: %q", got)
	}
}
