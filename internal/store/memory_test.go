package store

import (
	"context"
	"testing"
	"time"

	"github.com/cxmpoundV/TaskManagementAPI/internal/domain"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestMemory_FilterByOwnerEmail(t *testing.T) {
	mem := NewMemory()
	u := mem.AddUser(domain.User{Email: "a@example.com"})
	other := mem.AddUser(domain.User{Email: "b@example.com"})
	mem.AddTask(domain.Task{Name: "mine", Status: domain.StatusPending, DueDate: testNow, OwnerID: u.ID})
	mem.AddTask(domain.Task{Name: "theirs", Status: domain.StatusPending, DueDate: testNow, OwnerID: other.ID})

	tasks, err := mem.Query(context.Background(), TaskFilter{OwnerEmail: Ptr("a@example.com")}, OrderNone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Name != "mine" {
		t.Fatalf("owner email filter: got %+v", tasks)
	}
}

func TestMemory_DueDateBounds(t *testing.T) {
	mem := NewMemory()
	mem.AddTask(domain.Task{Name: "before", DueDate: testNow.Add(-time.Hour), OwnerID: 1})
	mem.AddTask(domain.Task{Name: "exact", DueDate: testNow, OwnerID: 1})
	mem.AddTask(domain.Task{Name: "after", DueDate: testNow.Add(time.Hour), OwnerID: 1})

	ctx := context.Background()

	// DueBefore is strict
	n, err := mem.Count(ctx, TaskFilter{DueBefore: &testNow})
	if err != nil || n != 1 {
		t.Fatalf("DueBefore: got %d (err %v), want 1", n, err)
	}

	// DueFrom/DueTo are inclusive
	n, err = mem.Count(ctx, TaskFilter{DueFrom: &testNow, DueTo: &testNow})
	if err != nil || n != 1 {
		t.Fatalf("inclusive range: got %d (err %v), want 1", n, err)
	}
}

func TestMemory_CompletedSetFilter(t *testing.T) {
	mem := NewMemory()
	done := testNow
	mem.AddTask(domain.Task{Name: "done", Status: domain.StatusCompleted, DueDate: testNow, CompletedDate: &done, OwnerID: 1})
	mem.AddTask(domain.Task{Name: "open", Status: domain.StatusPending, DueDate: testNow, OwnerID: 1})

	n, err := mem.Count(context.Background(), TaskFilter{CompletedSet: Ptr(true)})
	if err != nil || n != 1 {
		t.Fatalf("CompletedSet=true: got %d (err %v), want 1", n, err)
	}
	n, err = mem.Count(context.Background(), TaskFilter{CompletedSet: Ptr(false)})
	if err != nil || n != 1 {
		t.Fatalf("CompletedSet=false: got %d (err %v), want 1", n, err)
	}
}

func TestMemory_GroupCount(t *testing.T) {
	mem := NewMemory()
	mem.AddTask(domain.Task{Status: "pending", Priority: "high", DueDate: testNow, OwnerID: 1})
	mem.AddTask(domain.Task{Status: "pending", Priority: "low", DueDate: testNow, OwnerID: 1})
	mem.AddTask(domain.Task{Status: "blocked", Priority: "high", DueDate: testNow, OwnerID: 1})

	byStatus, err := mem.GroupCount(context.Background(), FieldStatus, TaskFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byStatus["pending"] != 2 || byStatus["blocked"] != 1 {
		t.Errorf("status group count: %v", byStatus)
	}

	byPriority, err := mem.GroupCount(context.Background(), FieldPriority, TaskFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byPriority["high"] != 2 || byPriority["low"] != 1 {
		t.Errorf("priority group count: %v", byPriority)
	}
}

func TestMemory_PriorityOrder(t *testing.T) {
	mem := NewMemory()
	mem.AddTask(domain.Task{Name: "low", Priority: "low", DueDate: testNow, OwnerID: 1})
	mem.AddTask(domain.Task{Name: "weird", Priority: "someday", DueDate: testNow, OwnerID: 1})
	mem.AddTask(domain.Task{Name: "high", Priority: "high", DueDate: testNow, OwnerID: 1})
	mem.AddTask(domain.Task{Name: "medium", Priority: "medium", DueDate: testNow, OwnerID: 1})

	tasks, err := mem.Query(context.Background(), TaskFilter{}, OrderPriorityThenDue)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"high", "medium", "low", "weird"}
	for i, name := range want {
		if tasks[i].Name != name {
			t.Fatalf("position %d: got %q, want %q (full: %+v)", i, tasks[i].Name, name, tasks)
		}
	}
}
