package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/cxmpoundV/TaskManagementAPI/internal/clock"
	"github.com/cxmpoundV/TaskManagementAPI/internal/domain"
	"github.com/cxmpoundV/TaskManagementAPI/internal/store"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func days(n int) time.Duration { return time.Duration(n) * 24 * time.Hour }

func TestScheduleTasks_OrderAndOffsets(t *testing.T) {
	mem := store.NewMemory()
	mem.AddTask(domain.Task{Name: "B", Status: domain.StatusPending, Priority: domain.PriorityMedium, DueDate: testNow.Add(days(1)), OwnerID: 1})
	mem.AddTask(domain.Task{Name: "A", Status: domain.StatusPending, Priority: domain.PriorityHigh, DueDate: testNow.Add(days(5)), OwnerID: 1})
	mem.AddTask(domain.Task{Name: "C", Status: domain.StatusPending, Priority: domain.PriorityLow, DueDate: testNow.Add(days(10)), OwnerID: 1})

	s := New(mem, clock.Fixed{T: testNow})
	scheduled, err := s.ScheduleTasks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scheduled) != 3 {
		t.Fatalf("got %d tasks, want 3", len(scheduled))
	}

	wantOrder := []string{"A", "B", "C"}
	wantStart := []time.Time{testNow, testNow.Add(days(1)), testNow.Add(days(2))}
	for i, st := range scheduled {
		if st.Name != wantOrder[i] {
			t.Errorf("position %d: got %q, want %q", i, st.Name, wantOrder[i])
		}
		if !st.SuggestedStartDate.Equal(wantStart[i]) {
			t.Errorf("%s start: got %v, want %v", st.Name, st.SuggestedStartDate, wantStart[i])
		}
	}
}

func TestScheduleTasks_DueDateBreaksTies(t *testing.T) {
	mem := store.NewMemory()
	mem.AddTask(domain.Task{Name: "second", Status: domain.StatusPending, Priority: domain.PriorityHigh, DueDate: testNow.Add(days(4)), OwnerID: 1})
	mem.AddTask(domain.Task{Name: "first", Status: domain.StatusPending, Priority: domain.PriorityHigh, DueDate: testNow.Add(days(2)), OwnerID: 1})

	s := New(mem, clock.Fixed{T: testNow})
	scheduled, err := s.ScheduleTasks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scheduled[0].Name != "first" || scheduled[1].Name != "second" {
		t.Errorf("tie not broken by due date: %+v", scheduled)
	}
}

func TestScheduleTasks_UnknownPrioritySortsLast(t *testing.T) {
	mem := store.NewMemory()
	mem.AddTask(domain.Task{Name: "odd", Status: domain.StatusPending, Priority: "urgent", DueDate: testNow.Add(days(1)), OwnerID: 1})
	mem.AddTask(domain.Task{Name: "low", Status: domain.StatusPending, Priority: domain.PriorityLow, DueDate: testNow.Add(days(9)), OwnerID: 1})

	s := New(mem, clock.Fixed{T: testNow})
	scheduled, err := s.ScheduleTasks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scheduled[0].Name != "low" || scheduled[1].Name != "odd" {
		t.Errorf("unknown priority should sort below low: %+v", scheduled)
	}
	// unrecognized priorities get the two-day offset
	if !scheduled[1].SuggestedStartDate.Equal(testNow.Add(days(2))) {
		t.Errorf("odd start: got %v, want %v", scheduled[1].SuggestedStartDate, testNow.Add(days(2)))
	}
}

func TestScheduleTasks_SpansAllOwners(t *testing.T) {
	mem := store.NewMemory()
	mem.AddTask(domain.Task{Name: "mine", Status: domain.StatusPending, Priority: domain.PriorityHigh, DueDate: testNow.Add(days(1)), OwnerID: 1})
	mem.AddTask(domain.Task{Name: "theirs", Status: domain.StatusPending, Priority: domain.PriorityHigh, DueDate: testNow.Add(days(2)), OwnerID: 2})
	mem.AddTask(domain.Task{Name: "done", Status: domain.StatusCompleted, Priority: domain.PriorityHigh, DueDate: testNow.Add(days(1)), OwnerID: 1})

	s := New(mem, clock.Fixed{T: testNow})
	scheduled, err := s.ScheduleTasks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scheduled) != 2 {
		t.Fatalf("got %d tasks, want 2 (pending only, both owners)", len(scheduled))
	}
}

func TestScheduleTasks_Empty(t *testing.T) {
	s := New(store.NewMemory(), clock.Fixed{T: testNow})
	scheduled, err := s.ScheduleTasks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scheduled) != 0 {
		t.Fatalf("expected empty schedule, got %d", len(scheduled))
	}
}
