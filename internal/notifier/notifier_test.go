package notifier

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cxmpoundV/TaskManagementAPI/internal/clock"
	"github.com/cxmpoundV/TaskManagementAPI/internal/domain"
	"github.com/cxmpoundV/TaskManagementAPI/internal/store"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func days(n int) time.Duration { return time.Duration(n) * 24 * time.Hour }

type fakeMailer struct {
	sends []sentMail
	err   error
}

type sentMail struct {
	to, subject, body string
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sends = append(m.sends, sentMail{to: to, subject: subject, body: body})
	return nil
}

func newTestNotifier(m *fakeMailer) (*Notifier, *store.Memory) {
	mem := store.NewMemory()
	mem.AddUser(domain.User{Email: "owner@example.com"})
	mem.AddUser(domain.User{Email: "other@example.com"})
	return New(mem, m, clock.Fixed{T: testNow}), mem
}

func ownerID(t *testing.T, mem *store.Memory, email string) int64 {
	t.Helper()
	u, err := mem.GetByEmail(context.Background(), email)
	if err != nil {
		t.Fatalf("lookup %s: %v", email, err)
	}
	return u.ID
}

func TestSendNotifications_CumulativeDigest(t *testing.T) {
	m := &fakeMailer{}
	n, mem := newTestNotifier(m)
	owner := ownerID(t, mem, "owner@example.com")

	mem.AddTask(domain.Task{Name: "due soon", Status: domain.StatusPending, Priority: domain.PriorityHigh, DueDate: testNow.Add(days(1)), OwnerID: owner})
	mem.AddTask(domain.Task{Name: "late", Status: domain.StatusPending, Priority: domain.PriorityMedium, DueDate: testNow.Add(-days(2)), OwnerID: owner})

	records, err := n.SendNotifications(context.Background(), "owner@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	// each record carries the digest accumulated so far
	first, second := records[0].Message, records[1].Message
	if !strings.Contains(first, "REMINDER: Task 'due soon' is due in 1 days") {
		t.Errorf("first record missing reminder line: %q", first)
	}
	if strings.Contains(first, "OVERDUE") {
		t.Errorf("first record should not yet contain the overdue block: %q", first)
	}
	if !strings.Contains(second, "REMINDER: Task 'due soon' is due in 1 days") ||
		!strings.Contains(second, "OVERDUE: Task 'late' was due 2 days ago") {
		t.Errorf("last record must hold the full digest: %q", second)
	}

	if records[0].SentAt != records[1].SentAt {
		t.Errorf("sent_at differs across records: %v vs %v", records[0].SentAt, records[1].SentAt)
	}

	if len(m.sends) != 1 {
		t.Fatalf("got %d delivery calls, want exactly 1", len(m.sends))
	}
	if m.sends[0].to != "owner@example.com" || m.sends[0].body != second {
		t.Errorf("delivered digest mismatch: %+v", m.sends[0])
	}
}

func TestSendNotifications_NoMatches(t *testing.T) {
	m := &fakeMailer{}
	n, mem := newTestNotifier(m)
	owner := ownerID(t, mem, "owner@example.com")

	// outside the window, completed, or another owner's
	mem.AddTask(domain.Task{Name: "far", Status: domain.StatusPending, Priority: domain.PriorityLow, DueDate: testNow.Add(days(5)), OwnerID: owner})
	mem.AddTask(domain.Task{Name: "done", Status: domain.StatusCompleted, Priority: domain.PriorityHigh, DueDate: testNow.Add(days(1)), OwnerID: owner})
	mem.AddTask(domain.Task{Name: "foreign", Status: domain.StatusPending, Priority: domain.PriorityHigh, DueDate: testNow.Add(days(1)), OwnerID: ownerID(t, mem, "other@example.com")})

	records, err := n.SendNotifications(context.Background(), "owner@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("got %d records, want 0", len(records))
	}
	if len(m.sends) != 0 {
		t.Fatalf("got %d delivery calls, want 0", len(m.sends))
	}
}

func TestSendNotifications_FloorsDaysTowardOverdue(t *testing.T) {
	m := &fakeMailer{}
	n, mem := newTestNotifier(m)
	owner := ownerID(t, mem, "owner@example.com")

	// 12 hours past due already counts as one day overdue
	mem.AddTask(domain.Task{Name: "half day late", Status: domain.StatusPending, Priority: domain.PriorityHigh, DueDate: testNow.Add(-12 * time.Hour), OwnerID: owner})

	records, err := n.SendNotifications(context.Background(), "owner@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if !strings.Contains(records[0].Message, "OVERDUE: Task 'half day late' was due 1 days ago") {
		t.Errorf("expected overdue block, got %q", records[0].Message)
	}
}

func TestSendNotifications_DeliveryFailure(t *testing.T) {
	m := &fakeMailer{err: errors.New("connection refused")}
	n, mem := newTestNotifier(m)
	owner := ownerID(t, mem, "owner@example.com")

	mem.AddTask(domain.Task{Name: "due soon", Status: domain.StatusPending, Priority: domain.PriorityHigh, DueDate: testNow.Add(days(1)), OwnerID: owner})

	records, err := n.SendNotifications(context.Background(), "owner@example.com")
	if !errors.Is(err, domain.ErrDeliveryFailure) {
		t.Fatalf("expected delivery failure kind, got %v", err)
	}
	// best-effort: records computed before the failed send are still returned
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
}

func TestSendNotifications_IsolatedMessages(t *testing.T) {
	m := &fakeMailer{}
	n, mem := newTestNotifier(m)
	owner := ownerID(t, mem, "owner@example.com")
	n.IsolatedMessages = true

	mem.AddTask(domain.Task{Name: "one", Status: domain.StatusPending, Priority: domain.PriorityHigh, DueDate: testNow.Add(days(1)), OwnerID: owner})
	mem.AddTask(domain.Task{Name: "two", Status: domain.StatusPending, Priority: domain.PriorityHigh, DueDate: testNow.Add(-days(1)), OwnerID: owner})

	records, err := n.SendNotifications(context.Background(), "owner@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(records[1].Message, "one") {
		t.Errorf("isolated record should only carry its own block: %q", records[1].Message)
	}
	// the email still carries the full digest
	if len(m.sends) != 1 || !strings.Contains(m.sends[0].body, "one") || !strings.Contains(m.sends[0].body, "two") {
		t.Errorf("digest email should contain all blocks: %+v", m.sends)
	}
}

type fakePublisher struct {
	emails []string
}

func (p *fakePublisher) Publish(email string, payload any) {
	p.emails = append(p.emails, email)
}

func TestSendNotifications_PublishesAfterSend(t *testing.T) {
	m := &fakeMailer{}
	n, mem := newTestNotifier(m)
	owner := ownerID(t, mem, "owner@example.com")
	pub := &fakePublisher{}
	n.SetPublisher(pub)

	mem.AddTask(domain.Task{Name: "due soon", Status: domain.StatusPending, Priority: domain.PriorityHigh, DueDate: testNow.Add(days(1)), OwnerID: owner})

	if _, err := n.SendNotifications(context.Background(), "owner@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pub.emails) != 1 || pub.emails[0] != "owner@example.com" {
		t.Errorf("expected one push to the owner, got %v", pub.emails)
	}

	// nothing matched, nothing pushed
	if _, err := n.SendNotifications(context.Background(), "other@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pub.emails) != 1 {
		t.Errorf("no-match invocation must not push, got %v", pub.emails)
	}
}
