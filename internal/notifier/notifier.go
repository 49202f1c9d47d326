// Package notifier selects due-soon and overdue tasks for one user and
// triggers a single digest email per invocation.
package notifier

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cxmpoundV/TaskManagementAPI/internal/clock"
	"github.com/cxmpoundV/TaskManagementAPI/internal/domain"
	"github.com/cxmpoundV/TaskManagementAPI/internal/mailer"
	"github.com/cxmpoundV/TaskManagementAPI/internal/store"
)

// NotificationWindow is the lookahead horizon for due-soon tasks. Overdue
// tasks are always inside the window.
const NotificationWindow = 48 * time.Hour

const digestSubject = "Task Notification"

// Publisher pushes a sent digest to connected clients. Optional.
type Publisher interface {
	Publish(email string, payload any)
}

type Notification struct {
	TaskID  int64     `json:"task_id"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sent_at"`
}

type Notifier struct {
	store  store.TaskStore
	mailer mailer.Mailer
	clock  clock.Clock
	pub    Publisher

	// IsolatedMessages switches each record to carry only its own task's
	// block. The default (false) keeps the legacy contract where the Nth
	// record's message is the concatenation of blocks 1..N, so the last
	// record always holds the full digest.
	IsolatedMessages bool
}

func New(ts store.TaskStore, m mailer.Mailer, clk clock.Clock) *Notifier {
	return &Notifier{store: ts, mailer: m, clock: clk}
}

// SetPublisher attaches a push channel for sent digests.
func (n *Notifier) SetPublisher(p Publisher) { n.pub = p }

// SendNotifications builds one notification record per pending task of the
// given user due within the notification window (including overdue tasks),
// then sends exactly one digest email when anything matched.
//
// Delivery is best-effort, at-most-once: on a transport failure the computed
// records are still returned alongside an error wrapping
// domain.ErrDeliveryFailure.
func (n *Notifier) SendNotifications(ctx context.Context, email string) ([]Notification, error) {
	now := n.clock.Now()
	windowEnd := now.Add(NotificationWindow)

	tasks, err := n.store.Query(ctx, store.TaskFilter{
		OwnerEmail: &email,
		Status:     store.Ptr(domain.StatusPending),
		DueTo:      &windowEnd,
	}, store.OrderNone)
	if err != nil {
		return nil, fmt.Errorf("send notifications: %w", err)
	}

	notifications := make([]Notification, 0, len(tasks))
	message := ""
	for _, t := range tasks {
		daysUntilDue := floorDays(t.DueDate.Sub(now))

		block := "Task Details:\n\n"
		if daysUntilDue < 0 {
			block += fmt.Sprintf("OVERDUE: Task '%s' was due %d days ago\n\n", t.Name, -daysUntilDue)
		} else {
			block += fmt.Sprintf("REMINDER: Task '%s' is due in %d days\n\n", t.Name, daysUntilDue)
		}
		message += block

		body := message
		if n.IsolatedMessages {
			body = block
		}
		notifications = append(notifications, Notification{
			TaskID:  t.TaskID,
			Message: body,
			SentAt:  now,
		})
	}

	if len(message) > 0 {
		if err := n.mailer.Send(ctx, email, digestSubject, message); err != nil {
			return notifications, fmt.Errorf("send notifications: %w: %v", domain.ErrDeliveryFailure, err)
		}
		if n.pub != nil {
			n.pub.Publish(email, map[string]any{
				"type":    "digest",
				"email":   email,
				"tasks":   len(notifications),
				"message": message,
				"sent_at": now,
			})
		}
	}

	return notifications, nil
}

// floorDays rounds toward negative infinity: a task due 12 hours ago is
// already one day overdue.
func floorDays(d time.Duration) int {
	return int(math.Floor(d.Hours() / 24))
}
