package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/cxmpoundV/TaskManagementAPI/internal/logger"
	"github.com/cxmpoundV/TaskManagementAPI/internal/store"
)

// Runner drives the notifier on a fixed interval: every tick it walks all
// registered users and sends each one's digest. Concurrent on-demand notify
// requests are not de-duplicated against the timer; duplicate suppression is
// out of scope.
type Runner struct {
	users    store.UserStore
	notifier *Notifier
	interval time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

func NewRunner(users store.UserStore, n *Notifier, interval time.Duration) *Runner {
	return &Runner{users: users, notifier: n, interval: interval}
}

func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.running = true

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})

	go r.loop(runCtx)
	logger.Info("notification runner started", "interval", r.interval.String())
}

func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	cancel, done := r.cancel, r.done
	r.mu.Unlock()

	cancel()
	<-done
	logger.Info("notification runner stopped")
}

func (r *Runner) loop(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.runOnce(ctx)
		}
	}
}

func (r *Runner) runOnce(ctx context.Context) {
	emails, err := r.users.ListEmails(ctx)
	if err != nil {
		logger.Error("notification runner: list users", "error", err)
		return
	}

	for _, email := range emails {
		notifications, err := r.notifier.SendNotifications(ctx, email)
		if err != nil {
			logger.Error("notification runner: send", "email", email, "error", err)
			continue
		}
		if len(notifications) > 0 {
			logger.Info("notification digest sent", "email", email, "tasks", len(notifications))
		}
	}
}
