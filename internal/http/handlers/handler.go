package handlers

import (
	"github.com/cxmpoundV/TaskManagementAPI/internal/analytics"
	"github.com/cxmpoundV/TaskManagementAPI/internal/cache"
	"github.com/cxmpoundV/TaskManagementAPI/internal/notifier"
	"github.com/cxmpoundV/TaskManagementAPI/internal/scheduler"
	"github.com/cxmpoundV/TaskManagementAPI/internal/store"
	"github.com/cxmpoundV/TaskManagementAPI/internal/ws"
)

type Handler struct {
	Engine    *analytics.Engine
	Scheduler *scheduler.Scheduler
	Notifier  *notifier.Notifier
	Users     store.UserStore
	Cache     *cache.Cache
	Hub       *ws.Hub
}

func NewHandler(engine *analytics.Engine, sched *scheduler.Scheduler, n *notifier.Notifier,
	users store.UserStore, c *cache.Cache, hub *ws.Hub) *Handler {
	return &Handler{
		Engine:    engine,
		Scheduler: sched,
		Notifier:  n,
		Users:     users,
		Cache:     c,
		Hub:       hub,
	}
}

// getUserID extracts the authenticated user id set by the JWT middleware.
func getUserID(c interface{ Get(string) (any, bool) }) (int64, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch id := v.(type) {
	case int64:
		return id, true
	case float64:
		return int64(id), true
	default:
		return 0, false
	}
}
