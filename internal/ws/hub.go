// Package ws pushes sent notification digests to connected clients, keyed by
// the owner's email.
package ws

import (
	"encoding/json"
	"sync"

	"github.com/cxmpoundV/TaskManagementAPI/internal/logger"
)

type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*Client]struct{})}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.Email]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.Email] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.Email]
	if !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.Email)
	}
}

// Publish fans the payload out to every connection of the given email.
// Slow clients are skipped rather than blocking the notifier.
func (h *Hub) Publish(email string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("ws publish: marshal", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[email] {
		select {
		case c.Send <- data:
		default:
		}
	}
}
