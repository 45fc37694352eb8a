package ws

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Hub tracks the live feed subscription per user. A user holds at most one
// subscription; a reconnect displaces the previous connection.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint]*Client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[uint]*Client),
	}
}

// Register adds a client's subscription and starts its writer. Any prior
// subscription for the same user is torn down first.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if prev, ok := h.clients[c.UserID]; ok {
		prev.close()
	}
	h.clients[c.UserID] = c
	total := len(h.clients)
	h.mu.Unlock()

	if c.conn != nil {
		go c.writePump(h.dropDead)
	}

	log.Debug().Uint("user_id", c.UserID).Int("total", total).Msg("feed: client registered")
}

// Unregister removes a client's subscription and stops its writer. A stale
// client that was already displaced by a reconnect is left alone.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if current, ok := h.clients[c.UserID]; ok && current == c {
		delete(h.clients, c.UserID)
	}
	total := len(h.clients)
	h.mu.Unlock()

	c.close()
	log.Debug().Uint("user_id", c.UserID).Int("total", total).Msg("feed: client unregistered")
}

// IsOnline reports whether a user currently holds a feed subscription.
func (h *Hub) IsOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}

// Publish enqueues an event for a user and reports whether it was accepted.
// Offline users and full queues lose the event; delivery is best effort and
// there is no retry or offline spooling.
func (h *Hub) Publish(userID uint, event Event) bool {
	h.mu.RLock()
	client, ok := h.clients[userID]
	h.mu.RUnlock()

	if !ok {
		return false
	}

	if !client.enqueue(event) {
		log.Warn().Uint("user_id", userID).Str("event", event.Type).Msg("feed: queue full, event dropped")
		return false
	}
	return true
}

// Count returns the number of live subscriptions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) dropDead(c *Client) {
	h.Unregister(c)
}
