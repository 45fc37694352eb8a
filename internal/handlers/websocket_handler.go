package handlers

import (
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog/log"

	"github.com/Victormarshall911/NexTalk/internal/cache"
	"github.com/Victormarshall911/NexTalk/internal/handlers/ws"
	"github.com/Victormarshall911/NexTalk/internal/service"
)

// WebSocketHandler owns the realtime feed: one subscription per connected
// user, torn down when the socket closes.
type WebSocketHandler struct {
	userService *service.UserService
	presence    *cache.PresenceCache
	hub         *ws.Hub
}

func NewWebSocketHandler(userService *service.UserService, presence *cache.PresenceCache) *WebSocketHandler {
	return &WebSocketHandler{
		userService: userService,
		presence:    presence,
		hub:         ws.NewHub(),
	}
}

// GetHub exposes the hub so the message handler can publish insert events.
func (h *WebSocketHandler) GetHub() *ws.Hub {
	return h.hub
}

// HandleWebSocket runs for the lifetime of one feed connection. The feed is
// server-to-client only: inbound frames are discarded, reads exist to spot
// pongs and closure.
func (h *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		c.Close()
		return
	}

	client := ws.NewClient(userID, c)
	h.hub.Register(client)
	h.setOnline(userID)

	defer func() {
		h.hub.Unregister(client)
		h.setOffline(userID)
	}()

	c.SetReadDeadline(time.Now().Add(ws.PongTimeout))
	c.SetPongHandler(func(string) error {
		return c.SetReadDeadline(time.Now().Add(ws.PongTimeout))
	})

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			log.Debug().Err(err).Uint("user_id", userID).Msg("feed: connection closed")
			return
		}
		// Inbound data frames are ignored; sends go over the REST API.
	}
}

func (h *WebSocketHandler) setOnline(userID uint) {
	go func() {
		if err := h.presence.SetOnline(userID); err != nil {
			log.Warn().Err(err).Uint("user_id", userID).Msg("presence: cache set online failed")
		}
		if err := h.userService.SetUserOnline(userID); err != nil {
			log.Warn().Err(err).Uint("user_id", userID).Msg("presence: db set online failed")
		}
	}()
}

func (h *WebSocketHandler) setOffline(userID uint) {
	go func() {
		if err := h.presence.SetOffline(userID); err != nil {
			log.Warn().Err(err).Uint("user_id", userID).Msg("presence: cache set offline failed")
		}
		if err := h.userService.SetUserOffline(userID); err != nil {
			log.Warn().Err(err).Uint("user_id", userID).Msg("presence: db set offline failed")
		}
	}()
}
