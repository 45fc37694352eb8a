package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Victormarshall911/NexTalk/internal/handlers/ws"
	"github.com/Victormarshall911/NexTalk/internal/httpx"
	"github.com/Victormarshall911/NexTalk/internal/models"
	"github.com/Victormarshall911/NexTalk/internal/push"
	"github.com/Victormarshall911/NexTalk/internal/service"
	"github.com/Victormarshall911/NexTalk/internal/validation"
)

type MessageHandler struct {
	messageService      *service.MessageService
	conversationService *service.ConversationService
	userService         *service.UserService
	hub                 *ws.Hub
	relay               *push.Relay
}

func NewMessageHandler(
	messageService *service.MessageService,
	conversationService *service.ConversationService,
	userService *service.UserService,
	hub *ws.Hub,
	relay *push.Relay,
) *MessageHandler {
	return &MessageHandler{
		messageService:      messageService,
		conversationService: conversationService,
		userService:         userService,
		hub:                 hub,
		relay:               relay,
	}
}

// SendMessage appends a message and notifies the receiver: a feed event if
// they hold a live subscription, otherwise a best-effort push notification.
func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input service.SendMessageInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	input.Text = validation.TrimAndLimit(input.Text, validation.MaxMessageLength())
	if input.Text == "" {
		return httpx.BadRequest(c, "missing_text", "Text is required")
	}
	if input.ReceiverID == 0 {
		return httpx.BadRequest(c, "missing_receiver", "receiver_id is required")
	}

	message, err := h.messageService.SendMessage(userID, input)
	if err != nil {
		if errors.Is(err, service.ErrSelfMessage) {
			return httpx.BadRequest(c, "self_message", "Cannot message yourself")
		}
		return httpx.Internal(c, "send_message_failed")
	}

	h.notifyReceiver(message)

	return c.Status(fiber.StatusCreated).JSON(message.ToResponse())
}

// notifyReceiver routes the insert to the receiver only. The sender's own
// client already shows the message optimistically, so echoing it back would
// double-append there.
func (h *MessageHandler) notifyReceiver(message *models.Message) {
	if h.hub.Publish(message.ReceiverID, ws.NewMessageEvent(message)) {
		return
	}

	// No live subscription: fall back to a push notification when the
	// receiver registered a device. Fire and forget.
	receiver, err := h.userService.GetUserByID(message.ReceiverID)
	if err != nil || receiver.PushToken == "" {
		return
	}
	h.relay.Send(push.Notification{
		To:    receiver.PushToken,
		Title: message.Sender.DisplayName(),
		Body:  validation.TrimAndLimit(message.Text, 140),
	})
}

// GetMessages returns the thread with one counterpart, newest first, with
// cursor pagination for older history.
func (h *MessageHandler) GetMessages(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	peerIDStr := c.Query("peer_id")
	if peerIDStr == "" {
		return httpx.BadRequest(c, "missing_peer", "peer_id is required")
	}
	peerID, err := strconv.ParseUint(peerIDStr, 10, 32)
	if err != nil {
		return httpx.BadRequest(c, "invalid_peer", "Invalid peer_id")
	}

	limit := c.QueryInt("limit", 50)

	var messages []models.Message
	if cursorStr := c.Query("cursor"); cursorStr != "" {
		cursor, err := strconv.ParseUint(cursorStr, 10, 32)
		if err != nil {
			return httpx.BadRequest(c, "invalid_cursor", "Invalid cursor")
		}
		messages, err = h.messageService.GetConversationCursor(userID, uint(peerID), uint(cursor), limit)
		if err != nil {
			return httpx.Internal(c, "fetch_messages_failed")
		}
	} else {
		messages, err = h.messageService.GetConversation(userID, uint(peerID), limit)
		if err != nil {
			return httpx.Internal(c, "fetch_messages_failed")
		}
	}

	responses := make([]interface{}, len(messages))
	for i := range messages {
		responses[i] = messages[i].ToResponse()
	}

	result := fiber.Map{
		"messages": responses,
		"count":    len(messages),
	}
	if len(messages) > 0 {
		// Newest-first: the last element of this page is the cursor for
		// loading older history.
		result["next_cursor"] = messages[len(messages)-1].ID
	}

	return c.JSON(result)
}

// GetConversations runs a full aggregation pass and returns the ordered
// summary list.
func (h *MessageHandler) GetConversations(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	summaries := h.conversationService.Aggregate(userID)

	return c.JSON(fiber.Map{
		"conversations": summaries,
		"count":         len(summaries),
	})
}

// MarkConversationRead flips the read flag on everything the peer sent to
// the caller.
func (h *MessageHandler) MarkConversationRead(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	peerID, err := strconv.ParseUint(c.Params("peer_id"), 10, 32)
	if err != nil || peerID == 0 {
		return httpx.BadRequest(c, "invalid_peer", "Invalid peer_id")
	}

	updated, err := h.messageService.MarkConversationAsRead(userID, uint(peerID))
	if err != nil {
		return httpx.Internal(c, "mark_read_failed")
	}

	return c.JSON(fiber.Map{
		"updated": updated,
	})
}
