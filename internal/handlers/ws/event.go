package ws

import (
	"github.com/Victormarshall911/NexTalk/internal/models"
)

// Event types pushed over the feed. Clients react by appending to an open
// thread or re-fetching their conversation list; the feed itself carries no
// ordering guarantee beyond per-connection FIFO.
const (
	EventMessageNew = "message.new"
)

// Event is one feed notification.
type Event struct {
	Type    string                  `json:"type"`
	Message *models.MessageResponse `json:"message,omitempty"`
}

// NewMessageEvent wraps a freshly inserted message.
func NewMessageEvent(message *models.Message) Event {
	resp := message.ToResponse()
	return Event{
		Type:    EventMessageNew,
		Message: &resp,
	}
}
