package models

import (
	"time"

	"gorm.io/gorm"
)

// Message is a directed two-party message. Rows are immutable once created
// except for the read flag, which flips to true when the receiver marks the
// conversation read.
type Message struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// ClientID is generated by the sending client so an optimistic send
	// retried over a flaky link cannot be inserted twice.
	ClientID string `gorm:"type:varchar(36);uniqueIndex:idx_client_sender;not null" json:"client_id"`

	SenderID   uint `gorm:"not null;uniqueIndex:idx_client_sender;index" json:"sender_id"`
	Sender     User `gorm:"foreignKey:SenderID" json:"sender"`
	ReceiverID uint `gorm:"not null;index" json:"receiver_id"`

	Text string `gorm:"type:text;not null" json:"text"`

	IsRead bool       `gorm:"default:false;index" json:"is_read"`
	ReadAt *time.Time `json:"read_at"`
}

type MessageResponse struct {
	ID         uint         `json:"id"`
	ClientID   string       `json:"client_id"`
	SenderID   uint         `json:"sender_id"`
	Sender     UserResponse `json:"sender"`
	ReceiverID uint         `json:"receiver_id"`
	Text       string       `json:"text"`
	IsRead     bool         `json:"is_read"`
	CreatedAt  time.Time    `json:"created_at"`
}

func (m *Message) ToResponse() MessageResponse {
	return MessageResponse{
		ID:         m.ID,
		ClientID:   m.ClientID,
		SenderID:   m.SenderID,
		Sender:     m.Sender.ToResponse(),
		ReceiverID: m.ReceiverID,
		Text:       m.Text,
		IsRead:     m.IsRead,
		CreatedAt:  m.CreatedAt,
	}
}

// CounterpartID returns the other participant relative to userID.
func (m *Message) CounterpartID(userID uint) uint {
	if m.SenderID == userID {
		return m.ReceiverID
	}
	return m.SenderID
}
