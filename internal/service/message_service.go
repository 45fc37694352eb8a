package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Victormarshall911/NexTalk/internal/models"
	"github.com/Victormarshall911/NexTalk/internal/repository"
)

type MessageService struct {
	messageRepo repository.MessageRepositoryInterface
}

func NewMessageService(messageRepo repository.MessageRepositoryInterface) *MessageService {
	return &MessageService{messageRepo: messageRepo}
}

type SendMessageInput struct {
	ClientID   string `json:"client_id"`
	ReceiverID uint   `json:"receiver_id"`
	Text       string `json:"text"`
}

// SendMessage appends a message to the store. The client id deduplicates
// optimistic sends: if the same client id from the same sender already
// landed, the stored row is returned instead of inserting a duplicate.
func (s *MessageService) SendMessage(senderID uint, input SendMessageInput) (*models.Message, error) {
	if input.ReceiverID == senderID {
		return nil, ErrSelfMessage
	}

	clientID := input.ClientID
	if clientID == "" {
		clientID = uuid.NewString()
	}

	if existing, err := s.messageRepo.FindByClientID(clientID, senderID); err == nil {
		return existing, nil
	}

	message := &models.Message{
		ClientID:   clientID,
		SenderID:   senderID,
		ReceiverID: input.ReceiverID,
		Text:       input.Text,
	}

	if err := s.messageRepo.Create(message); err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	// Reload with the sender profile for the response and feed event.
	return s.messageRepo.FindByID(message.ID)
}

// GetConversation returns the newest messages of the (me, them) pair,
// newest first.
func (s *MessageService) GetConversation(userID1, userID2 uint, limit int) ([]models.Message, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.messageRepo.FindConversation(userID1, userID2, limit)
}

// GetConversationCursor pages backwards from the cursor message id.
func (s *MessageService) GetConversationCursor(userID1, userID2 uint, cursor uint, limit int) ([]models.Message, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.messageRepo.FindConversationCursor(userID1, userID2, cursor, limit)
}

// MarkConversationAsRead flips the read flag on everything the peer sent to
// userID. Returns how many messages changed state.
func (s *MessageService) MarkConversationAsRead(userID uint, peerID uint) (int64, error) {
	return s.messageRepo.MarkConversationAsRead(userID, peerID)
}
